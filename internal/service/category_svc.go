package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
)

// CategoryService 商品分类（一级 + 二级）
type CategoryService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, subCategoryRepo repository.SubCategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
	}
}

// ==================== 一级分类 ====================

// UpsertCategory 创建或更新一级分类（仅管理员）
func (s *CategoryService) UpsertCategory(ctx context.Context, actor model.Actor, req dto.CategoryUpsertReq) (*model.Category, error) {
	if !actor.IsAdmin() {
		return nil, errs.New(errs.KindUnauthorized, "仅管理员可以管理分类")
	}

	category := &model.Category{
		BaseModel: model.BaseModel{ID: req.ID},
		Name:      req.Name,
		Image:     req.Image,
		Url:       req.Url,
		Featured:  req.Featured,
	}
	if err := s.categoryRepo.Upsert(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.diagnoseCategoryConflict(ctx, category)
		}
		log.Printf("分类写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "分类写入失败", err)
	}
	return category, nil
}

// ListCategories 全部一级分类
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询分类列表失败", err)
	}
	return categories, nil
}

// DeleteCategory 删除一级分类（仅管理员）
func (s *CategoryService) DeleteCategory(ctx context.Context, actor model.Actor, id string) error {
	if !actor.IsAdmin() {
		return errs.New(errs.KindUnauthorized, "仅管理员可以管理分类")
	}
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "分类不存在: %s", id)
		}
		return errs.Wrap(errs.KindInternal, "查询分类失败", err)
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ==================== 二级分类 ====================

// UpsertSubCategory 创建或更新二级分类（仅管理员）
func (s *CategoryService) UpsertSubCategory(ctx context.Context, actor model.Actor, req dto.SubCategoryUpsertReq) (*model.SubCategory, error) {
	if !actor.IsAdmin() {
		return nil, errs.New(errs.KindUnauthorized, "仅管理员可以管理分类")
	}

	// 父分类必须存在
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "分类不存在: %s", req.CategoryID)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询分类失败", err)
	}

	subCategory := &model.SubCategory{
		BaseModel:  model.BaseModel{ID: req.ID},
		Name:       req.Name,
		Image:      req.Image,
		Url:        req.Url,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	}
	if err := s.subCategoryRepo.Upsert(ctx, subCategory); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.diagnoseSubCategoryConflict(ctx, subCategory)
		}
		log.Printf("二级分类写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "二级分类写入失败", err)
	}
	return subCategory, nil
}

// ListSubCategories 全部二级分类，categoryID 非空时只取该分类下的
func (s *CategoryService) ListSubCategories(ctx context.Context, categoryID string) ([]model.SubCategory, error) {
	var (
		subCategories []model.SubCategory
		err           error
	)
	if categoryID != "" {
		subCategories, err = s.subCategoryRepo.ListByCategory(ctx, categoryID)
	} else {
		subCategories, err = s.subCategoryRepo.List(ctx)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询二级分类列表失败", err)
	}
	return subCategories, nil
}

// SampleSubCategories 首页展示用的二级分类采样
func (s *CategoryService) SampleSubCategories(ctx context.Context, req dto.SubCategorySampleReq) ([]model.SubCategory, error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	subCategories, err := s.subCategoryRepo.ListSample(ctx, req.Limit, req.Random)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询二级分类采样失败", err)
	}
	return subCategories, nil
}

// DeleteSubCategory 删除二级分类（仅管理员）
func (s *CategoryService) DeleteSubCategory(ctx context.Context, actor model.Actor, id string) error {
	if !actor.IsAdmin() {
		return errs.New(errs.KindUnauthorized, "仅管理员可以管理分类")
	}
	if _, err := s.subCategoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "二级分类不存在: %s", id)
		}
		return errs.Wrap(errs.KindInternal, "查询二级分类失败", err)
	}
	return s.subCategoryRepo.Delete(ctx, id)
}

// ==================== 私有方法 ====================

func (s *CategoryService) diagnoseCategoryConflict(ctx context.Context, category *model.Category) error {
	existing, err := s.categoryRepo.FindConflicting(ctx, category)
	if err != nil {
		return errs.New(errs.KindConflict, "分类信息与已有分类冲突")
	}
	if existing.Name == category.Name {
		return errs.Newf(errs.KindConflict, "分类名称已被占用: %s", category.Name)
	}
	return errs.Newf(errs.KindConflict, "分类 URL 已被占用: %s", category.Url)
}

func (s *CategoryService) diagnoseSubCategoryConflict(ctx context.Context, subCategory *model.SubCategory) error {
	existing, err := s.subCategoryRepo.FindConflicting(ctx, subCategory)
	if err != nil {
		return errs.New(errs.KindConflict, "二级分类信息与已有分类冲突")
	}
	if existing.Name == subCategory.Name {
		return errs.Newf(errs.KindConflict, "二级分类名称已被占用: %s", subCategory.Name)
	}
	return errs.Newf(errs.KindConflict, "二级分类 URL 已被占用: %s", subCategory.Url)
}
