package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// CategoryRepository 一级分类仓储接口
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByURL(ctx context.Context, url string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	// Upsert 按主键冲突更新，name/url 唯一冲突由数据库兜底
	Upsert(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
	FindConflicting(ctx context.Context, category *model.Category) (*model.Category, error)
}

// SubCategoryRepository 二级分类仓储接口
type SubCategoryRepository interface {
	GetByID(ctx context.Context, id string) (*model.SubCategory, error)
	GetByURL(ctx context.Context, url string) (*model.SubCategory, error)
	List(ctx context.Context) ([]model.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.SubCategory, error)
	// ListSample 取最新 limit 条；random=true 时随机采样（原生 SQL）
	ListSample(ctx context.Context, limit int, random bool) ([]model.SubCategory, error)
	Upsert(ctx context.Context, subCategory *model.SubCategory) error
	Delete(ctx context.Context, id string) error
	FindConflicting(ctx context.Context, subCategory *model.SubCategory) (*model.SubCategory, error)
}

// ==================== Category 实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建一级分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetByURL(ctx context.Context, url string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Upsert(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image", "url", "featured", "updated_at"}),
	}).Create(category).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepo) FindConflicting(ctx context.Context, category *model.Category) (*model.Category, error) {
	var existing model.Category
	err := r.db.WithContext(ctx).
		Where("id <> ?", category.ID).
		Where(r.db.Where("name = ?", category.Name).Or("url = ?", category.Url)).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// ==================== SubCategory 实现 ====================

type subCategoryRepo struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建二级分类仓储
func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepo{db: db}
}

func (r *subCategoryRepo) GetByID(ctx context.Context, id string) (*model.SubCategory, error) {
	var subCategory model.SubCategory
	if err := r.db.WithContext(ctx).First(&subCategory, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepo) GetByURL(ctx context.Context, url string) (*model.SubCategory, error) {
	var subCategory model.SubCategory
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&subCategory).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepo) List(ctx context.Context) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("updated_at DESC").
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("updated_at DESC").
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepo) ListSample(ctx context.Context, limit int, random bool) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	if random {
		// 首页随机展示用，整个系统唯一的原生 SQL
		sql := fmt.Sprintf("SELECT * FROM sub_categories WHERE deleted_at IS NULL ORDER BY RANDOM() LIMIT %d", limit)
		if err := r.db.WithContext(ctx).Raw(sql).Scan(&subCategories).Error; err != nil {
			return nil, err
		}
		return subCategories, nil
	}

	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepo) Upsert(ctx context.Context, subCategory *model.SubCategory) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image", "url", "featured", "category_id", "updated_at"}),
	}).Create(subCategory).Error
}

func (r *subCategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.SubCategory{}, "id = ?", id).Error
}

func (r *subCategoryRepo) FindConflicting(ctx context.Context, subCategory *model.SubCategory) (*model.SubCategory, error) {
	var existing model.SubCategory
	err := r.db.WithContext(ctx).
		Where("id <> ?", subCategory.ID).
		Where(r.db.Where("name = ?", subCategory.Name).Or("url = ?", subCategory.Url)).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
