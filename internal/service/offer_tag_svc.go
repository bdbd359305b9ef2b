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

// OfferTagService 活动标签
type OfferTagService struct {
	tagRepo repository.OfferTagRepository
}

// NewOfferTagService 创建活动标签服务
func NewOfferTagService(tagRepo repository.OfferTagRepository) *OfferTagService {
	return &OfferTagService{tagRepo: tagRepo}
}

// UpsertOfferTag 创建或更新活动标签（仅管理员）
func (s *OfferTagService) UpsertOfferTag(ctx context.Context, actor model.Actor, req dto.OfferTagUpsertReq) (*model.OfferTag, error) {
	if !actor.IsAdmin() {
		return nil, errs.New(errs.KindUnauthorized, "仅管理员可以管理活动标签")
	}

	tag := &model.OfferTag{
		BaseModel: model.BaseModel{ID: req.ID},
		Name:      req.Name,
		Url:       req.Url,
	}
	if err := s.tagRepo.Upsert(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.diagnoseConflict(ctx, tag)
		}
		log.Printf("活动标签写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "活动标签写入失败", err)
	}
	return tag, nil
}

// ListOfferTags 全部活动标签，按关联商品数降序
func (s *OfferTagService) ListOfferTags(ctx context.Context) ([]model.OfferTag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询活动标签列表失败", err)
	}
	return tags, nil
}

// DeleteOfferTag 删除活动标签（仅管理员）
func (s *OfferTagService) DeleteOfferTag(ctx context.Context, actor model.Actor, id string) error {
	if !actor.IsAdmin() {
		return errs.New(errs.KindUnauthorized, "仅管理员可以管理活动标签")
	}
	if _, err := s.tagRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "活动标签不存在: %s", id)
		}
		return errs.Wrap(errs.KindInternal, "查询活动标签失败", err)
	}
	return s.tagRepo.Delete(ctx, id)
}

// ==================== 私有方法 ====================

func (s *OfferTagService) diagnoseConflict(ctx context.Context, tag *model.OfferTag) error {
	existing, err := s.tagRepo.FindConflicting(ctx, tag)
	if err != nil {
		return errs.New(errs.KindConflict, "活动标签与已有标签冲突")
	}
	if existing.Name == tag.Name {
		return errs.Newf(errs.KindConflict, "活动标签名称已被占用: %s", tag.Name)
	}
	return errs.Newf(errs.KindConflict, "活动标签 URL 已被占用: %s", tag.Url)
}
