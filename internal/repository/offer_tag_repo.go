package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gomarket_v1/internal/model"
)

// OfferTagRepository 活动标签仓储接口
type OfferTagRepository interface {
	GetByID(ctx context.Context, id string) (*model.OfferTag, error)
	// List 按关联商品数降序
	List(ctx context.Context) ([]model.OfferTag, error)
	Upsert(ctx context.Context, tag *model.OfferTag) error
	Delete(ctx context.Context, id string) error
	FindConflicting(ctx context.Context, tag *model.OfferTag) (*model.OfferTag, error)
}

type offerTagRepo struct {
	db *gorm.DB
}

// NewOfferTagRepository 创建活动标签仓储
func NewOfferTagRepository(db *gorm.DB) OfferTagRepository {
	return &offerTagRepo{db: db}
}

func (r *offerTagRepo) GetByID(ctx context.Context, id string) (*model.OfferTag, error) {
	var tag model.OfferTag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *offerTagRepo) List(ctx context.Context) ([]model.OfferTag, error) {
	var tags []model.OfferTag
	err := r.db.WithContext(ctx).
		Model(&model.OfferTag{}).
		Select("offer_tags.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.offer_tag_id = offer_tags.id AND products.deleted_at IS NULL").
		Group("offer_tags.id").
		Order("product_count DESC").
		Preload("Products").
		Find(&tags).Error
	return tags, err
}

func (r *offerTagRepo) Upsert(ctx context.Context, tag *model.OfferTag) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "url", "updated_at"}),
	}).Create(tag).Error
}

func (r *offerTagRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.OfferTag{}, "id = ?", id).Error
}

func (r *offerTagRepo) FindConflicting(ctx context.Context, tag *model.OfferTag) (*model.OfferTag, error) {
	var existing model.OfferTag
	err := r.db.WithContext(ctx).
		Where("id <> ?", tag.ID).
		Where(r.db.Where("name = ?", tag.Name).Or("url = ?", tag.Url)).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
