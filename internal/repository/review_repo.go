package repository

import (
	"context"

	"gorm.io/gorm"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// RatingCount 按精确评分值分组的计数（支持半星）
type RatingCount struct {
	Rating float64
	Count  int64
}

// ReviewFilter 评价列表过滤条件
type ReviewFilter struct {
	Rating    float64 // 0 表示不筛选；命中 rating 和 rating+0.5 两档
	HasImages bool
	OrderBy   string // latest / oldest / highest
	Page      int
	PageSize  int
}

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	// GroupByRating 评分直方图的原始数据
	GroupByRating(ctx context.Context, productID string) ([]RatingCount, error)
	// CountWithImages 至少带一张配图的评价数
	CountWithImages(ctx context.Context, productID string) (int64, error)
	ListFiltered(ctx context.Context, productID string, filter ReviewFilter) ([]model.Review, error)
	// Summary 平均分与总数，统计任务重算冗余字段用
	Summary(ctx context.Context, productID string) (avg float64, count int64, err error)
}

// ==================== 仓储实现 ====================

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) GroupByRating(ctx context.Context, productID string) ([]RatingCount, error) {
	var rows []RatingCount
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Group("rating").
		Scan(&rows).Error
	return rows, err
}

func (r *reviewRepo) CountWithImages(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("product_id = ?", productID).
		Where("EXISTS (SELECT 1 FROM review_images WHERE review_images.review_id = reviews.id)").
		Count(&count).Error
	return count, err
}

func (r *reviewRepo) ListFiltered(ctx context.Context, productID string, filter ReviewFilter) ([]model.Review, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("product_id = ?", productID)

	if filter.Rating > 0 {
		// 整星筛选同时命中对应的半星档
		query = query.Where("rating IN (?, ?)", filter.Rating, filter.Rating+0.5)
	}
	if filter.HasImages {
		query = query.Where("EXISTS (SELECT 1 FROM review_images WHERE review_images.review_id = reviews.id)")
	}

	switch filter.OrderBy {
	case "latest":
		query = query.Order("created_at DESC")
	case "oldest":
		query = query.Order("created_at ASC")
	default:
		query = query.Order("rating DESC")
	}

	offset := (filter.Page - 1) * filter.PageSize

	var reviews []model.Review
	err := query.
		Preload("Images").
		Preload("User").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) Summary(ctx context.Context, productID string) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}
