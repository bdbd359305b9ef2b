package service

import (
	"context"
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
)

// ReviewService 商品评价与评分统计
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// GetRatingStatistics 评分直方图
// 固定返回 1~5 共五个桶，半星向下取整归入整星桶
// 无评价时各桶 percentage 为 0，不做除零
func (s *ReviewService) GetRatingStatistics(ctx context.Context, productID string) (*dto.RatingStatisticsResp, error) {
	rows, err := s.reviewRepo.GroupByRating(ctx, productID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询评分分布失败", err)
	}

	var total int64
	buckets := make([]int64, 6) // 下标 1~5
	for _, row := range rows {
		star := int(math.Floor(row.Rating))
		// 区间外的评分不进任何桶，只计入总数
		if star < 1 || star > 5 {
			total += row.Count
			continue
		}
		buckets[star] += row.Count
		total += row.Count
	}

	stats := make([]dto.RatingBucketResp, 0, 5)
	for star := 1; star <= 5; star++ {
		bucket := dto.RatingBucketResp{
			Rating:     star,
			NumReviews: buckets[star],
		}
		if total > 0 {
			bucket.Percentage = float64(buckets[star]) / float64(total) * 100
		}
		stats = append(stats, bucket)
	}

	withImages, err := s.reviewRepo.CountWithImages(ctx, productID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询带图评价数失败", err)
	}

	return &dto.RatingStatisticsResp{
		RatingStatistics:       stats,
		ReviewsWithImagesCount: withImages,
		TotalReviews:           total,
	}, nil
}

// GetProductFilteredReviews 按条件筛选商品评价
func (s *ReviewService) GetProductFilteredReviews(ctx context.Context, productID string, req dto.ReviewListReq) ([]model.Review, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 4
	}

	reviews, err := s.reviewRepo.ListFiltered(ctx, productID, repository.ReviewFilter{
		Rating:    req.Rating,
		HasImages: req.HasImages,
		OrderBy:   req.OrderBy,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		log.Printf("查询商品评价失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "查询商品评价失败", err)
	}
	return reviews, nil
}

// CreateReview 发表评价并重算商品冗余评分
func (s *ReviewService) CreateReview(ctx context.Context, actor model.Actor, productID string, req dto.ReviewCreateReq) (*model.Review, error) {
	if actor.UserID == "" {
		return nil, errs.New(errs.KindUnauthenticated, "请先登录")
	}
	if !isValidRating(req.Rating) {
		return nil, errs.Newf(errs.KindValidation, "评分必须在 1~5 之间且步长为 0.5: %v", req.Rating)
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "商品不存在: %s", productID)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询商品失败", err)
	}

	review := &model.Review{
		Rating:    req.Rating,
		Review:    req.Review,
		Variant:   req.Variant,
		Color:     req.Color,
		Size:      req.Size,
		ProductID: productID,
		UserID:    actor.UserID,
	}
	for _, img := range req.Images {
		review.Images = append(review.Images, model.ReviewImage{Url: img.Url})
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		log.Printf("评价写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "评价写入失败", err)
	}

	// 同步重算冗余字段，统计任务会定期兜底修正
	if err := s.recalcProductRating(ctx, productID); err != nil {
		log.Printf("重算商品评分失败: %v", err)
	}

	return review, nil
}

// ==================== 私有方法 ====================

// recalcProductRating 依据评价表重算商品的平均分和评价数
func (s *ReviewService) recalcProductRating(ctx context.Context, productID string) error {
	avg, count, err := s.reviewRepo.Summary(ctx, productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{
		"rating":      avg,
		"num_reviews": count,
	})
}

// isValidRating 评分取值 1~5 且步长 0.5
func isValidRating(rating float64) bool {
	if rating < 1 || rating > 5 {
		return false
	}
	return math.Mod(rating*2, 1) == 0
}
