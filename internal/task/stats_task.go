package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"gomarket_v1/internal/repository"
)

// ==================== StatsTask 统计重算任务 ====================

// StatsTask 定时重算商品和店铺的冗余统计字段
// 商品：rating / num_reviews；店铺：average_rating
// 评价写入时已同步更新一次，这里分批全量兜底修正
type StatsTask struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	storeRepo   repository.StoreRepository
	cron        *cron.Cron

	batchSize int
	spec      string
}

// NewStatsTask 创建统计重算任务
func NewStatsTask(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	storeRepo repository.StoreRepository,
	spec string,
) *StatsTask {
	if spec == "" {
		// 每天 04:00
		spec = "0 0 4 * * *"
	}
	return &StatsTask{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		storeRepo:   storeRepo,
		cron:        cron.New(cron.WithSeconds()),
		batchSize:   100,
		spec:        spec,
	}
}

// Start 启动定时任务
func (t *StatsTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		t.Run(ctx)
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	log.Printf("统计重算任务已启动, spec: %s", t.spec)
	return nil
}

// Stop 停止定时任务
func (t *StatsTask) Stop() {
	t.cron.Stop()
}

// Run 执行一轮全量重算
func (t *StatsTask) Run(ctx context.Context) {
	start := time.Now()
	var scanned, updated int

	for offset := 0; ; offset += t.batchSize {
		products, err := t.productRepo.ListBatch(ctx, offset, t.batchSize)
		if err != nil {
			log.Printf("统计任务扫描商品失败, offset: %d, err: %v", offset, err)
			return
		}
		if len(products) == 0 {
			break
		}
		scanned += len(products)

		for i := range products {
			product := &products[i]
			avg, count, err := t.reviewRepo.Summary(ctx, product.ID)
			if err != nil {
				log.Printf("统计任务查询评价汇总失败, product: %s, err: %v", product.ID, err)
				continue
			}
			if product.Rating == avg && int64(product.NumReviews) == count {
				continue
			}
			err = t.productRepo.UpdateFields(ctx, product.ID, map[string]interface{}{
				"rating":      avg,
				"num_reviews": count,
			})
			if err != nil {
				log.Printf("统计任务更新商品失败, product: %s, err: %v", product.ID, err)
				continue
			}
			updated++
		}
	}

	storesUpdated := t.recalcStoreRatings(ctx)
	log.Printf("统计重算完成, 扫描商品: %d, 更新商品: %d, 更新店铺: %d, 耗时: %v",
		scanned, updated, storesUpdated, time.Since(start))
}

// ==================== 私有方法 ====================

// recalcStoreRatings 按店铺下商品的平均分重算店铺评分
func (t *StatsTask) recalcStoreRatings(ctx context.Context) int {
	stores, err := t.storeRepo.ListActive(ctx)
	if err != nil {
		log.Printf("统计任务查询店铺失败: %v", err)
		return 0
	}

	updated := 0
	for i := range stores {
		store := &stores[i]
		products, err := t.productRepo.ListByStore(ctx, store.ID)
		if err != nil {
			log.Printf("统计任务查询店铺商品失败, store: %s, err: %v", store.ID, err)
			continue
		}

		// 只统计有评价的商品
		var sum float64
		var rated int
		for _, p := range products {
			if p.NumReviews > 0 {
				sum += p.Rating
				rated++
			}
		}
		avg := 0.0
		if rated > 0 {
			avg = sum / float64(rated)
		}
		if store.AverageRating == avg {
			continue
		}

		err = t.storeRepo.UpdateFields(ctx, store.ID, map[string]interface{}{
			"average_rating": avg,
		})
		if err != nil {
			log.Printf("统计任务更新店铺失败, store: %s, err: %v", store.ID, err)
			continue
		}
		updated++
	}
	return updated
}
