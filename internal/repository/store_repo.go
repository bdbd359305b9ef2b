package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*model.Store, error)
	GetByURL(ctx context.Context, url string) (*model.Store, error)
	// GetByURLAndOwner 用于卖家操作前的归属校验
	GetByURLAndOwner(ctx context.Context, url, userID string) (*model.Store, error)
	// Upsert 按主键冲突更新，唯一索引冲突由数据库兜底
	Upsert(ctx context.Context, store *model.Store) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	// FindConflicting 唯一约束命中后的诊断查询，定位是哪个字段冲突
	FindConflicting(ctx context.Context, store *model.Store) (*model.Store, error)

	CountFollowers(ctx context.Context, storeID string) (int64, error)
	ListActive(ctx context.Context) ([]model.Store, error)
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) GetByID(ctx context.Context, id string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByURL(ctx context.Context, url string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByURLAndOwner(ctx context.Context, url, userID string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Where("url = ? AND user_id = ?", url, userID).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) Upsert(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "email", "phone", "url",
			"logo", "cover", "updated_at",
		}),
	}).Create(store).Error
}

func (r *storeRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).Where("id = ?", id).Updates(fields).Error
}

func (r *storeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Store{}, "id = ?", id).Error
}

func (r *storeRepo) FindConflicting(ctx context.Context, store *model.Store) (*model.Store, error) {
	var existing model.Store
	err := r.db.WithContext(ctx).
		Where("id <> ?", store.ID).
		Where(
			r.db.Where("name = ?", store.Name).
				Or("email = ?", store.Email).
				Or("phone = ?", store.Phone).
				Or("url = ?", store.Url),
		).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *storeRepo) CountFollowers(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("store_followers").
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *storeRepo) ListActive(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StoreStatusActive).
		Find(&stores).Error
	return stores, err
}
