package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// CountryRepository 国家基准表仓储接口
type CountryRepository interface {
	GetByID(ctx context.Context, id string) (*model.Country, error)
	// GetByNameAndCode 精确匹配 (name, code)，找不到即"无可用配送"
	GetByNameAndCode(ctx context.Context, name, code string) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
	Create(ctx context.Context, country *model.Country) error
}

// ShippingRateRepository 运费覆盖仓储接口
type ShippingRateRepository interface {
	// GetByCountryAndStore (store, country) 至多一条
	GetByCountryAndStore(ctx context.Context, countryID, storeID string) (*model.ShippingRate, error)
	ListByStore(ctx context.Context, storeID string) ([]model.ShippingRate, error)
	// Upsert 按 (country_id, store_id) 冲突更新
	Upsert(ctx context.Context, rate *model.ShippingRate) error
}

// ==================== Country 实现 ====================

type countryRepo struct {
	db *gorm.DB
}

// NewCountryRepository 创建国家仓储
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) GetByID(ctx context.Context, id string) (*model.Country, error) {
	var country model.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepo) GetByNameAndCode(ctx context.Context, name, code string) (*model.Country, error) {
	var country model.Country
	err := r.db.WithContext(ctx).
		Where("name = ? AND code = ?", name, code).
		First(&country).Error
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepo) List(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error
	return countries, err
}

func (r *countryRepo) Create(ctx context.Context, country *model.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

// ==================== ShippingRate 实现 ====================

type shippingRateRepo struct {
	db *gorm.DB
}

// NewShippingRateRepository 创建运费覆盖仓储
func NewShippingRateRepository(db *gorm.DB) ShippingRateRepository {
	return &shippingRateRepo{db: db}
}

func (r *shippingRateRepo) GetByCountryAndStore(ctx context.Context, countryID, storeID string) (*model.ShippingRate, error) {
	var rate model.ShippingRate
	err := r.db.WithContext(ctx).
		Where("country_id = ? AND store_id = ?", countryID, storeID).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *shippingRateRepo) ListByStore(ctx context.Context, storeID string) ([]model.ShippingRate, error) {
	var rates []model.ShippingRate
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&rates).Error
	return rates, err
}

func (r *shippingRateRepo) Upsert(ctx context.Context, rate *model.ShippingRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "country_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shipping_service", "shipping_fee_per_item", "shipping_fee_additional_item",
			"shipping_fee_per_kg", "shipping_fee_fixed",
			"delivery_time_min", "delivery_time_max", "return_policy", "updated_at",
		}),
	}).Create(rate).Error
}
