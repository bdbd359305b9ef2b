package repository

import (
	"context"

	"gorm.io/gorm"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// ProductFilter 商品列表过滤条件（已解析为 ID）
type ProductFilter struct {
	StoreID       string
	CategoryID    string
	SubCategoryID string
	Page          int
	PageSize      int
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// GetPageData 商品详情页聚合查询：按 slug 取商品，变体按 variantSlug 过滤
	GetPageData(ctx context.Context, productSlug, variantSlug string) (*model.Product, error)
	// GetWithShippingInfo 购物车校验用：带店铺、免邮配置和全部变体尺码
	GetWithShippingInfo(ctx context.Context, id string) (*model.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	VariantSlugExists(ctx context.Context, slug string) (bool, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	// ListBatch 统计任务分批扫描用
	ListBatch(ctx context.Context, offset, limit int) ([]model.Product, error)
	ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetPageData(ctx context.Context, productSlug, variantSlug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("OfferTag").
		Preload("Store").
		Preload("Specs").
		Preload("Questions").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(4)
		}).
		Preload("Reviews.Images").
		Preload("Reviews.User").
		Preload("FreeShipping.EligibleCountries").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("slug = ?", variantSlug)
		}).
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Preload("Variants.Sizes").
		Preload("Variants.Specs").
		Where("slug = ?", productSlug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetWithShippingInfo(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("FreeShipping.EligibleCountries").
		Preload("Variants.Sizes").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) VariantSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) ListByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Preload("Variants.Sizes").
		Where("store_id = ?", storeID).
		Find(&products).Error
	return products, err
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubCategoryID != "" {
		query = query.Where("sub_category_id = ?", filter.SubCategoryID)
	}

	offset := (filter.Page - 1) * filter.PageSize

	var products []model.Product
	err := query.
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Preload("Variants.Sizes").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListBatch(ctx context.Context, offset, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Sizes").
		Preload("Colors").
		Where("product_id = ?", productID).
		Find(&variants).Error
	return variants, err
}

func (r *productRepo) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select(
		"Variants", "Specs", "Questions", "Reviews", "FreeShipping",
	).Delete(&model.Product{BaseModel: model.BaseModel{ID: id}}).Error
}

// ==================== 商品事务单元 ====================

// ProductUnitOfWork 商品 + 首个变体的事务性创建
// 两步写入放进同一事务，避免崩溃后留下没有变体的残缺商品
type ProductUnitOfWork struct {
	db *gorm.DB
}

// NewProductUnitOfWork 创建商品事务单元
func NewProductUnitOfWork(db *gorm.DB) *ProductUnitOfWork {
	return &ProductUnitOfWork{db: db}
}

// CreateWithVariant 在单个事务内创建商品及其首个变体
func (u *ProductUnitOfWork) CreateWithVariant(ctx context.Context, product *model.Product, variant *model.ProductVariant) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		variant.ProductID = product.ID
		return tx.Create(variant).Error
	})
}
