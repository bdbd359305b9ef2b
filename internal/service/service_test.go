package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gomarket_v1/internal/model"
)

// ==================== 测试辅助 ====================

// setupSvcTestDB 内存数据库 + 全量建表
// TranslateError 打开，唯一约束冲突和生产环境一样转成 gorm.ErrDuplicatedKey
func setupSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Store{}, &model.ShippingRate{},
		&model.Country{}, &model.FreeShipping{}, &model.FreeShippingCountry{},
		&model.Category{}, &model.SubCategory{}, &model.OfferTag{},
		&model.Product{}, &model.ProductVariant{}, &model.ProductVariantImage{},
		&model.Color{}, &model.Size{}, &model.Spec{}, &model.Question{},
		&model.Review{}, &model.ReviewImage{},
	)
	if err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func sellerActor(userID string) model.Actor {
	return model.Actor{UserID: userID, Email: userID + "@test.com", Role: model.RoleSeller}
}

func adminActor() model.Actor {
	return model.Actor{UserID: "admin-1", Email: "admin@test.com", Role: model.RoleAdmin}
}

func buyerActor(userID string) model.Actor {
	return model.Actor{UserID: userID, Email: userID + "@test.com", Role: model.RoleUser}
}

// seedUser 建一个用户
func seedUser(t *testing.T, db *gorm.DB, id, role string) *model.User {
	user := &model.User{
		BaseModel: model.BaseModel{ID: id},
		Name:      "User " + id,
		Email:     id + "@test.com",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// seedStore 建一个带默认运费配置的店铺
func seedStore(t *testing.T, db *gorm.DB, id, ownerID string) *model.Store {
	store := &model.Store{
		BaseModel:                        model.BaseModel{ID: id},
		Name:                             "Store " + id,
		Email:                            id + "@store.com",
		Phone:                            "+1000" + id,
		Url:                              "store-" + id,
		Status:                           model.StoreStatusActive,
		ReturnPolicy:                     "Return in 30 days.",
		DefaultShippingService:           "International Delivery",
		DefaultShippingFeePerItem:        5,
		DefaultShippingFeeAdditionalItem: 2,
		DefaultShippingFeePerKg:          3,
		DefaultShippingFeeFixed:          10,
		DefaultDeliveryTimeMin:           7,
		DefaultDeliveryTimeMax:           31,
		UserID:                           ownerID,
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建测试店铺失败: %v", err)
	}
	return store
}

// seedCountry 建一个国家
func seedCountry(t *testing.T, db *gorm.DB, name, code string) *model.Country {
	country := &model.Country{Name: name, Code: code}
	if err := db.Create(country).Error; err != nil {
		t.Fatalf("创建测试国家失败: %v", err)
	}
	return country
}

// seedTaxonomy 建一对一级/二级分类
func seedTaxonomy(t *testing.T, db *gorm.DB, suffix string) (*model.Category, *model.SubCategory) {
	category := &model.Category{Name: "Category " + suffix, Url: "category-" + suffix}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	subCategory := &model.SubCategory{
		Name:       "SubCategory " + suffix,
		Url:        "sub-category-" + suffix,
		CategoryID: category.ID,
	}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("创建测试二级分类失败: %v", err)
	}
	return category, subCategory
}

// seedProduct 建一个商品（不带变体）
func seedProduct(t *testing.T, db *gorm.DB, storeID string, method model.ShippingFeeMethod, slug string) *model.Product {
	category, subCategory := seedTaxonomy(t, db, slug)
	product := &model.Product{
		Name:              "Product " + slug,
		Slug:              slug,
		ShippingFeeMethod: method,
		StoreID:           storeID,
		CategoryID:        category.ID,
		SubCategoryID:     subCategory.ID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}
	return product
}
