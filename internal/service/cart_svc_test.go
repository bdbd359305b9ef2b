package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/geo"
	"gomarket_v1/pkg/utils"
)

func newTestCartSvc(db *gorm.DB) *CartService {
	return NewCartService(repository.NewProductRepository(db), newTestShippingSvc(db))
}

// seedCartProduct 建好一个带变体和尺码的商品, 返回客户端视角的购物车快照
func seedCartProduct(t *testing.T, db *gorm.DB) utils.CartProduct {
	t.Helper()
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	seedCountry(t, db, "United States", "US")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	productSvc := newTestProductSvc(db)
	product, err := productSvc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	var variant model.ProductVariant
	if err = db.Preload("Sizes").Where("product_id = ?", product.ID).First(&variant).Error; err != nil {
		t.Fatalf("查询变体失败: %v", err)
	}

	return utils.CartProduct{
		ProductID:       product.ID,
		VariantID:       variant.ID,
		ProductSlug:     product.Slug,
		VariantSlug:     variant.Slug,
		Name:            product.Name,
		VariantName:     variant.VariantName,
		Image:           "http://img.test/scarf.jpg",
		VariantImage:    "http://img.test/scarf.jpg",
		SizeID:          variant.Sizes[0].ID,
		Size:            variant.Sizes[0].Size,
		Quantity:        2,
		Price:           1, // 客户端过期价, 校验后以库内为准
		Stock:           1,
		Weight:          variant.Weight,
		ShippingMethod:  "ITEM",
		DeliveryTimeMin: 7,
		DeliveryTimeMax: 31,
	}
}

func usCountry() geo.Country {
	return geo.Country{Name: "United States", Code: "US"}
}

func TestCartService_ValidateRecalculatesFromDB(t *testing.T) {
	db := setupSvcTestDB(t)
	item := seedCartProduct(t, db)
	svc := newTestCartSvc(db)

	result, err := svc.ValidateCart(context.Background(), usCountry(), []utils.CartProduct{item})
	if err != nil {
		t.Fatalf("校验购物车失败: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("结果条数期望 1, 实际: %d", len(result))
	}

	got := result[0]
	if !got.Valid {
		t.Fatal("快照与库内一致时应为有效")
	}
	if got.Price != 29.9 {
		t.Errorf("价格应以库内为准 29.9, 实际: %v", got.Price)
	}
	if got.Stock != 10 {
		t.Errorf("库存应以库内为准 10, 实际: %d", got.Stock)
	}
	// 店铺默认 ITEM 计费: 首件 5 + 续件 2
	if got.ShippingFee != 7 {
		t.Errorf("2 件运费期望 7, 实际: %v", got.ShippingFee)
	}
	if got.DeliveryTimeMin != 7 || got.DeliveryTimeMax != 31 {
		t.Errorf("配送区间期望 7/31, 实际: %d/%d", got.DeliveryTimeMin, got.DeliveryTimeMax)
	}
}

func TestCartService_ValidateClampsQuantityToStock(t *testing.T) {
	db := setupSvcTestDB(t)
	item := seedCartProduct(t, db)
	item.Quantity = 99
	svc := newTestCartSvc(db)

	result, err := svc.ValidateCart(context.Background(), usCountry(), []utils.CartProduct{item})
	if err != nil {
		t.Fatalf("校验购物车失败: %v", err)
	}
	if !result[0].Valid {
		t.Fatal("超量只截断, 不判无效")
	}
	if result[0].Quantity != 10 {
		t.Errorf("数量应截断到库存 10, 实际: %d", result[0].Quantity)
	}
}

func TestCartService_ValidateUnknownProductInvalid(t *testing.T) {
	db := setupSvcTestDB(t)
	item := seedCartProduct(t, db)
	item.ProductID = "missing-product"
	svc := newTestCartSvc(db)

	result, err := svc.ValidateCart(context.Background(), usCountry(), []utils.CartProduct{item})
	if err != nil {
		t.Fatalf("校验购物车失败: %v", err)
	}
	if result[0].Valid {
		t.Error("商品不存在应判无效")
	}
}

func TestCartService_ValidateIncompleteSnapshotInvalid(t *testing.T) {
	db := setupSvcTestDB(t)
	item := seedCartProduct(t, db)
	item.Image = ""
	svc := newTestCartSvc(db)

	result, err := svc.ValidateCart(context.Background(), usCountry(), []utils.CartProduct{item})
	if err != nil {
		t.Fatalf("校验购物车失败: %v", err)
	}
	if result[0].Valid {
		t.Error("快照字段不全应判无效")
	}
}

func TestCartService_ValidateUndeliverableCountryInvalid(t *testing.T) {
	db := setupSvcTestDB(t)
	item := seedCartProduct(t, db)
	svc := newTestCartSvc(db)

	result, err := svc.ValidateCart(context.Background(), geo.Country{Name: "Atlantis", Code: "AT"}, []utils.CartProduct{item})
	if err != nil {
		t.Fatalf("校验购物车失败: %v", err)
	}
	if result[0].Valid {
		t.Error("国家不在基准表内应判无效")
	}
}
