package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
	"gomarket_v1/pkg/geo"
)

func newTestProductSvc(db *gorm.DB) *ProductService {
	productRepo := repository.NewProductRepository(db)
	reviewSvc := NewReviewService(repository.NewReviewRepository(db), productRepo)
	shippingSvc := newTestShippingSvc(db)
	return NewProductService(
		productRepo,
		repository.NewStoreRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
		repository.NewUserRepository(db),
		repository.NewProductUnitOfWork(db),
		shippingSvc,
		reviewSvc,
	)
}

func productUpsertReq(subCategory *model.SubCategory) dto.ProductUpsertReq {
	return dto.ProductUpsertReq{
		Name:          "Wool Scarf",
		Description:   "Hand knitted scarf",
		Brand:         "Handmade",
		CategoryID:    subCategory.CategoryID,
		SubCategoryID: subCategory.ID,
		VariantName:   "Red Wool Scarf",
		Weight:        0.3,
		Images:        []dto.ImageReq{{Url: "http://img.test/scarf.jpg"}},
		Sizes:         []dto.SizeReq{{Size: "M", Quantity: 10, Price: 29.9}},
		Colors:        []dto.ColorReq{{Color: "Red"}},
	}
}

// ==================== 商品创建 ====================

func TestProductService_UpsertCreatesProductAndVariant(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	product, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if product.Slug != "wool-scarf" {
		t.Errorf("商品 slug 期望 wool-scarf, 实际: %s", product.Slug)
	}
	if product.ShippingFeeMethod != model.ShippingFeeMethodItem {
		t.Errorf("未指定计费方式时默认 ITEM, 实际: %s", product.ShippingFeeMethod)
	}

	var variants []model.ProductVariant
	db.Where("product_id = ?", product.ID).Find(&variants)
	if len(variants) != 1 {
		t.Fatalf("商品应带一个变体, 实际: %d", len(variants))
	}
	if variants[0].Slug != "red-wool-scarf" {
		t.Errorf("变体 slug 期望 red-wool-scarf, 实际: %s", variants[0].Slug)
	}
}

func TestProductService_UpsertSlugCollisionGetsSuffix(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	actor := sellerActor("seller-1")

	first, err := svc.UpsertProduct(context.Background(), actor, store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建第一个商品失败: %v", err)
	}

	req := productUpsertReq(subCategory)
	req.VariantName = "Blue Wool Scarf"
	second, err := svc.UpsertProduct(context.Background(), actor, store.Url, req)
	if err != nil {
		t.Fatalf("创建同名商品失败: %v", err)
	}

	if first.Slug != "wool-scarf" || second.Slug != "wool-scarf-1" {
		t.Errorf("同名商品应追加后缀, 实际: %s / %s", first.Slug, second.Slug)
	}
}

func TestProductService_UpsertAddVariantToExisting(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	actor := sellerActor("seller-1")

	product, err := svc.UpsertProduct(context.Background(), actor, store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	req := productUpsertReq(subCategory)
	req.ProductID = product.ID
	req.VariantName = "Green Wool Scarf"
	if _, err = svc.UpsertProduct(context.Background(), actor, store.Url, req); err != nil {
		t.Fatalf("追加变体失败: %v", err)
	}

	var count int64
	db.Model(&model.ProductVariant{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 2 {
		t.Errorf("商品应有 2 个变体, 实际: %d", count)
	}
	// 不会产生第二个商品
	db.Model(&model.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("商品数期望 1, 实际: %d", count)
	}
}

func TestProductService_UpsertUnknownMethodRejected(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	req := productUpsertReq(subCategory)
	req.ShippingFeeMethod = "AIR"
	_, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, req)
	if err == nil {
		t.Fatal("未知计费方式应被拒绝")
	}
	if !errs.Is(err, errs.KindValidation) {
		t.Errorf("期望参数错误, 实际类别: %v", errs.KindOf(err))
	}
}

func TestProductService_UpsertWrongTaxonomyRejected(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")
	otherCategory, _ := seedTaxonomy(t, db, "hats")

	svc := newTestProductSvc(db)
	req := productUpsertReq(subCategory)
	req.CategoryID = otherCategory.ID // 二级分类不属于它
	_, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, req)
	if err == nil {
		t.Fatal("分类归属不一致应被拒绝")
	}
	if !errs.Is(err, errs.KindValidation) {
		t.Errorf("期望参数错误, 实际类别: %v", errs.KindOf(err))
	}
}

// ==================== 商品列表 ====================

func TestProductService_GetProductsTotalCountIsPageCount(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	actor := sellerActor("seller-1")
	names := []string{"Alpha", "Beta", "Gamma"}
	for _, name := range names {
		req := productUpsertReq(subCategory)
		req.Name = name
		req.VariantName = name + " Variant"
		if _, err := svc.UpsertProduct(context.Background(), actor, store.Url, req); err != nil {
			t.Fatalf("创建商品 %s 失败: %v", name, err)
		}
	}

	resp, err := svc.GetProducts(context.Background(), dto.ProductListReq{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("查询商品列表失败: %v", err)
	}

	if len(resp.Products) != 2 {
		t.Fatalf("分页大小 2, 实际返回: %d", len(resp.Products))
	}
	// total_count 统计的是当前页条数
	if resp.TotalCount != 2 {
		t.Errorf("total_count 期望 2, 实际: %d", resp.TotalCount)
	}
	if resp.TotalPages != 1 {
		t.Errorf("total_pages 期望 1, 实际: %d", resp.TotalPages)
	}

	// 卡片带变体跳转链接
	card := resp.Products[0]
	if len(card.VariantImages) != 1 {
		t.Fatalf("卡片应带变体链接, 实际: %d", len(card.VariantImages))
	}
	if card.VariantImages[0].Url == "" {
		t.Error("变体跳转链接不应为空")
	}
}

func TestProductService_GetProductsFilterByStore(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	seedUser(t, db, "seller-2", model.RoleSeller)
	store1 := seedStore(t, db, "s1", "seller-1")
	store2 := seedStore(t, db, "s2", "seller-2")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	if _, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store1.Url, productUpsertReq(subCategory)); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	req := productUpsertReq(subCategory)
	req.Name = "Other Product"
	req.VariantName = "Other Variant"
	if _, err := svc.UpsertProduct(context.Background(), sellerActor("seller-2"), store2.Url, req); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	resp, err := svc.GetProducts(context.Background(), dto.ProductListReq{Store: store1.Url, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("查询商品列表失败: %v", err)
	}
	if len(resp.Products) != 1 {
		t.Fatalf("按店铺过滤期望 1 条, 实际: %d", len(resp.Products))
	}
}

// ==================== 商品详情页 ====================

func TestProductService_PageDataAggregates(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	seedUser(t, db, "buyer-1", model.RoleUser)
	store := seedStore(t, db, "s1", "seller-1")
	seedCountry(t, db, "United States", "US")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	product, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	page, err := svc.GetProductPageData(context.Background(), buyerActor("buyer-1"),
		product.Slug, "red-wool-scarf", geo.Country{Name: "United States", Code: "US"})
	if err != nil {
		t.Fatalf("查询详情页失败: %v", err)
	}

	if page.ProductSlug != "wool-scarf" || page.VariantSlug != "red-wool-scarf" {
		t.Errorf("slug 不匹配: %s / %s", page.ProductSlug, page.VariantSlug)
	}
	if page.Store.Name != store.Name {
		t.Errorf("店铺摘要不匹配: %s", page.Store.Name)
	}
	if page.Store.IsUserFollowingStore {
		t.Error("未关注时应为 false")
	}
	if page.ShippingDetails == nil {
		t.Fatal("美国在基准表内, 配送信息不应为 nil")
	}
	if page.ShippingDetails.ShippingFee != 5 {
		t.Errorf("配送费期望默认值 5, 实际: %v", page.ShippingDetails.ShippingFee)
	}
	if len(page.ReviewStatistics.RatingStatistics) != 5 {
		t.Errorf("评分统计应有 5 个桶, 实际: %d", len(page.ReviewStatistics.RatingStatistics))
	}
	if len(page.VariantsInfo) != 1 {
		t.Errorf("变体切换列表期望 1 条, 实际: %d", len(page.VariantsInfo))
	}
}

func TestProductService_PageDataUnknownVariant(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	product, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 变体 slug 不存在，必须恰好命中一个变体
	_, err = svc.GetProductPageData(context.Background(), model.Actor{},
		product.Slug, "missing-variant", geo.Country{Name: "United States", Code: "US"})
	if err == nil {
		t.Fatal("未命中变体应报错")
	}
	if !errs.Is(err, errs.KindNotFound) {
		t.Errorf("期望不存在错误, 实际类别: %v", errs.KindOf(err))
	}
}

func TestProductService_PageDataUnknownCountryNilShipping(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	product, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	page, err := svc.GetProductPageData(context.Background(), model.Actor{},
		product.Slug, "red-wool-scarf", geo.Country{Name: "Atlantis", Code: "AT"})
	if err != nil {
		t.Fatalf("查询详情页失败: %v", err)
	}
	if page.ShippingDetails != nil {
		t.Error("国家不在基准表时配送信息应为 nil")
	}
}

// ==================== 删除 ====================

func TestProductService_DeleteOwnershipEnforced(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	seedUser(t, db, "seller-2", model.RoleSeller)
	store := seedStore(t, db, "s1", "seller-1")
	_, subCategory := seedTaxonomy(t, db, "scarves")

	svc := newTestProductSvc(db)
	product, err := svc.UpsertProduct(context.Background(), sellerActor("seller-1"), store.Url, productUpsertReq(subCategory))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if err = svc.DeleteProduct(context.Background(), sellerActor("seller-2"), product.ID); err == nil {
		t.Fatal("非店主删除商品应被拒绝")
	}

	// 管理员可以删除
	if err = svc.DeleteProduct(context.Background(), adminActor(), product.ID); err != nil {
		t.Fatalf("管理员删除商品失败: %v", err)
	}
}
