package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
	"gomarket_v1/pkg/geo"
	"gomarket_v1/pkg/utils"
)

// ProductService 商品与变体
type ProductService struct {
	productRepo     repository.ProductRepository
	storeRepo       repository.StoreRepository
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	userRepo        repository.UserRepository
	uow             *repository.ProductUnitOfWork
	shippingSvc     *ShippingService
	reviewSvc       *ReviewService
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	userRepo repository.UserRepository,
	uow *repository.ProductUnitOfWork,
	shippingSvc *ShippingService,
	reviewSvc *ReviewService,
) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		storeRepo:       storeRepo,
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		userRepo:        userRepo,
		uow:             uow,
		shippingSvc:     shippingSvc,
		reviewSvc:       reviewSvc,
	}
}

// UpsertProduct 创建商品或在已有商品下新增变体
// product_id 非空时走"加变体"路径，否则商品和首个变体在同一事务内创建
func (p *ProductService) UpsertProduct(ctx context.Context, actor model.Actor, storeURL string, req dto.ProductUpsertReq) (*model.Product, error) {
	store, err := p.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return nil, err
	}

	// 计费方式在入口处解析，未知值直接拒绝
	methodStr := req.ShippingFeeMethod
	if methodStr == "" {
		methodStr = string(model.ShippingFeeMethodItem)
	}
	method, err := model.ParseShippingFeeMethod(methodStr)
	if err != nil {
		return nil, err
	}

	variant, err := p.buildVariant(ctx, req)
	if err != nil {
		return nil, err
	}

	// 加变体路径：商品必须存在且属于当前店铺
	if req.ProductID != "" {
		product, err := p.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Newf(errs.KindNotFound, "商品不存在: %s", req.ProductID)
			}
			return nil, errs.Wrap(errs.KindInternal, "查询商品失败", err)
		}
		if product.StoreID != store.ID {
			return nil, errs.New(errs.KindUnauthorized, "商品不属于该店铺")
		}

		variant.ProductID = product.ID
		if err = p.productRepo.CreateVariant(ctx, variant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errs.Newf(errs.KindConflict, "变体 slug 已被占用: %s", variant.Slug)
			}
			log.Printf("变体写入失败: %v", err)
			return nil, errs.Wrap(errs.KindInternal, "变体写入失败", err)
		}
		return product, nil
	}

	// 新建路径：校验分类归属，商品 + 变体进同一事务
	if err = p.checkTaxonomy(ctx, req.CategoryID, req.SubCategoryID); err != nil {
		return nil, err
	}

	productSlug, err := utils.UniqueSlug(req.Name, func(candidate string) (bool, error) {
		return p.productRepo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "生成商品 slug 失败", err)
	}

	product := &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		Slug:              productSlug,
		Brand:             req.Brand,
		ShippingFeeMethod: method,
		StoreID:           store.ID,
		CategoryID:        req.CategoryID,
		SubCategoryID:     req.SubCategoryID,
		OfferTagID:        req.OfferTagID,
	}
	for _, spec := range req.ProductSpecs {
		product.Specs = append(product.Specs, model.Spec{Name: spec.Name, Value: spec.Value})
	}
	for _, q := range req.Questions {
		product.Questions = append(product.Questions, model.Question{Question: q.Question, Answer: q.Answer})
	}

	if err = p.uow.CreateWithVariant(ctx, product, variant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.New(errs.KindConflict, "商品或变体 slug 已被占用")
		}
		log.Printf("商品写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "商品写入失败", err)
	}
	return product, nil
}

// GetProductMainInfo 商品主信息（编辑表单回填用）
func (p *ProductService) GetProductMainInfo(ctx context.Context, productID string) (*dto.ProductMainInfoResp, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "商品不存在: %s", productID)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询商品失败", err)
	}
	return &dto.ProductMainInfoResp{
		ProductID:     product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Brand:         product.Brand,
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
		StoreID:       product.StoreID,
	}, nil
}

// GetStoreProducts 店铺全部商品（卖家后台）
func (p *ProductService) GetStoreProducts(ctx context.Context, actor model.Actor, storeURL string) ([]model.Product, error) {
	store, err := p.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return nil, err
	}
	products, err := p.productRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询店铺商品失败", err)
	}
	return products, nil
}

// GetProducts 商品卡片列表（店面）
// total_count 统计的是当前页返回的条数
func (p *ProductService) GetProducts(ctx context.Context, req dto.ProductListReq) (*dto.ProductListResp, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	filter := repository.ProductFilter{Page: req.Page, PageSize: req.PageSize}
	if req.Store != "" {
		store, err := p.storeRepo.GetByURL(ctx, req.Store)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Newf(errs.KindNotFound, "店铺不存在: %s", req.Store)
			}
			return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
		}
		filter.StoreID = store.ID
	}
	if req.Category != "" {
		category, err := p.categoryRepo.GetByURL(ctx, req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Newf(errs.KindNotFound, "分类不存在: %s", req.Category)
			}
			return nil, errs.Wrap(errs.KindInternal, "查询分类失败", err)
		}
		filter.CategoryID = category.ID
	}
	if req.SubCategory != "" {
		subCategory, err := p.subCategoryRepo.GetByURL(ctx, req.SubCategory)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Newf(errs.KindNotFound, "二级分类不存在: %s", req.SubCategory)
			}
			return nil, errs.Wrap(errs.KindInternal, "查询二级分类失败", err)
		}
		filter.SubCategoryID = subCategory.ID
	}

	products, err := p.productRepo.List(ctx, filter)
	if err != nil {
		log.Printf("查询商品列表失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "查询商品列表失败", err)
	}

	cards := make([]dto.ProductCardResp, 0, len(products))
	for i := range products {
		cards = append(cards, shapeProductCard(&products[i]))
	}

	totalCount := len(cards)
	return &dto.ProductListResp{
		Products:    cards,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(req.PageSize))),
		CurrentPage: req.Page,
		PageSize:    req.PageSize,
		TotalCount:  totalCount,
	}, nil
}

// GetProductPageData 商品详情页聚合
// 必须恰好命中一个变体，否则视为不存在
// 访客未登录时 actor 为零值，关注状态按未关注处理
func (p *ProductService) GetProductPageData(ctx context.Context, actor model.Actor, productSlug, variantSlug string, userCountry geo.Country) (*dto.ProductPageResp, error) {
	product, err := p.productRepo.GetPageData(ctx, productSlug, variantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "商品不存在: %s", productSlug)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询商品详情失败", err)
	}
	if len(product.Variants) != 1 {
		return nil, errs.Newf(errs.KindNotFound, "商品变体不存在: %s", variantSlug)
	}
	variant := product.Variants[0]

	// 店铺摘要（粉丝数 + 当前访客是否已关注）
	followersCount, err := p.storeRepo.CountFollowers(ctx, product.StoreID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询店铺粉丝数失败", err)
	}
	isFollowing := false
	if actor.UserID != "" {
		isFollowing, err = p.userRepo.IsFollowing(ctx, actor.UserID, product.StoreID)
		if err != nil {
			return nil, errs.Wrap(errs.KindInternal, "查询关注状态失败", err)
		}
	}

	// 评分统计
	stats, err := p.reviewSvc.GetRatingStatistics(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	// 配送信息，国家不在基准表时为 null
	shipping, err := p.shippingSvc.GetShippingDetails(ctx, product, product.Store, userCountry)
	if err != nil {
		return nil, err
	}

	// 同商品的全部变体，用于详情页切换
	allVariants, err := p.productRepo.ListVariants(ctx, product.ID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询商品变体失败", err)
	}
	variantsInfo := make([]dto.VariantInfoResp, 0, len(allVariants))
	for _, v := range allVariants {
		variantsInfo = append(variantsInfo, dto.VariantInfoResp{
			VariantName:  v.VariantName,
			VariantSlug:  v.Slug,
			VariantImage: v.VariantImage,
			VariantUrl:   fmt.Sprintf("/product/%s/%s", product.Slug, v.Slug),
			Images:       v.Images,
			Sizes:        v.Sizes,
			Colors:       v.Colors,
		})
	}

	resp := &dto.ProductPageResp{
		ProductID:          product.ID,
		VariantID:          variant.ID,
		ProductSlug:        product.Slug,
		VariantSlug:        variant.Slug,
		Name:               product.Name,
		Description:        product.Description,
		VariantName:        variant.VariantName,
		VariantDescription: variant.VariantDescription,
		Images:             variant.Images,
		Category:           product.Category,
		SubCategory:        product.SubCategory,
		OfferTag:           product.OfferTag,
		IsSale:             variant.IsSale,
		SaleEndDate:        variant.SaleEndDate,
		Brand:              product.Brand,
		Sku:                variant.Sku,
		Weight:             variant.Weight,
		VariantImage:       variant.VariantImage,
		Store: dto.StoreSummaryResp{
			ID:                   product.StoreID,
			Url:                  product.Store.Url,
			Name:                 product.Store.Name,
			Logo:                 product.Store.Logo,
			FollowersCount:       followersCount,
			IsUserFollowingStore: isFollowing,
		},
		Colors: variant.Colors,
		Sizes:  variant.Sizes,
		Specs: dto.ProductSpecsResp{
			Product: product.Specs,
			Variant: variant.Specs,
		},
		Questions:        product.Questions,
		Rating:           product.Rating,
		Reviews:          product.Reviews,
		ReviewStatistics: *stats,
		ShippingDetails:  shipping,
		VariantsInfo:     variantsInfo,
	}
	return resp, nil
}

// DeleteProduct 删除商品及其全部关联数据（店主或管理员）
func (p *ProductService) DeleteProduct(ctx context.Context, actor model.Actor, productID string) error {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "商品不存在: %s", productID)
		}
		return errs.Wrap(errs.KindInternal, "查询商品失败", err)
	}

	if !actor.IsAdmin() {
		store, err := p.storeRepo.GetByID(ctx, product.StoreID)
		if err != nil {
			return errs.Wrap(errs.KindInternal, "查询店铺失败", err)
		}
		if store.UserID != actor.UserID {
			return errs.New(errs.KindUnauthorized, "无权删除该商品")
		}
	}

	if err = p.productRepo.Delete(ctx, productID); err != nil {
		log.Printf("商品删除失败: %v", err)
		return errs.Wrap(errs.KindInternal, "商品删除失败", err)
	}
	return nil
}

// ==================== 私有方法 ====================

// getOwnedStore 按 url 取店铺并校验归属，管理员放行
func (p *ProductService) getOwnedStore(ctx context.Context, actor model.Actor, storeURL string) (*model.Store, error) {
	if actor.IsAdmin() {
		store, err := p.storeRepo.GetByURL(ctx, storeURL)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Newf(errs.KindNotFound, "店铺不存在: %s", storeURL)
			}
			return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
		}
		return store, nil
	}
	store, err := p.storeRepo.GetByURLAndOwner(ctx, storeURL, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindUnauthorized, "店铺不存在或无权访问")
		}
		return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
	}
	return store, nil
}

// checkTaxonomy 校验二级分类确实挂在指定一级分类下
func (p *ProductService) checkTaxonomy(ctx context.Context, categoryID, subCategoryID string) error {
	subCategory, err := p.subCategoryRepo.GetByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "二级分类不存在: %s", subCategoryID)
		}
		return errs.Wrap(errs.KindInternal, "查询二级分类失败", err)
	}
	if subCategory.CategoryID != categoryID {
		return errs.New(errs.KindValidation, "二级分类不属于指定的一级分类")
	}
	return nil
}

// buildVariant 由请求组装变体模型并生成唯一 slug
func (p *ProductService) buildVariant(ctx context.Context, req dto.ProductUpsertReq) (*model.ProductVariant, error) {
	if len(req.Images) == 0 {
		return nil, errs.New(errs.KindValidation, "变体至少需要一张图片")
	}
	if len(req.Sizes) == 0 {
		return nil, errs.New(errs.KindValidation, "变体至少需要一个尺码")
	}

	variantSlug, err := utils.UniqueSlug(req.VariantName, func(candidate string) (bool, error) {
		return p.productRepo.VariantSlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "生成变体 slug 失败", err)
	}

	var keywords datatypes.JSON
	if len(req.Keywords) > 0 {
		raw, err := json.Marshal(req.Keywords)
		if err != nil {
			return nil, errs.Wrap(errs.KindValidation, "关键词序列化失败", err)
		}
		keywords = raw
	}

	variant := &model.ProductVariant{
		VariantName:        req.VariantName,
		VariantDescription: req.VariantDescription,
		Slug:               variantSlug,
		VariantImage:       req.VariantImage,
		Sku:                req.Sku,
		Weight:             req.Weight,
		Keywords:           keywords,
		IsSale:             req.IsSale,
		SaleEndDate:        req.SaleEndDate,
	}
	for _, img := range req.Images {
		variant.Images = append(variant.Images, model.ProductVariantImage{Url: img.Url})
	}
	for _, color := range req.Colors {
		variant.Colors = append(variant.Colors, model.Color{Name: color.Color})
	}
	for _, size := range req.Sizes {
		variant.Sizes = append(variant.Sizes, model.Size{
			Size:     size.Size,
			Quantity: size.Quantity,
			Price:    size.Price,
			Discount: size.Discount,
		})
	}
	for _, spec := range req.VariantSpecs {
		variant.Specs = append(variant.Specs, model.Spec{Name: spec.Name, Value: spec.Value})
	}
	return variant, nil
}

// shapeProductCard 商品卡片：精简变体 + 跳转链接/封面图对
func shapeProductCard(product *model.Product) dto.ProductCardResp {
	variants := make([]dto.VariantSimplifiedResp, 0, len(product.Variants))
	variantImages := make([]dto.VariantImageResp, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, dto.VariantSimplifiedResp{
			VariantID:   v.ID,
			VariantName: v.VariantName,
			VariantSlug: v.Slug,
			Images:      v.Images,
			Sizes:       v.Sizes,
		})
		variantImages = append(variantImages, dto.VariantImageResp{
			Url:   fmt.Sprintf("/product/%s/%s", product.Slug, v.Slug),
			Image: v.VariantImage,
		})
	}
	return dto.ProductCardResp{
		ID:            product.ID,
		Slug:          product.Slug,
		Name:          product.Name,
		Rating:        product.Rating,
		Sales:         product.Sales,
		Variants:      variants,
		VariantImages: variantImages,
	}
}
