package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/service"
	"gomarket_v1/pkg/geo"
	"gomarket_v1/pkg/utils"
)

type ProductController struct {
	productSvc *service.ProductService
	reviewSvc  *service.ReviewService
	cartSvc    *service.CartService
	geoClient  *geo.Client
}

func NewProductController(productSvc *service.ProductService, reviewSvc *service.ReviewService, cartSvc *service.CartService, geoClient *geo.Client) *ProductController {
	return &ProductController{
		productSvc: productSvc,
		reviewSvc:  reviewSvc,
		cartSvc:    cartSvc,
		geoClient:  geoClient,
	}
}

// UpsertProduct 创建商品或新增变体
// @Summary 创建商品或新增变体
// @Description product_id 非空时在已有商品下新增变体，否则商品与首个变体一起创建
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Param product body dto.ProductUpsertReq true "商品与变体"
// @Success 200 {object} model.Product "商品"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "slug 冲突"
// @Router /api/v1/stores/{storeUrl}/products [post]
func (c *ProductController) UpsertProduct(ctx *gin.Context) {
	var req dto.ProductUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	product, err := c.productSvc.UpsertProduct(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// GetStoreProducts 店铺全部商品
// @Summary 店铺全部商品
// @Tags Product (商品管理)
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Success 200 {array} model.Product "商品列表"
// @Router /api/v1/stores/{storeUrl}/products [get]
func (c *ProductController) GetStoreProducts(ctx *gin.Context) {
	products, err := c.productSvc.GetStoreProducts(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductMainInfo 商品主信息
// @Summary 商品主信息
// @Tags Product (商品管理)
// @Produce json
// @Param id path string true "商品 ID"
// @Success 200 {object} dto.ProductMainInfoResp "商品主信息"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/v1/products/{id}/main-info [get]
func (c *ProductController) GetProductMainInfo(ctx *gin.Context) {
	resp, err := c.productSvc.GetProductMainInfo(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProducts 店面商品卡片列表
// @Summary 商品卡片列表
// @Description 支持按店铺/分类/二级分类 URL 过滤，分页返回卡片
// @Tags Product (商品管理)
// @Produce json
// @Param store query string false "店铺 URL"
// @Param category query string false "分类 URL"
// @Param sub_category query string false "二级分类 URL"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} dto.ProductListResp "商品列表"
// @Router /api/v1/products [get]
func (c *ProductController) GetProducts(ctx *gin.Context) {
	var req dto.ProductListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.productSvc.GetProducts(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProductPage 商品详情页聚合
// @Summary 商品详情页聚合数据
// @Description 商品 + 指定变体 + 店铺摘要 + 评分统计 + 按访客国家解析的配送信息
// @Tags Product (商品管理)
// @Produce json
// @Param productSlug path string true "商品 slug"
// @Param variantSlug path string true "变体 slug"
// @Success 200 {object} dto.ProductPageResp "详情页数据"
// @Failure 404 {object} map[string]string "商品或变体不存在"
// @Router /api/v1/product-page/{productSlug}/{variantSlug} [get]
func (c *ProductController) GetProductPage(ctx *gin.Context) {
	userCountry := resolveUserCountry(ctx, c.geoClient)

	resp, err := c.productSvc.GetProductPageData(
		ctx.Request.Context(),
		middleware.CurrentActor(ctx),
		ctx.Param("productSlug"),
		ctx.Param("variantSlug"),
		userCountry,
	)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product (商品管理)
// @Produce json
// @Param id path string true "商品 ID"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/v1/products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	if err := c.productSvc.DeleteProduct(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ==================== 评价 ====================

// GetProductReviews 筛选商品评价
// @Summary 筛选商品评价
// @Tags Review (评价)
// @Produce json
// @Param id path string true "商品 ID"
// @Param rating query number false "整星评分，同时命中对应半星"
// @Param has_images query bool false "只看带图"
// @Param order_by query string false "latest / oldest / highest"
// @Success 200 {array} model.Review "评价列表"
// @Router /api/v1/products/{id}/reviews [get]
func (c *ProductController) GetProductReviews(ctx *gin.Context) {
	var req dto.ReviewListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	reviews, err := c.reviewSvc.GetProductFilteredReviews(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

// CreateProductReview 发表评价
// @Summary 发表评价
// @Tags Review (评价)
// @Accept json
// @Produce json
// @Param id path string true "商品 ID"
// @Param review body dto.ReviewCreateReq true "评价内容"
// @Success 200 {object} model.Review "评价"
// @Failure 400 {object} map[string]string "评分不合法"
// @Router /api/v1/products/{id}/reviews [post]
func (c *ProductController) CreateProductReview(ctx *gin.Context) {
	var req dto.ReviewCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	review, err := c.reviewSvc.CreateReview(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// GetRatingStatistics 评分直方图
// @Summary 评分直方图
// @Description 固定返回 1~5 五个桶，无评价时各桶 percentage 为 0
// @Tags Review (评价)
// @Produce json
// @Param id path string true "商品 ID"
// @Success 200 {object} dto.RatingStatisticsResp "评分统计"
// @Router /api/v1/products/{id}/rating-statistics [get]
func (c *ProductController) GetRatingStatistics(ctx *gin.Context) {
	resp, err := c.reviewSvc.GetRatingStatistics(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ==================== 购物车 ====================

// ValidateCart 结算前校验购物车
// @Summary 校验购物车
// @Description 价格、库存、运费以数据库为准，返回逐项校验结果
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param items body []utils.CartProduct true "购物车项"
// @Success 200 {array} service.ValidatedCartItem "校验结果"
// @Router /api/v1/cart/validate [post]
func (c *ProductController) ValidateCart(ctx *gin.Context) {
	var items []utils.CartProduct
	if err := ctx.ShouldBindJSON(&items); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	userCountry := resolveUserCountry(ctx, c.geoClient)
	result, err := c.cartSvc.ValidateCart(ctx.Request.Context(), userCountry, items)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
