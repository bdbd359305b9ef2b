package dto

import (
	"gomarket_v1/internal/model"
)

// ================== Product DTO ==================

// SpecReq 规格参数
type SpecReq struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// QuestionReq 商品问答
type QuestionReq struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
}

// ColorReq 变体颜色
type ColorReq struct {
	Color string `json:"color" binding:"required"`
}

// SizeReq 变体尺码
type SizeReq struct {
	Size     string  `json:"size" binding:"required"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

// ImageReq 变体图片
type ImageReq struct {
	Url string `json:"url" binding:"required"`
}

// ProductUpsertReq 商品 + 变体创建请求
// productId 已存在时只在其下新建变体，否则连同商品一起创建
type ProductUpsertReq struct {
	ProductID          string        `json:"product_id"`
	VariantID          string        `json:"variant_id"`
	Name               string        `json:"name" binding:"required"`
	Description        string        `json:"description"`
	Brand              string        `json:"brand"`
	CategoryID         string        `json:"category_id" binding:"required"`
	SubCategoryID      string        `json:"sub_category_id" binding:"required"`
	OfferTagID         string        `json:"offer_tag_id"`
	ShippingFeeMethod  string        `json:"shipping_fee_method"`
	VariantName        string        `json:"variant_name" binding:"required"`
	VariantDescription string        `json:"variant_description"`
	VariantImage       string        `json:"variant_image"`
	Sku                string        `json:"sku"`
	Weight             float64       `json:"weight"`
	Keywords           []string      `json:"keywords"`
	IsSale             bool          `json:"is_sale"`
	SaleEndDate        string        `json:"sale_end_date"`
	ProductSpecs       []SpecReq     `json:"product_specs"`
	VariantSpecs       []SpecReq     `json:"variant_specs"`
	Questions          []QuestionReq `json:"questions"`
	Images             []ImageReq    `json:"images"`
	Colors             []ColorReq    `json:"colors"`
	Sizes              []SizeReq     `json:"sizes"`
}

// ProductListReq 商品列表请求
type ProductListReq struct {
	Store       string `form:"store"`
	Category    string `form:"category"`
	SubCategory string `form:"sub_category"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"page_size,default=10"`
}

// ProductMainInfoResp 商品主信息响应
type ProductMainInfoResp struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Brand         string `json:"brand"`
	CategoryID    string `json:"category_id"`
	SubCategoryID string `json:"sub_category_id"`
	StoreID       string `json:"store_id"`
}

// VariantSimplifiedResp 商品卡片用的精简变体
type VariantSimplifiedResp struct {
	VariantID   string                      `json:"variant_id"`
	VariantName string                      `json:"variant_name"`
	VariantSlug string                      `json:"variant_slug"`
	Images      []model.ProductVariantImage `json:"images"`
	Sizes       []model.Size                `json:"sizes"`
}

// VariantImageResp 变体跳转链接 + 封面图
type VariantImageResp struct {
	Url   string `json:"url"`
	Image string `json:"image"`
}

// ProductCardResp 商品卡片响应
type ProductCardResp struct {
	ID            string                  `json:"id"`
	Slug          string                  `json:"slug"`
	Name          string                  `json:"name"`
	Rating        float64                 `json:"rating"`
	Sales         int                     `json:"sales"`
	Variants      []VariantSimplifiedResp `json:"variants"`
	VariantImages []VariantImageResp      `json:"variant_images"`
}

// ProductListResp 商品列表响应（分页）
type ProductListResp struct {
	Products    []ProductCardResp `json:"products"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	PageSize    int               `json:"page_size"`
	TotalCount  int               `json:"total_count"`
}

// ==================== 商品详情页 ====================

// StoreSummaryResp 详情页内嵌的店铺信息
type StoreSummaryResp struct {
	ID                   string `json:"id"`
	Url                  string `json:"url"`
	Name                 string `json:"name"`
	Logo                 string `json:"logo"`
	FollowersCount       int64  `json:"followers_count"`
	IsUserFollowingStore bool   `json:"is_user_following_store"`
}

// ProductSpecsResp 商品级/变体级规格分组
type ProductSpecsResp struct {
	Product []model.Spec `json:"product"`
	Variant []model.Spec `json:"variant"`
}

// VariantInfoResp 详情页变体切换列表
type VariantInfoResp struct {
	VariantName  string                      `json:"variant_name"`
	VariantSlug  string                      `json:"variant_slug"`
	VariantImage string                      `json:"variant_image"`
	VariantUrl   string                      `json:"variant_url"`
	Images       []model.ProductVariantImage `json:"images"`
	Sizes        []model.Size                `json:"sizes"`
	Colors       []model.Color               `json:"colors"`
}

// ShippingDetailsResp 解析后的配送信息
type ShippingDetailsResp struct {
	ShippingFeeMethod string  `json:"shipping_fee_method"`
	ShippingService   string  `json:"shipping_service"`
	ShippingFee       float64 `json:"shipping_fee"`
	ExtraShippingFee  float64 `json:"extra_shipping_fee"`
	DeliveryTimeMin   int     `json:"delivery_time_min"`
	DeliveryTimeMax   int     `json:"delivery_time_max"`
	ReturnPolicy      string  `json:"return_policy"`
	CountryCode       string  `json:"country_code"`
	CountryName       string  `json:"country_name"`
	City              string  `json:"city"`
	IsFreeShipping    bool    `json:"is_free_shipping"`
}

// RatingBucketResp 评分直方图单桶
type RatingBucketResp struct {
	Rating     int     `json:"rating"`
	NumReviews int64   `json:"num_reviews"`
	Percentage float64 `json:"percentage"`
}

// RatingStatisticsResp 评分统计响应
type RatingStatisticsResp struct {
	RatingStatistics       []RatingBucketResp `json:"rating_statistics"`
	ReviewsWithImagesCount int64              `json:"reviews_with_images_count"`
	TotalReviews           int64              `json:"total_reviews"`
}

// ProductPageResp 商品详情页聚合响应（扁平化）
type ProductPageResp struct {
	ProductID          string                      `json:"product_id"`
	VariantID          string                      `json:"variant_id"`
	ProductSlug        string                      `json:"product_slug"`
	VariantSlug        string                      `json:"variant_slug"`
	Name               string                      `json:"name"`
	Description        string                      `json:"description"`
	VariantName        string                      `json:"variant_name"`
	VariantDescription string                      `json:"variant_description"`
	Images             []model.ProductVariantImage `json:"images"`
	Category           *model.Category             `json:"category"`
	SubCategory        *model.SubCategory          `json:"sub_category"`
	OfferTag           *model.OfferTag             `json:"offer_tag"`
	IsSale             bool                        `json:"is_sale"`
	SaleEndDate        string                      `json:"sale_end_date"`
	Brand              string                      `json:"brand"`
	Sku                string                      `json:"sku"`
	Weight             float64                     `json:"weight"`
	VariantImage       string                      `json:"variant_image"`
	Store              StoreSummaryResp            `json:"store"`
	Colors             []model.Color               `json:"colors"`
	Sizes              []model.Size                `json:"sizes"`
	Specs              ProductSpecsResp            `json:"specs"`
	Questions          []model.Question            `json:"questions"`
	Rating             float64                     `json:"rating"`
	Reviews            []model.Review              `json:"reviews"`
	ReviewStatistics   RatingStatisticsResp        `json:"review_statistics"`
	ShippingDetails    *ShippingDetailsResp        `json:"shipping_details"`
	VariantsInfo       []VariantInfoResp           `json:"variants_info"`
}

// ==================== 评价 ====================

// ReviewListReq 评价筛选请求
type ReviewListReq struct {
	Rating    float64 `form:"rating"`
	HasImages bool    `form:"has_images"`
	OrderBy   string  `form:"order_by"`
	Page      int     `form:"page,default=1"`
	PageSize  int     `form:"page_size,default=4"`
}

// ReviewCreateReq 发表评价请求
type ReviewCreateReq struct {
	Rating  float64    `json:"rating" binding:"required"`
	Review  string     `json:"review"`
	Variant string     `json:"variant"`
	Color   string     `json:"color"`
	Size    string     `json:"size"`
	Images  []ImageReq `json:"images"`
}
