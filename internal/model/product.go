package model

import (
	"gomarket_v1/pkg/errs"

	"gorm.io/datatypes"
)

// ==================== 运费计算方式 ====================

// ShippingFeeMethod 运费计算方式
// 取值封闭在三个常量内，入口处解析，未知值直接报参数错误
type ShippingFeeMethod string

const (
	ShippingFeeMethodItem   ShippingFeeMethod = "ITEM"   // 首件 + 续件
	ShippingFeeMethodWeight ShippingFeeMethod = "WEIGHT" // 按公斤
	ShippingFeeMethodFixed  ShippingFeeMethod = "FIXED"  // 固定运费
)

// ParseShippingFeeMethod 解析运费计算方式，未知值返回参数错误
func ParseShippingFeeMethod(s string) (ShippingFeeMethod, error) {
	switch ShippingFeeMethod(s) {
	case ShippingFeeMethodItem, ShippingFeeMethodWeight, ShippingFeeMethodFixed:
		return ShippingFeeMethod(s), nil
	default:
		return "", errs.Newf(errs.KindValidation, "无效的运费计算方式: %q", s)
	}
}

// ==================== 商品 ====================

// Product 商品主表（SPU）
type Product struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Brand       string `gorm:"size:100" json:"brand"`

	// 冗余统计字段，由统计任务定期重算
	Rating     float64 `gorm:"type:decimal(3,1);default:0" json:"rating"`
	Sales      int     `gorm:"default:0" json:"sales"`
	NumReviews int     `gorm:"default:0" json:"num_reviews"`

	ShippingFeeMethod ShippingFeeMethod `gorm:"size:10;default:'ITEM'" json:"shipping_fee_method"`

	// 归属与分类
	StoreID       string       `gorm:"size:36;index;not null" json:"store_id"`
	Store         *Store       `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CategoryID    string       `gorm:"size:36;index;not null" json:"category_id"`
	Category      *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID string       `gorm:"size:36;index;not null" json:"sub_category_id"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	OfferTagID    string       `gorm:"size:36;index" json:"offer_tag_id"`
	OfferTag      *OfferTag    `gorm:"foreignKey:OfferTagID" json:"offer_tag,omitempty"`

	// 关联数据
	Variants     []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Specs        []Spec           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"specs,omitempty"`
	Questions    []Question       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Reviews      []Review         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	FreeShipping *FreeShipping    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"free_shipping,omitempty"`
}

// ProductVariant 商品变体（SKU 维度）
type ProductVariant struct {
	BaseModel
	ProductID string   `gorm:"size:36;index;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	VariantName        string `gorm:"size:255;not null" json:"variant_name"`
	VariantDescription string `gorm:"type:text" json:"variant_description"`
	// slug 在全部变体内唯一
	Slug         string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	VariantImage string         `gorm:"size:255" json:"variant_image"`
	Sku          string         `gorm:"size:100" json:"sku"`
	Weight       float64        `gorm:"default:0;comment:单位kg" json:"weight"`
	Keywords     datatypes.JSON `json:"keywords"`
	IsSale       bool           `gorm:"default:false" json:"is_sale"`
	SaleEndDate  string         `gorm:"size:50" json:"sale_end_date"`

	Images []ProductVariantImage `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Colors []Color               `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE" json:"colors,omitempty"`
	Sizes  []Size                `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
	Specs  []Spec                `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"specs,omitempty"`
}

// ProductVariantImage 变体图片
type ProductVariantImage struct {
	BaseModel
	Url              string `gorm:"size:255;not null" json:"url"`
	Alt              string `gorm:"size:255" json:"alt"`
	ProductVariantID string `gorm:"size:36;index;not null" json:"product_variant_id"`
}

// Color 变体颜色
type Color struct {
	BaseModel
	Name             string `gorm:"size:50;not null" json:"name"`
	ProductVariantID string `gorm:"size:36;index;not null" json:"product_variant_id"`
}

// Size 变体尺码（含价格和库存）
type Size struct {
	BaseModel
	Size             string  `gorm:"size:50;not null" json:"size"`
	Quantity         int     `gorm:"default:0" json:"quantity"`
	Price            float64 `gorm:"default:0" json:"price"`
	Discount         float64 `gorm:"default:0" json:"discount"`
	ProductVariantID string  `gorm:"size:36;index;not null" json:"product_variant_id"`
}

// Spec 规格参数，商品级和变体级共用一张表
type Spec struct {
	BaseModel
	Name  string `gorm:"size:100;not null" json:"name"`
	Value string `gorm:"size:255;not null" json:"value"`

	ProductID *string `gorm:"size:36;index" json:"product_id,omitempty"`
	VariantID *string `gorm:"size:36;index" json:"variant_id,omitempty"`
}

// Question 商品问答
type Question struct {
	BaseModel
	Question  string `gorm:"type:text;not null" json:"question"`
	Answer    string `gorm:"type:text" json:"answer"`
	ProductID string `gorm:"size:36;index;not null" json:"product_id"`
}

func (Product) TableName() string {
	return "products"
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

func (ProductVariantImage) TableName() string {
	return "product_variant_images"
}

func (Color) TableName() string {
	return "colors"
}

func (Size) TableName() string {
	return "sizes"
}

func (Spec) TableName() string {
	return "specs"
}

func (Question) TableName() string {
	return "questions"
}
