package utils

import "time"

// CartProduct 加入购物车前的商品快照
type CartProduct struct {
	ProductID        string  `json:"product_id"`
	VariantID        string  `json:"variant_id"`
	ProductSlug      string  `json:"product_slug"`
	VariantSlug      string  `json:"variant_slug"`
	Name             string  `json:"name"`
	VariantName      string  `json:"variant_name"`
	Image            string  `json:"image"`
	VariantImage     string  `json:"variant_image"`
	SizeID           string  `json:"size_id"`
	Size             string  `json:"size"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	Stock            int     `json:"stock"`
	Weight           float64 `json:"weight"`
	ShippingMethod   string  `json:"shipping_method"`
	ShippingService  string  `json:"shipping_service"`
	ShippingFee      float64 `json:"shipping_fee"`
	ExtraShippingFee float64 `json:"extra_shipping_fee"`
	DeliveryTimeMin  int     `json:"delivery_time_min"`
	DeliveryTimeMax  int     `json:"delivery_time_max"`
}

// IsProductValidToAdd 校验商品快照是否可以加入购物车
// 必填字段齐全、数量/价格/库存/重量为正、配送时间区间合法
func IsProductValidToAdd(p CartProduct) bool {
	if p.ProductID == "" || p.VariantID == "" || p.ProductSlug == "" || p.VariantSlug == "" {
		return false
	}
	if p.Name == "" || p.VariantName == "" || p.Image == "" || p.VariantImage == "" {
		return false
	}
	if p.SizeID == "" || p.Size == "" || p.ShippingMethod == "" {
		return false
	}
	if p.Quantity <= 0 || p.Price <= 0 || p.Stock <= 0 || p.Weight <= 0 {
		return false
	}
	if p.DeliveryTimeMin < 0 || p.DeliveryTimeMax < p.DeliveryTimeMin {
		return false
	}
	return true
}

// ShippingDatesRange 按当前日期加上最短/最长配送天数得到预计送达区间
func ShippingDatesRange(minDays, maxDays int) (minDate, maxDate time.Time) {
	today := time.Now()
	return today.AddDate(0, 0, minDays), today.AddDate(0, 0, maxDays)
}
