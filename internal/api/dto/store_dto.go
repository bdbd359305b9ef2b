package dto

// ================== Store && Shipping DTO ==================

// StoreUpsertReq 店铺创建/更新请求
type StoreUpsertReq struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Url         string `json:"url" binding:"required"`
	Logo        string `json:"logo"`
	Cover       string `json:"cover"`
}

// DefaultShippingDetailsResp 店铺默认运费配置响应
type DefaultShippingDetailsResp struct {
	DefaultShippingService           string  `json:"default_shipping_service"`
	DefaultShippingFeePerItem        float64 `json:"default_shipping_fee_per_item"`
	DefaultShippingFeeAdditionalItem float64 `json:"default_shipping_fee_additional_item"`
	DefaultShippingFeePerKg          float64 `json:"default_shipping_fee_per_kg"`
	DefaultShippingFeeFixed          float64 `json:"default_shipping_fee_fixed"`
	DefaultDeliveryTimeMin           int     `json:"default_delivery_time_min"`
	DefaultDeliveryTimeMax           int     `json:"default_delivery_time_max"`
	ReturnPolicy                     string  `json:"return_policy"`
}

// DefaultShippingUpdateReq 店铺默认运费配置更新请求
type DefaultShippingUpdateReq struct {
	DefaultShippingService           string  `json:"default_shipping_service"`
	DefaultShippingFeePerItem        float64 `json:"default_shipping_fee_per_item"`
	DefaultShippingFeeAdditionalItem float64 `json:"default_shipping_fee_additional_item"`
	DefaultShippingFeePerKg          float64 `json:"default_shipping_fee_per_kg"`
	DefaultShippingFeeFixed          float64 `json:"default_shipping_fee_fixed"`
	DefaultDeliveryTimeMin           int     `json:"default_delivery_time_min"`
	DefaultDeliveryTimeMax           int     `json:"default_delivery_time_max"`
	ReturnPolicy                     string  `json:"return_policy"`
}

// ShippingRateUpsertReq 单国家运费覆盖请求
type ShippingRateUpsertReq struct {
	ID                        string  `json:"id"`
	CountryID                 string  `json:"country_id"`
	ShippingService           string  `json:"shipping_service"`
	ShippingFeePerItem        float64 `json:"shipping_fee_per_item"`
	ShippingFeeAdditionalItem float64 `json:"shipping_fee_additional_item"`
	ShippingFeePerKg          float64 `json:"shipping_fee_per_kg"`
	ShippingFeeFixed          float64 `json:"shipping_fee_fixed"`
	DeliveryTimeMin           int     `json:"delivery_time_min"`
	DeliveryTimeMax           int     `json:"delivery_time_max"`
	ReturnPolicy              string  `json:"return_policy"`
}

// ShippingRateResp 运费覆盖响应
type ShippingRateResp struct {
	ID                        string  `json:"id"`
	CountryID                 string  `json:"country_id"`
	StoreID                   string  `json:"store_id"`
	ShippingService           string  `json:"shipping_service"`
	ShippingFeePerItem        float64 `json:"shipping_fee_per_item"`
	ShippingFeeAdditionalItem float64 `json:"shipping_fee_additional_item"`
	ShippingFeePerKg          float64 `json:"shipping_fee_per_kg"`
	ShippingFeeFixed          float64 `json:"shipping_fee_fixed"`
	DeliveryTimeMin           int     `json:"delivery_time_min"`
	DeliveryTimeMax           int     `json:"delivery_time_max"`
	ReturnPolicy              string  `json:"return_policy"`
}

// CountryWithRateResp 国家 + 该店铺运费覆盖（无覆盖时 shipping_rate 为 null）
type CountryWithRateResp struct {
	CountryID    string            `json:"country_id"`
	CountryName  string            `json:"country_name"`
	ShippingRate *ShippingRateResp `json:"shipping_rate"`
}
