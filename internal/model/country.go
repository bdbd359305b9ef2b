package model

// Country 国家基准表，按 (name, code) 组合查询
type Country struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex:idx_country_name_code;not null" json:"name"`
	Code string `gorm:"size:10;uniqueIndex:idx_country_name_code;not null" json:"code"`
}

// FreeShipping 商品级免邮配置
// 挂在商品上，只对 EligibleCountries 中的国家生效
type FreeShipping struct {
	BaseModel
	ProductID string `gorm:"size:36;uniqueIndex;not null" json:"product_id"`

	EligibleCountries []FreeShippingCountry `gorm:"foreignKey:FreeShippingID;constraint:OnDelete:CASCADE" json:"eligible_countries,omitempty"`
}

// FreeShippingCountry 免邮配置与国家的关联
type FreeShippingCountry struct {
	BaseModel
	FreeShippingID string   `gorm:"size:36;index;not null" json:"free_shipping_id"`
	CountryID      string   `gorm:"size:36;index;not null" json:"country_id"`
	Country        *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

func (Country) TableName() string {
	return "countries"
}

func (FreeShipping) TableName() string {
	return "free_shippings"
}

func (FreeShippingCountry) TableName() string {
	return "free_shipping_countries"
}
