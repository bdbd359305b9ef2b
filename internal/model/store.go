package model

// Store 店铺状态常量
const (
	StoreStatusPending  = 0 // 待审核
	StoreStatusActive   = 1 // 正常
	StoreStatusDisabled = 2 // 已停用
)

// Store 店铺模型
// name/url/email/phone 均为唯一索引，冲突由数据库约束兜底（原子 upsert）
type Store struct {
	BaseModel
	// 1. 核心身份
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone       string `gorm:"size:30;uniqueIndex;not null" json:"phone"`
	Url         string `gorm:"size:100;uniqueIndex;not null" json:"url"`
	Logo        string `gorm:"size:255" json:"logo"`
	Cover       string `gorm:"size:255" json:"cover"`

	// 2. 运营指标
	Status        int     `gorm:"default:0;comment:状态 0-待审核 1-正常 2-已停用" json:"status"`
	Featured      bool    `gorm:"default:false" json:"featured"`
	AverageRating float64 `gorm:"type:decimal(3,1);default:0" json:"average_rating"`

	// 3. 默认运费配置（ShippingRate 缺省字段的回退来源）
	ReturnPolicy                     string  `gorm:"size:255;default:'Return in 30 days.'" json:"return_policy"`
	DefaultShippingService           string  `gorm:"size:100;default:'International Delivery'" json:"default_shipping_service"`
	DefaultShippingFeePerItem        float64 `gorm:"default:0" json:"default_shipping_fee_per_item"`
	DefaultShippingFeeAdditionalItem float64 `gorm:"default:0" json:"default_shipping_fee_additional_item"`
	DefaultShippingFeePerKg          float64 `gorm:"default:0" json:"default_shipping_fee_per_kg"`
	DefaultShippingFeeFixed          float64 `gorm:"default:0" json:"default_shipping_fee_fixed"`
	DefaultDeliveryTimeMin           int     `gorm:"default:7" json:"default_delivery_time_min"`
	DefaultDeliveryTimeMax           int     `gorm:"default:31" json:"default_delivery_time_max"`

	// 4. 归属
	UserID string `gorm:"size:36;index;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// 5. 关联关系
	Products      []Product      `gorm:"foreignKey:StoreID" json:"products,omitempty"`
	ShippingRates []ShippingRate `gorm:"foreignKey:StoreID" json:"shipping_rates,omitempty"`
	Followers     []User         `gorm:"many2many:store_followers" json:"followers,omitempty"`
}

// ShippingRate 店铺对单个国家的运费覆盖
// (store, country) 至多一条，由联合唯一索引保证
// 数值 0 / 空串视为"未设置"，解析时逐字段回退到店铺默认值
type ShippingRate struct {
	BaseModel

	ShippingService           string  `gorm:"size:100" json:"shipping_service"`
	ShippingFeePerItem        float64 `gorm:"default:0" json:"shipping_fee_per_item"`
	ShippingFeeAdditionalItem float64 `gorm:"default:0" json:"shipping_fee_additional_item"`
	ShippingFeePerKg          float64 `gorm:"default:0" json:"shipping_fee_per_kg"`
	ShippingFeeFixed          float64 `gorm:"default:0" json:"shipping_fee_fixed"`
	DeliveryTimeMin           int     `gorm:"default:0" json:"delivery_time_min"`
	DeliveryTimeMax           int     `gorm:"default:0" json:"delivery_time_max"`
	ReturnPolicy              string  `gorm:"size:255" json:"return_policy"`

	CountryID string   `gorm:"size:36;uniqueIndex:idx_rate_country_store;not null" json:"country_id"`
	Country   *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	StoreID   string   `gorm:"size:36;uniqueIndex:idx_rate_country_store;not null" json:"store_id"`
	Store     *Store   `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

func (ShippingRate) TableName() string {
	return "shipping_rates"
}
