package model

// Category 一级分类
type Category struct {
	BaseModel
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Image    string `gorm:"size:255" json:"image"`
	Url      string `gorm:"size:100;uniqueIndex;not null" json:"url"`
	Featured bool   `gorm:"default:false" json:"featured"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"`
}

// SubCategory 二级分类
type SubCategory struct {
	BaseModel
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Image    string `gorm:"size:255" json:"image"`
	Url      string `gorm:"size:100;uniqueIndex;not null" json:"url"`
	Featured bool   `gorm:"default:false" json:"featured"`

	CategoryID string    `gorm:"size:36;index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// OfferTag 活动标签（如 Flash Deal、Best Seller）
type OfferTag struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Url  string `gorm:"size:100;uniqueIndex;not null" json:"url"`

	Products []Product `gorm:"foreignKey:OfferTagID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (SubCategory) TableName() string {
	return "sub_categories"
}

func (OfferTag) TableName() string {
	return "offer_tags"
}
