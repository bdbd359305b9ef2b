package model

// Review 商品评价
// 评分支持半星，取值 1~5 且步长 0.5
type Review struct {
	BaseModel
	Rating  float64 `gorm:"type:decimal(2,1);not null" json:"rating"`
	Review  string  `gorm:"type:text" json:"review"`
	Variant string  `gorm:"size:255" json:"variant"`
	Color   string  `gorm:"size:50" json:"color"`
	Size    string  `gorm:"size:50" json:"size"`

	ProductID string `gorm:"size:36;index;not null" json:"product_id"`
	UserID    string `gorm:"size:36;index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Images []ReviewImage `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// ReviewImage 评价配图
type ReviewImage struct {
	BaseModel
	Url      string `gorm:"size:255;not null" json:"url"`
	Alt      string `gorm:"size:255" json:"alt"`
	ReviewID string `gorm:"size:36;index;not null" json:"review_id"`
}

func (Review) TableName() string {
	return "reviews"
}

func (ReviewImage) TableName() string {
	return "review_images"
}
