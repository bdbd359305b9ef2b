package dto

// ================== User && Identity DTO ==================

// IdentityEmailAddress 身份服务事件里的邮箱条目
type IdentityEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// IdentityEventData 身份服务事件负载
type IdentityEventData struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	ImageURL       string                 `json:"image_url"`
	EmailAddresses []IdentityEmailAddress `json:"email_addresses"`
}

// IdentityEventReq 身份服务 webhook 事件
// 支持 user.created / user.updated / user.deleted
type IdentityEventReq struct {
	Type string            `json:"type"`
	Data IdentityEventData `json:"data"`
}

// FollowResp 关注切换结果
type FollowResp struct {
	Following bool `json:"following"`
}

// UserCountryReq 前端上报的访客国家
type UserCountryReq struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	City   string `json:"city"`
	Region string `json:"region"`
}

// ================== Category && OfferTag DTO ==================

// CategoryUpsertReq 一级分类创建/更新请求
type CategoryUpsertReq struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Image    string `json:"image"`
	Url      string `json:"url" binding:"required"`
	Featured bool   `json:"featured"`
}

// SubCategoryUpsertReq 二级分类创建/更新请求
type SubCategoryUpsertReq struct {
	ID         string `json:"id"`
	Name       string `json:"name" binding:"required"`
	Image      string `json:"image"`
	Url        string `json:"url" binding:"required"`
	Featured   bool   `json:"featured"`
	CategoryID string `json:"category_id" binding:"required"`
}

// OfferTagUpsertReq 活动标签创建/更新请求
type OfferTagUpsertReq struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
	Url  string `json:"url" binding:"required"`
}

// SubCategorySampleReq 二级分类采样请求
type SubCategorySampleReq struct {
	Limit  int  `form:"limit,default=10"`
	Random bool `form:"random"`
}
