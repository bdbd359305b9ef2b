package model

// 用户角色常量
const (
	RoleAdmin  = "ADMIN"  // 平台管理员
	RoleSeller = "SELLER" // 卖家
	RoleUser   = "USER"   // 普通买家
)

// User 用户镜像表
// 身份认证由外部身份服务负责，webhook 把用户生命周期事件同步到这里
type User struct {
	BaseModel
	Name    string `gorm:"size:100" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Picture string `gorm:"size:255" json:"picture"`
	Role    string `gorm:"size:20;default:'USER'" json:"role"`

	// 关注的店铺 (Many to Many)
	Following []Store `gorm:"many2many:store_followers" json:"following,omitempty"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
	Stores  []Store  `gorm:"foreignKey:UserID" json:"stores,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// ==================== 请求身份 ====================

// Actor 当前请求的身份，由 JWT 中间件解析后显式传入各服务
// 不允许服务内部再去隐式获取"当前用户"
type Actor struct {
	UserID string
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsSeller() bool {
	return a.Role == RoleSeller
}
