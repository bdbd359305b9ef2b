package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gomarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// UserRepository 用户镜像仓储接口
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Upsert 按 email 冲突更新，镜像身份服务的 user.created/updated 事件
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error

	// 关注关系
	IsFollowing(ctx context.Context, userID, storeID string) (bool, error)
	Follow(ctx context.Context, userID, storeID string) error
	Unfollow(ctx context.Context, userID, storeID string) error
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	// 身份事件按 email 定位已有镜像行：同一行上 id 和 email 两个唯一键
	// 都会命中，ON CONFLICT 只能声明一个目标，这里用查改代替
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err = r.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}

	// 只同步身份服务持有的字段，角色保持本地值
	err = r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"name":    user.Name,
			"picture": user.Picture,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, user.Email)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

// ==================== 关注关系 ====================

func (r *userRepo) IsFollowing(ctx context.Context, userID, storeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("store_followers").
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) Follow(ctx context.Context, userID, storeID string) error {
	user := model.User{BaseModel: model.BaseModel{ID: userID}}
	store := model.Store{BaseModel: model.BaseModel{ID: storeID}}
	return r.db.WithContext(ctx).Model(&store).Association("Followers").Append(&user)
}

func (r *userRepo) Unfollow(ctx context.Context, userID, storeID string) error {
	user := model.User{BaseModel: model.BaseModel{ID: userID}}
	store := model.Store{BaseModel: model.BaseModel{ID: storeID}}
	return r.db.WithContext(ctx).Model(&store).Association("Followers").Delete(&user)
}
