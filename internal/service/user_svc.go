package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
	"gomarket_v1/pkg/identity"
)

// UserService 用户镜像与关注关系
type UserService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	identity  *identity.Client
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, identityClient *identity.Client) *UserService {
	return &UserService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		identity:  identityClient,
	}
}

// HandleIdentityEvent 处理身份服务的用户生命周期事件
// created/updated 按 email 幂等落库；落库后若本地角色不是 USER，
// 把角色回写到身份服务，保证两边的角色一致
func (s *UserService) HandleIdentityEvent(ctx context.Context, req dto.IdentityEventReq) error {
	switch req.Type {
	case "user.created", "user.updated":
		return s.mirrorUser(ctx, req.Data)
	case "user.deleted":
		if req.Data.ID == "" {
			return errs.New(errs.KindValidation, "删除事件缺少用户 ID")
		}
		if err := s.userRepo.Delete(ctx, req.Data.ID); err != nil {
			log.Printf("删除用户镜像失败: %v", err)
			return errs.Wrap(errs.KindInternal, "删除用户镜像失败", err)
		}
		return nil
	default:
		return errs.Newf(errs.KindValidation, "未知的事件类型: %s", req.Type)
	}
}

// FollowStore 关注/取关切换，返回切换后的状态
func (s *UserService) FollowStore(ctx context.Context, actor model.Actor, storeID string) (bool, error) {
	if actor.UserID == "" {
		return false, errs.New(errs.KindUnauthenticated, "请先登录")
	}

	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.Newf(errs.KindNotFound, "店铺不存在: %s", storeID)
		}
		return false, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
	}
	if _, err := s.userRepo.GetByID(ctx, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.Newf(errs.KindNotFound, "用户不存在: %s", actor.UserID)
		}
		return false, errs.Wrap(errs.KindInternal, "查询用户失败", err)
	}

	following, err := s.userRepo.IsFollowing(ctx, actor.UserID, storeID)
	if err != nil {
		return false, errs.Wrap(errs.KindInternal, "查询关注状态失败", err)
	}

	if following {
		if err = s.userRepo.Unfollow(ctx, actor.UserID, storeID); err != nil {
			return false, errs.Wrap(errs.KindInternal, "取消关注失败", err)
		}
		return false, nil
	}
	if err = s.userRepo.Follow(ctx, actor.UserID, storeID); err != nil {
		return false, errs.Wrap(errs.KindInternal, "关注失败", err)
	}
	return true, nil
}

// GetUser 按 ID 取用户镜像
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "用户不存在: %s", id)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询用户失败", err)
	}
	return user, nil
}

// ==================== 私有方法 ====================

// mirrorUser 把身份服务的用户快照同步进镜像表
func (s *UserService) mirrorUser(ctx context.Context, data dto.IdentityEventData) error {
	if data.ID == "" || len(data.EmailAddresses) == 0 {
		return errs.New(errs.KindValidation, "事件缺少用户 ID 或邮箱")
	}

	user := &model.User{
		BaseModel: model.BaseModel{ID: data.ID},
		Name:      strings.TrimSpace(data.FirstName + " " + data.LastName),
		Email:     data.EmailAddresses[0].EmailAddress,
		Picture:   data.ImageURL,
		Role:      model.RoleUser,
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		log.Printf("用户镜像写入失败: %v", err)
		return errs.Wrap(errs.KindInternal, "用户镜像写入失败", err)
	}

	// 老用户可能已被提升为卖家/管理员，把角色回写给身份服务
	if saved.Role != model.RoleUser {
		if err = s.identity.SyncRole(ctx, data.ID, saved.Role); err != nil {
			log.Printf("角色回写身份服务失败: %v", err)
		}
	}
	return nil
}
