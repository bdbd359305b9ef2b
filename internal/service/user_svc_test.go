package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
	"gomarket_v1/pkg/identity"
)

func newTestUserSvc(db *gorm.DB) *UserService {
	// 密钥为空，角色回写是 no-op
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewStoreRepository(db),
		identity.NewClient("", ""),
	)
}

func identityEvent(eventType, id, email string) dto.IdentityEventReq {
	return dto.IdentityEventReq{
		Type: eventType,
		Data: dto.IdentityEventData{
			ID:             id,
			FirstName:      "Ada",
			LastName:       "Lovelace",
			ImageURL:       "http://img.test/ada.jpg",
			EmailAddresses: []dto.IdentityEmailAddress{{EmailAddress: email}},
		},
	}
}

// ==================== 身份事件 ====================

func TestUserService_IdentityEventCreated(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestUserSvc(db)

	err := svc.HandleIdentityEvent(context.Background(), identityEvent("user.created", "ext-1", "ada@test.com"))
	if err != nil {
		t.Fatalf("处理创建事件失败: %v", err)
	}

	var user model.User
	if err = db.First(&user, "id = ?", "ext-1").Error; err != nil {
		t.Fatalf("回读用户失败: %v", err)
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("姓名期望拼接结果, 实际: %s", user.Name)
	}
	if user.Role != model.RoleUser {
		t.Errorf("新用户角色期望 USER, 实际: %s", user.Role)
	}
}

func TestUserService_IdentityEventUpdateKeepsRole(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestUserSvc(db)

	// 先建一个已提升为卖家的用户
	seller := &model.User{
		BaseModel: model.BaseModel{ID: "ext-2"},
		Name:      "Old Name",
		Email:     "seller@test.com",
		Role:      model.RoleSeller,
	}
	if err := db.Create(seller).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}

	err := svc.HandleIdentityEvent(context.Background(), identityEvent("user.updated", "ext-2", "seller@test.com"))
	if err != nil {
		t.Fatalf("处理更新事件失败: %v", err)
	}

	var user model.User
	if err = db.First(&user, "email = ?", "seller@test.com").Error; err != nil {
		t.Fatalf("回读用户失败: %v", err)
	}
	// 姓名/头像同步，角色保持本地值
	if user.Name != "Ada Lovelace" {
		t.Errorf("姓名应被事件更新, 实际: %s", user.Name)
	}
	if user.Role != model.RoleSeller {
		t.Errorf("更新事件不应重置角色, 实际: %s", user.Role)
	}

	// 按 email 幂等，不会产生第二条记录
	var count int64
	db.Model(&model.User{}).Where("email = ?", "seller@test.com").Count(&count)
	if count != 1 {
		t.Errorf("同一邮箱应只有一条记录, 实际: %d", count)
	}
}

func TestUserService_IdentityEventDeleted(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestUserSvc(db)
	seedUser(t, db, "ext-3", model.RoleUser)

	err := svc.HandleIdentityEvent(context.Background(), dto.IdentityEventReq{
		Type: "user.deleted",
		Data: dto.IdentityEventData{ID: "ext-3"},
	})
	if err != nil {
		t.Fatalf("处理删除事件失败: %v", err)
	}

	var count int64
	db.Model(&model.User{}).Where("id = ?", "ext-3").Count(&count)
	if count != 0 {
		t.Error("用户镜像应已删除")
	}
}

func TestUserService_IdentityEventUnknownType(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestUserSvc(db)

	err := svc.HandleIdentityEvent(context.Background(), dto.IdentityEventReq{Type: "session.created"})
	if err == nil {
		t.Fatal("未知事件类型应报错")
	}
	if !errs.Is(err, errs.KindValidation) {
		t.Errorf("期望参数错误, 实际类别: %v", errs.KindOf(err))
	}
}

// ==================== 关注切换 ====================

func TestUserService_FollowToggle(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "seller-1", model.RoleSeller)
	seedUser(t, db, "buyer-1", model.RoleUser)
	store := seedStore(t, db, "s1", "seller-1")

	svc := newTestUserSvc(db)
	actor := buyerActor("buyer-1")

	// 连续切换是自逆操作
	following, err := svc.FollowStore(context.Background(), actor, store.ID)
	if err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if !following {
		t.Error("首次切换后应为已关注")
	}

	following, err = svc.FollowStore(context.Background(), actor, store.ID)
	if err != nil {
		t.Fatalf("取关失败: %v", err)
	}
	if following {
		t.Error("再次切换后应为未关注")
	}

	var count int64
	db.Table("store_followers").Where("store_id = ?", store.ID).Count(&count)
	if count != 0 {
		t.Errorf("关注关系应已清空, 实际: %d", count)
	}
}

func TestUserService_FollowUnknownStore(t *testing.T) {
	db := setupSvcTestDB(t)
	seedUser(t, db, "buyer-1", model.RoleUser)

	svc := newTestUserSvc(db)
	_, err := svc.FollowStore(context.Background(), buyerActor("buyer-1"), "missing-store")
	if err == nil {
		t.Fatal("关注不存在的店铺应报错")
	}
	if !errs.Is(err, errs.KindNotFound) {
		t.Errorf("期望不存在错误, 实际类别: %v", errs.KindOf(err))
	}
}

func TestUserService_FollowRequiresLogin(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestUserSvc(db)

	_, err := svc.FollowStore(context.Background(), model.Actor{}, "whatever")
	if err == nil {
		t.Fatal("匿名访客关注应被拒绝")
	}
	if !errs.Is(err, errs.KindUnauthenticated) {
		t.Errorf("期望未登录错误, 实际类别: %v", errs.KindOf(err))
	}
}
