package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/service"
	"gomarket_v1/pkg/webhook"
)

type UserController struct {
	userSvc  *service.UserService
	verifier *webhook.Verifier
}

func NewUserController(userSvc *service.UserService, verifier *webhook.Verifier) *UserController {
	return &UserController{
		userSvc:  userSvc,
		verifier: verifier,
	}
}

// IdentityWebhook 身份服务事件入口
// @Summary 身份服务 webhook
// @Description 接收 user.created / user.updated / user.deleted 事件并同步用户镜像表
// @Tags User (用户)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Failure 400 {object} map[string]string "参数或签名错误"
// @Router /api/v1/webhooks/identity [post]
func (c *UserController) IdentityWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "读取请求体失败"})
		return
	}

	// 签名校验，密钥未配置时跳过（本地调试）
	if c.verifier != nil {
		err = c.verifier.Verify(
			ctx.GetHeader("svix-id"),
			ctx.GetHeader("svix-timestamp"),
			ctx.GetHeader("svix-signature"),
			body,
		)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "签名校验失败: " + err.Error()})
			return
		}
	}

	var req dto.IdentityEventReq
	if err = json.Unmarshal(body, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "事件解析失败: " + err.Error()})
		return
	}

	if err = c.userSvc.HandleIdentityEvent(ctx.Request.Context(), req); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// FollowStore 关注/取关店铺
// @Summary 关注或取消关注店铺
// @Description 切换当前用户对店铺的关注状态，返回切换后的状态
// @Tags User (用户)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Success 200 {object} dto.FollowResp "切换后的关注状态"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/user/follow/{storeId} [post]
func (c *UserController) FollowStore(ctx *gin.Context) {
	following, err := c.userSvc.FollowStore(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeId"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FollowResp{Following: following})
}

// GetMe 当前登录用户
// @Summary 当前登录用户
// @Tags User (用户)
// @Produce json
// @Success 200 {object} model.User "用户"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/v1/user/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	actor := middleware.CurrentActor(ctx)
	user, err := c.userSvc.GetUser(ctx.Request.Context(), actor.UserID)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
