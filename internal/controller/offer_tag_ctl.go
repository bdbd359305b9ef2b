package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/service"
)

type OfferTagController struct {
	tagSvc *service.OfferTagService
}

func NewOfferTagController(tagSvc *service.OfferTagService) *OfferTagController {
	return &OfferTagController{tagSvc: tagSvc}
}

// UpsertOfferTag 创建或更新活动标签
// @Summary 创建或更新活动标签
// @Tags OfferTag (活动标签)
// @Accept json
// @Produce json
// @Param tag body dto.OfferTagUpsertReq true "活动标签"
// @Success 200 {object} model.OfferTag "活动标签"
// @Failure 409 {object} map[string]string "名称或 URL 冲突"
// @Router /api/v1/offer-tags [post]
func (c *OfferTagController) UpsertOfferTag(ctx *gin.Context) {
	var req dto.OfferTagUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	tag, err := c.tagSvc.UpsertOfferTag(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// ListOfferTags 活动标签列表
// @Summary 活动标签列表
// @Description 按关联商品数降序
// @Tags OfferTag (活动标签)
// @Produce json
// @Success 200 {array} model.OfferTag "活动标签列表"
// @Router /api/v1/offer-tags [get]
func (c *OfferTagController) ListOfferTags(ctx *gin.Context) {
	tags, err := c.tagSvc.ListOfferTags(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// DeleteOfferTag 删除活动标签
// @Summary 删除活动标签
// @Tags OfferTag (活动标签)
// @Produce json
// @Param id path string true "活动标签 ID"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "活动标签不存在"
// @Router /api/v1/offer-tags/{id} [delete]
func (c *OfferTagController) DeleteOfferTag(ctx *gin.Context) {
	if err := c.tagSvc.DeleteOfferTag(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}
