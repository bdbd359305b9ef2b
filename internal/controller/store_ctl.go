package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/service"
)

type StoreController struct {
	storeSvc *service.StoreService
}

func NewStoreController(storeSvc *service.StoreService) *StoreController {
	return &StoreController{
		storeSvc: storeSvc,
	}
}

// UpsertStore 创建或更新店铺
// @Summary 创建或更新店铺
// @Description 卖家创建新店铺或更新已有店铺，name/email/phone/url 与其他店铺冲突时返回 409
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param store body dto.StoreUpsertReq true "店铺信息"
// @Success 200 {object} model.Store "店铺"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "唯一字段冲突"
// @Router /api/v1/stores [post]
func (c *StoreController) UpsertStore(ctx *gin.Context) {
	var req dto.StoreUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	store, err := c.storeSvc.UpsertStore(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// GetDefaultShipping 查询店铺默认运费配置
// @Summary 查询店铺默认运费配置
// @Tags Store (店铺管理)
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Success 200 {object} dto.DefaultShippingDetailsResp "默认运费配置"
// @Failure 403 {object} map[string]string "无权访问"
// @Router /api/v1/stores/{storeUrl}/shipping/defaults [get]
func (c *StoreController) GetDefaultShipping(ctx *gin.Context) {
	resp, err := c.storeSvc.GetDefaultShippingDetails(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateDefaultShipping 更新店铺默认运费配置
// @Summary 更新店铺默认运费配置
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Param shipping body dto.DefaultShippingUpdateReq true "默认运费配置"
// @Success 200 {object} dto.DefaultShippingDetailsResp "更新后的配置"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/v1/stores/{storeUrl}/shipping/defaults [put]
func (c *StoreController) UpdateDefaultShipping(ctx *gin.Context) {
	var req dto.DefaultShippingUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.storeSvc.UpdateDefaultShippingDetails(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetShippingRates 列出全部国家与该店铺的运费覆盖
// @Summary 店铺运费覆盖列表
// @Description 每个国家出现一次，未覆盖的国家 shipping_rate 为 null
// @Tags Store (店铺管理)
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Success 200 {array} dto.CountryWithRateResp "国家与覆盖"
// @Router /api/v1/stores/{storeUrl}/shipping/rates [get]
func (c *StoreController) GetShippingRates(ctx *gin.Context) {
	resp, err := c.storeSvc.GetStoreShippingRates(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpsertShippingRate 创建或更新单个国家的运费覆盖
// @Summary 创建或更新运费覆盖
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param storeUrl path string true "店铺 URL"
// @Param rate body dto.ShippingRateUpsertReq true "运费覆盖"
// @Success 200 {object} map[string]string "OK"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/v1/stores/{storeUrl}/shipping/rates [post]
func (c *StoreController) UpsertShippingRate(ctx *gin.Context) {
	var req dto.ShippingRateUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.storeSvc.UpsertShippingRate(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("storeUrl"), req); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}
