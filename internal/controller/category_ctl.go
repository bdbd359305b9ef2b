package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/service"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// ==================== 一级分类 ====================

// UpsertCategory 创建或更新分类
// @Summary 创建或更新分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param category body dto.CategoryUpsertReq true "分类"
// @Success 200 {object} model.Category "分类"
// @Failure 409 {object} map[string]string "名称或 URL 冲突"
// @Router /api/v1/categories [post]
func (c *CategoryController) UpsertCategory(ctx *gin.Context) {
	var req dto.CategoryUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := c.categorySvc.UpsertCategory(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Category (分类管理)
// @Produce json
// @Success 200 {array} model.Category "分类列表"
// @Router /api/v1/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.categorySvc.ListCategories(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Tags Category (分类管理)
// @Produce json
// @Param id path string true "分类 ID"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /api/v1/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.categorySvc.DeleteCategory(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ==================== 二级分类 ====================

// UpsertSubCategory 创建或更新二级分类
// @Summary 创建或更新二级分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param subCategory body dto.SubCategoryUpsertReq true "二级分类"
// @Success 200 {object} model.SubCategory "二级分类"
// @Failure 409 {object} map[string]string "名称或 URL 冲突"
// @Router /api/v1/sub-categories [post]
func (c *CategoryController) UpsertSubCategory(ctx *gin.Context) {
	var req dto.SubCategoryUpsertReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	subCategory, err := c.categorySvc.UpsertSubCategory(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subCategory)
}

// ListSubCategories 二级分类列表
// @Summary 二级分类列表
// @Tags Category (分类管理)
// @Produce json
// @Param category_id query string false "按一级分类过滤"
// @Success 200 {array} model.SubCategory "二级分类列表"
// @Router /api/v1/sub-categories [get]
func (c *CategoryController) ListSubCategories(ctx *gin.Context) {
	subCategories, err := c.categorySvc.ListSubCategories(ctx.Request.Context(), ctx.Query("category_id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subCategories)
}

// SampleSubCategories 二级分类采样
// @Summary 二级分类采样
// @Description 首页展示用，random=true 时随机抽取
// @Tags Category (分类管理)
// @Produce json
// @Param limit query int false "数量上限" default(10)
// @Param random query bool false "是否随机"
// @Success 200 {array} model.SubCategory "二级分类"
// @Router /api/v1/sub-categories/sample [get]
func (c *CategoryController) SampleSubCategories(ctx *gin.Context) {
	var req dto.SubCategorySampleReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	subCategories, err := c.categorySvc.SampleSubCategories(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subCategories)
}

// DeleteSubCategory 删除二级分类
// @Summary 删除二级分类
// @Tags Category (分类管理)
// @Produce json
// @Param id path string true "二级分类 ID"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "二级分类不存在"
// @Router /api/v1/sub-categories/{id} [delete]
func (c *CategoryController) DeleteSubCategory(ctx *gin.Context) {
	if err := c.categorySvc.DeleteSubCategory(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}
