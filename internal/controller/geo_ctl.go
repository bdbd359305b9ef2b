package controller

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/pkg/geo"
)

// 访客国家 cookie
const (
	userCountryCookie = "userCountry"
	cookieMaxAge      = 30 * 24 * 3600
)

type GeoController struct {
	geoClient *geo.Client
}

func NewGeoController(geoClient *geo.Client) *GeoController {
	return &GeoController{geoClient: geoClient}
}

// GetUserCountry 解析访客国家
// @Summary 解析访客国家
// @Description 优先读 cookie，没有 cookie 时按来源 IP 定位，失败回退到默认国家
// @Tags Geo (地理位置)
// @Produce json
// @Success 200 {object} geo.Country "访客国家"
// @Router /api/v1/user-country [get]
func (c *GeoController) GetUserCountry(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, resolveUserCountry(ctx, c.geoClient))
}

// SetUserCountry 写入访客选择的国家
// @Summary 设置访客国家
// @Description 把访客手动选择的国家写进 http-only cookie，后续配送解析以此为准
// @Tags Geo (地理位置)
// @Accept json
// @Produce json
// @Param country body dto.UserCountryReq true "国家"
// @Success 200 {object} geo.Country "写入的国家"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/v1/user-country [post]
func (c *GeoController) SetUserCountry(ctx *gin.Context) {
	var req dto.UserCountryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	country := geo.Country{
		Name:   req.Name,
		Code:   req.Code,
		City:   req.City,
		Region: req.Region,
	}
	raw, err := json.Marshal(country)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "序列化失败"})
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(userCountryCookie, url.QueryEscape(string(raw)), cookieMaxAge, "/", "", false, true)
	ctx.JSON(http.StatusOK, country)
}

// resolveUserCountry 取访客国家：cookie 优先，其次 IP 定位，最后默认国家
func resolveUserCountry(ctx *gin.Context, client *geo.Client) geo.Country {
	if raw, err := ctx.Cookie(userCountryCookie); err == nil && raw != "" {
		if decoded, err := url.QueryUnescape(raw); err == nil {
			var country geo.Country
			if err = json.Unmarshal([]byte(decoded), &country); err == nil && country.Code != "" {
				return country
			}
		}
	}
	return client.Lookup(ctx.Request.Context(), ctx.ClientIP())
}
