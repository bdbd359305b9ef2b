package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gomarket_v1/internal/controller"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/model"

	_ "gomarket_v1/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	geoCtl *controller.GeoController,
	userCtl *controller.UserController,
	storeCtl *controller.StoreController,
	productCtl *controller.ProductController,
	categoryCtl *controller.CategoryController,
	offerTagCtl *controller.OfferTagController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api/v1")
	{
		// 身份服务 webhook（签名校验在控制器内完成）
		api.POST("/webhooks/identity", userCtl.IdentityWebhook)

		// 访客国家
		api.GET("/user-country", geoCtl.GetUserCountry)
		api.POST("/user-country", geoCtl.SetUserCountry)

		// 店面公开接口，登录可选
		public := api.Group("", middleware.OptionalAuth())
		{
			public.GET("/products", productCtl.GetProducts)
			public.GET("/product-page/:productSlug/:variantSlug", productCtl.GetProductPage)
			public.GET("/products/:id/reviews", productCtl.GetProductReviews)
			public.GET("/products/:id/rating-statistics", productCtl.GetRatingStatistics)
			public.GET("/categories", categoryCtl.ListCategories)
			public.GET("/sub-categories", categoryCtl.ListSubCategories)
			public.GET("/sub-categories/sample", categoryCtl.SampleSubCategories)
			public.GET("/offer-tags", offerTagCtl.ListOfferTags)
			public.POST("/cart/validate", productCtl.ValidateCart)
		}

		// 登录用户
		user := api.Group("/user", middleware.JWTAuth())
		{
			user.GET("/me", userCtl.GetMe)
			user.POST("/follow/:storeId", userCtl.FollowStore)
		}

		// 登录后的写接口
		auth := api.Group("", middleware.JWTAuth())
		{
			auth.POST("/products/:id/reviews", productCtl.CreateProductReview)

			// 卖家后台
			seller := auth.Group("", middleware.RequireRole(model.RoleSeller, model.RoleAdmin))
			{
				seller.POST("/stores", storeCtl.UpsertStore)
				seller.GET("/stores/:storeUrl/shipping/defaults", storeCtl.GetDefaultShipping)
				seller.PUT("/stores/:storeUrl/shipping/defaults", storeCtl.UpdateDefaultShipping)
				seller.GET("/stores/:storeUrl/shipping/rates", storeCtl.GetShippingRates)
				seller.POST("/stores/:storeUrl/shipping/rates", storeCtl.UpsertShippingRate)
				seller.GET("/stores/:storeUrl/products", productCtl.GetStoreProducts)
				seller.POST("/stores/:storeUrl/products", productCtl.UpsertProduct)
				seller.GET("/products/:id/main-info", productCtl.GetProductMainInfo)
				seller.DELETE("/products/:id", productCtl.DeleteProduct)
			}

			// 平台管理
			admin := auth.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("/categories", categoryCtl.UpsertCategory)
				admin.DELETE("/categories/:id", categoryCtl.DeleteCategory)
				admin.POST("/sub-categories", categoryCtl.UpsertSubCategory)
				admin.DELETE("/sub-categories/:id", categoryCtl.DeleteSubCategory)
				admin.POST("/offer-tags", offerTagCtl.UpsertOfferTag)
				admin.DELETE("/offer-tags/:id", offerTagCtl.DeleteOfferTag)
			}
		}
	}
}
