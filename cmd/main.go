package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gomarket_v1/internal/controller"
	"gomarket_v1/internal/middleware"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/internal/router"
	"gomarket_v1/internal/service"
	"gomarket_v1/internal/task"
	"gomarket_v1/pkg/database"
	"gomarket_v1/pkg/geo"
	"gomarket_v1/pkg/identity"
	"gomarket_v1/pkg/webhook"
)

// @title GoMarket API
// @version 1.0
// @description 多租户电商平台：店面 + 卖家/管理后台
// @BasePath /
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := initRouter(deps)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Store        repository.StoreRepository
	Country      repository.CountryRepository
	ShippingRate repository.ShippingRateRepository
	Category     repository.CategoryRepository
	SubCategory  repository.SubCategoryRepository
	OfferTag     repository.OfferTagRepository
	Product      repository.ProductRepository
	ProductUow   *repository.ProductUnitOfWork
	Review       repository.ReviewRepository
}

// Services 服务集合
type Services struct {
	User     *service.UserService
	Store    *service.StoreService
	Shipping *service.ShippingService
	Category *service.CategoryService
	OfferTag *service.OfferTagService
	Review   *service.ReviewService
	Product  *service.ProductService
	Cart     *service.CartService
}

// Controllers 控制器集合
type Controllers struct {
	Geo      *controller.GeoController
	User     *controller.UserController
	Store    *controller.StoreController
	Product  *controller.ProductController
	Category *controller.CategoryController
	OfferTag *controller.OfferTagController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=gomarket port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// User
		&model.User{},
		// Store & Shipping
		&model.Store{}, &model.ShippingRate{},
		&model.Country{}, &model.FreeShipping{}, &model.FreeShippingCountry{},
		// Taxonomy
		&model.Category{}, &model.SubCategory{}, &model.OfferTag{},
		// Product
		&model.Product{}, &model.ProductVariant{}, &model.ProductVariantImage{},
		&model.Color{}, &model.Size{}, &model.Spec{}, &model.Question{},
		// Review
		&model.Review{}, &model.ReviewImage{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:         repository.NewUserRepository(db),
		Store:        repository.NewStoreRepository(db),
		Country:      repository.NewCountryRepository(db),
		ShippingRate: repository.NewShippingRateRepository(db),
		Category:     repository.NewCategoryRepository(db),
		SubCategory:  repository.NewSubCategoryRepository(db),
		OfferTag:     repository.NewOfferTagRepository(db),
		Product:      repository.NewProductRepository(db),
		ProductUow:   repository.NewProductUnitOfWork(db),
		Review:       repository.NewReviewRepository(db),
	}

	// -------- 外部客户端 --------
	geoClient := geo.NewClient(getEnv("IPINFO_TOKEN", ""))
	identityClient := identity.NewClient(
		getEnv("IDENTITY_API_URL", "https://api.clerk.com/v1"),
		getEnv("IDENTITY_SECRET_KEY", ""),
	)

	// -------- 业务服务 --------
	services := &Services{}
	services.User = service.NewUserService(repos.User, repos.Store, identityClient)
	services.Shipping = service.NewShippingService(repos.Country, repos.ShippingRate)
	services.Store = service.NewStoreService(repos.Store, repos.Country, repos.ShippingRate)
	services.Category = service.NewCategoryService(repos.Category, repos.SubCategory)
	services.OfferTag = service.NewOfferTagService(repos.OfferTag)
	services.Review = service.NewReviewService(repos.Review, repos.Product)
	services.Product = service.NewProductService(
		repos.Product, repos.Store, repos.Category, repos.SubCategory,
		repos.User, repos.ProductUow, services.Shipping, services.Review,
	)
	services.Cart = service.NewCartService(repos.Product, services.Shipping)

	// -------- Controller 层 --------
	verifier := initWebhookVerifier()
	controllers := &Controllers{
		Geo:      controller.NewGeoController(geoClient),
		User:     controller.NewUserController(services.User, verifier),
		Store:    controller.NewStoreController(services.Store),
		Product:  controller.NewProductController(services.Product, services.Review, services.Cart, geoClient),
		Category: controller.NewCategoryController(services.Category),
		OfferTag: controller.NewOfferTagController(services.OfferTag),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initWebhookVerifier 初始化 webhook 签名校验器
// 密钥未配置时返回 nil，签名校验降级跳过（本地调试）
func initWebhookVerifier() *webhook.Verifier {
	secret := getEnv("IDENTITY_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Println("警告: 未配置 webhook 密钥，签名校验已关闭")
		return nil
	}
	verifier, err := webhook.NewVerifier(secret)
	if err != nil {
		log.Fatalf("webhook 密钥解析失败: %v", err)
	}
	return verifier
}

// initRouter 初始化路由
func initRouter(deps *Dependencies) *gin.Engine {
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg := middleware.DefaultJWTConfig()
		cfg.SecretKey = secret
		middleware.SetJWTConfig(cfg)
	}

	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Geo,
		deps.Controllers.User,
		deps.Controllers.Store,
		deps.Controllers.Product,
		deps.Controllers.Category,
		deps.Controllers.OfferTag,
	)
	return r
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	statsTask := task.NewStatsTask(
		deps.Repos.Product,
		deps.Repos.Review,
		deps.Repos.Store,
		getEnv("STATS_CRON_SPEC", ""),
	)
	if err := statsTask.Start(); err != nil {
		log.Fatalf("统计任务启动失败: %v", err)
	}

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
