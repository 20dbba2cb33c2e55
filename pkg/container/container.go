package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"gymangel-backend/internal/config"
	infraCache "gymangel-backend/internal/infrastructure/cache"
	"gymangel-backend/internal/infrastructure/database"
	"gymangel-backend/pkg/cache"
	"gymangel-backend/pkg/jwt"

	cartHandler "gymangel-backend/internal/domains/cart/handler"
	cartRepo "gymangel-backend/internal/domains/cart/repository"
	cartService "gymangel-backend/internal/domains/cart/service"
	discountHandler "gymangel-backend/internal/domains/discount/handler"
	discountRepo "gymangel-backend/internal/domains/discount/repository"
	discountService "gymangel-backend/internal/domains/discount/service"
	membershipHandler "gymangel-backend/internal/domains/membership/handler"
	membershipRepo "gymangel-backend/internal/domains/membership/repository"
	membershipService "gymangel-backend/internal/domains/membership/service"
	orderHandler "gymangel-backend/internal/domains/order/handler"
	orderRepo "gymangel-backend/internal/domains/order/repository"
	orderService "gymangel-backend/internal/domains/order/service"
	planHandler "gymangel-backend/internal/domains/plan/handler"
	planRepo "gymangel-backend/internal/domains/plan/repository"
	planService "gymangel-backend/internal/domains/plan/service"
	productRepo "gymangel-backend/internal/domains/product/repository"
	userRepo "gymangel-backend/internal/domains/user/repository"
)

// Container là root của dependency graph. Thứ tự init: config →
// infrastructure → repositories → services → handlers. Tất cả singleton.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	UserRepo       userRepo.RepositoryInterface
	PlanRepo       planRepo.RepositoryInterface
	ProductRepo    productRepo.RepositoryInterface
	MembershipRepo membershipRepo.RepositoryInterface
	CartRepo       cartRepo.RepositoryInterface
	DiscountRepo   discountRepo.RepositoryInterface
	OrderRepo      orderRepo.RepositoryInterface

	// Services
	PlanService       planService.ServiceInterface
	MembershipService membershipService.ServiceInterface
	CartService       cartService.ServiceInterface
	DiscountService   discountService.ServiceInterface
	OrderService      orderService.ServiceInterface

	// Handlers
	PlanHandler       *planHandler.PlanHandler
	MembershipHandler *membershipHandler.MembershipHandler
	CartHandler       *cartHandler.CartHandler
	DiscountHandler   *discountHandler.DiscountHandler
	OrderHandler      *orderHandler.OrderHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: Infrastructure
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	log.Println("✅ Redis connected")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
	})

	// Step 3: Repositories
	pool := db.Pool
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.PlanRepo = planRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.MembershipRepo = membershipRepo.NewPostgresRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.DiscountRepo = discountRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)

	// Step 4: Services
	c.PlanService = planService.NewPlanService(c.PlanRepo, c.Cache, cfg.Membership.PlanCacheTTLMins)
	c.MembershipService = membershipService.NewMembershipService(
		c.MembershipRepo, c.PlanRepo, c.UserRepo, c.AsynqClient, cfg.Membership,
	)
	c.DiscountService = discountService.NewDiscountService(c.DiscountRepo, c.CartRepo)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductRepo, c.DiscountRepo)
	c.OrderService = orderService.NewOrderService(
		pool, c.OrderRepo, c.CartRepo, c.ProductRepo, c.DiscountRepo, c.UserRepo, c.AsynqClient,
	)

	// Step 5: Handlers
	c.PlanHandler = planHandler.NewPlanHandler(c.PlanService)
	c.MembershipHandler = membershipHandler.NewMembershipHandler(c.MembershipService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.DiscountHandler = discountHandler.NewDiscountHandler(c.DiscountService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)

	log.Println("✅ DI Container initialized")
	return c, nil
}

// Close giải phóng connections theo thứ tự ngược với init
func (c *Container) Close() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("✅ Container closed")
}
