package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"tattoo-backend/internal/config"
	infraCache "tattoo-backend/internal/infrastructure/cache"
	"tattoo-backend/internal/infrastructure/database"
	"tattoo-backend/internal/infrastructure/storage"
	"tattoo-backend/pkg/cache"
	"tattoo-backend/pkg/jwt"
	"tattoo-backend/pkg/logger"
	"tattoo-backend/pkg/swr"

	"tattoo-backend/internal/domains/blog"
	blogHandler "tattoo-backend/internal/domains/blog/handler"
	blogRepo "tattoo-backend/internal/domains/blog/repository"
	blogService "tattoo-backend/internal/domains/blog/service"
	"tattoo-backend/internal/domains/cart"
	cartHandler "tattoo-backend/internal/domains/cart/handler"
	cartService "tattoo-backend/internal/domains/cart/service"
	cartStore "tattoo-backend/internal/domains/cart/store"
	"tattoo-backend/internal/domains/category"
	categoryHandler "tattoo-backend/internal/domains/category/handler"
	categoryRepo "tattoo-backend/internal/domains/category/repository"
	categoryService "tattoo-backend/internal/domains/category/service"
	"tattoo-backend/internal/domains/comment"
	commentHandler "tattoo-backend/internal/domains/comment/handler"
	commentRepo "tattoo-backend/internal/domains/comment/repository"
	commentService "tattoo-backend/internal/domains/comment/service"
	"tattoo-backend/internal/domains/product"
	productHandler "tattoo-backend/internal/domains/product/handler"
	productRepo "tattoo-backend/internal/domains/product/repository"
	productService "tattoo-backend/internal/domains/product/service"
	"tattoo-backend/internal/domains/profile"
	profileHandler "tattoo-backend/internal/domains/profile/handler"
	profileRepo "tattoo-backend/internal/domains/profile/repository"
	profileService "tattoo-backend/internal/domains/profile/service"
	"tattoo-backend/internal/domains/user"
	userHandler "tattoo-backend/internal/domains/user/handler"
	userRepo "tattoo-backend/internal/domains/user/repository"
	userService "tattoo-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
)

// ===== CONTAINER =====
//
// Single place the dependency graph is assembled. Order matters:
// config, then infrastructure, then repositories, then services,
// then handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client

	// Repositories
	UserRepo     user.UserRepository
	CategoryRepo category.CategoryRepository
	ProfileRepo  profile.ProfileRepository
	PostRepo     blog.PostRepository
	CommentRepo  comment.CommentRepository
	ProductRepo  product.ProductRepository
	CartStore    cart.Store

	// Services
	UserService     user.UserService
	CategoryService category.CategoryService
	ProfileService  profile.ProfileService
	BlogService     blog.BlogService
	CommentService  comment.CommentService
	ProductService  product.ProductService
	CartService     cart.CartService

	// Handlers
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProfileHandler  *profileHandler.ProfileHandler
	PostHandler     *blogHandler.PostHandler
	CommentHandler  *commentHandler.CommentHandler
	ProductHandler  *productHandler.ProductHandler
	CartHandler     *cartHandler.CartHandler
}

func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI container...")
	c := &Container{}

	// ===== STEP 1: CONFIGURATION =====
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	log.Printf("✅ Config loaded (environment: %s)", cfg.App.Environment)

	// ===== STEP 2: DATABASE =====
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// ===== STEP 3: REDIS =====
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	redisAvailable := redisCache.Ping(context.Background()) == nil
	if redisAvailable {
		c.Cache = redisCache
		log.Println("✅ Redis connected")
	} else {
		log.Println("⚠️  Redis unreachable, carts fall back to the in-memory store")
	}

	// ===== STEP 4: STORAGE, JWT, QUEUE CLIENT =====
	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = store
	log.Println("✅ Object storage ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
	})

	// ===== STEP 5: REPOSITORIES =====
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool)
	c.ProfileRepo = profileRepo.NewPostgresRepository(db.Pool)
	c.PostRepo = blogRepo.NewPostgresRepository(db.Pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)
	c.ProductRepo = productRepo.NewPostgresRepository(db.Pool)

	if redisAvailable {
		c.CartStore = cartStore.NewRedisStore(c.Cache)
	} else {
		c.CartStore = cartStore.NewMemoryStore()
	}

	// ===== STEP 6: SERVICES =====
	// The aggregation service is built first: category and profile
	// services need it as their cache invalidator, while it only needs
	// the repositories as batch resolvers.
	c.BlogService = blogService.NewBlogService(
		c.PostRepo,
		c.CategoryRepo,
		c.ProfileRepo,
		c.Storage,
		c.AsynqClient,
		swr.Options{
			FreshFor: cfg.Cache.PostsFreshFor,
			IdleTTL:  cfg.Cache.IdleTTL,
		},
	)

	c.CommentService = commentService.NewCommentService(
		c.CommentRepo,
		c.ProfileRepo,
		swr.Options{
			FreshFor: cfg.Cache.CommentsFreshFor,
			IdleTTL:  cfg.Cache.IdleTTL,
		},
	)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.BlogService)
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.Storage, c.BlogService)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Storage)
	c.CartService = cartService.NewCartService(c.CartStore, c.ProductRepo, c.ProfileRepo)

	// ===== STEP 7: HANDLERS =====
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.PostHandler = blogHandler.NewPostHandler(c.BlogService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)

	log.Println("✅ DI container ready")
	return c, nil
}

// Cleanup releases every owned resource in reverse init order.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if c.BlogService != nil {
		c.BlogService.Close()
	}
	if c.CommentService != nil {
		c.CommentService.Close()
	}
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleanup complete")
}
