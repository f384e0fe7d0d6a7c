package server

import (
	"strings"
	"time"

	"anoa.com/collegejournal/internal/config"
	"anoa.com/collegejournal/internal/middleware"
	articleHTTP "anoa.com/collegejournal/internal/modules/article/delivery/http"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	articleService "anoa.com/collegejournal/internal/modules/article/service"
	categoryHTTP "anoa.com/collegejournal/internal/modules/category/delivery/http"
	categoryRepo "anoa.com/collegejournal/internal/modules/category/repository"
	categoryService "anoa.com/collegejournal/internal/modules/category/service"
	channelHTTP "anoa.com/collegejournal/internal/modules/channel/delivery/http"
	channelRepo "anoa.com/collegejournal/internal/modules/channel/repository"
	channelService "anoa.com/collegejournal/internal/modules/channel/service"
	commentHTTP "anoa.com/collegejournal/internal/modules/comment/delivery/http"
	commentRepo "anoa.com/collegejournal/internal/modules/comment/repository"
	commentService "anoa.com/collegejournal/internal/modules/comment/service"
	search "anoa.com/collegejournal/internal/modules/search/service"
	statHTTP "anoa.com/collegejournal/internal/modules/stat/delivery/http"
	statRepo "anoa.com/collegejournal/internal/modules/stat/repository"
	statService "anoa.com/collegejournal/internal/modules/stat/service"
	tagHTTP "anoa.com/collegejournal/internal/modules/tag/delivery/http"
	tagRepo "anoa.com/collegejournal/internal/modules/tag/repository"
	tagService "anoa.com/collegejournal/internal/modules/tag/service"
	uploadHTTP "anoa.com/collegejournal/internal/modules/upload/delivery/http"
	userHTTP "anoa.com/collegejournal/internal/modules/user/delivery/http"
	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	userService "anoa.com/collegejournal/internal/modules/user/service"
	"anoa.com/collegejournal/pkg/session"
	"anoa.com/collegejournal/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// NewServer wires repositories, services and handlers into the HTTP surface.
// searchSvc and imageStore may be nil when the backing services are not
// configured.
func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	sessions session.Store,
	searchSvc search.SearchService,
	imageStore storage.ImageStorage,
) *Server {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	users := userRepo.NewUserRepository(db)
	articles := articleRepo.NewArticleRepository(db)
	categories := categoryRepo.NewCategoryRepository(db)
	tags := tagRepo.NewTagRepository(db)
	comments := commentRepo.NewCommentRepository(db)
	channels := channelRepo.NewChannelRepository(db)
	messages := channelRepo.NewMessageRepository(db)
	stats := statRepo.NewStatRepository(db)

	authSvc := userService.NewAuthService(users, sessions)
	userSvc := userService.NewUserService(users, articles)
	articleSvc := articleService.NewArticleService(articles, categories, tags, searchSvc)
	categorySvc := categoryService.NewCategoryService(categories, articles)
	tagSvc := tagService.NewTagService(tags)
	commentSvc := commentService.NewCommentService(comments, articles)
	channelSvc := channelService.NewChannelService(channels, messages, articles)
	statSvc := statService.NewStatService(stats)

	authHandler := userHTTP.NewAuthHandler(authSvc, cfg.SessionTTL)
	userHandler := userHTTP.NewUserHandler(userSvc)
	articleHandler := articleHTTP.NewArticleHandler(articleSvc)
	categoryHandler := categoryHTTP.NewCategoryHandler(categorySvc)
	tagHandler := tagHTTP.NewTagHandler(tagSvc)
	commentHandler := commentHTTP.NewCommentHandler(commentSvc)
	channelHandler := channelHTTP.NewChannelHandler(channelSvc)
	statHandler := statHTTP.NewStatHandler(statSvc)
	uploadHandler := uploadHTTP.NewUploadHandler(imageStore)

	auth := middleware.NewAuthMiddleware(users, sessions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(setupCORS(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(auth.LoadSession())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimit(cfg.LoginRatePerMinute), authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", auth.RequireAuth(), authHandler.Me)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.GET("/public", userHandler.ListPublic)
		usersGroup.GET("/by-username/:username", userHandler.GetByUsername)

		usersGroup.GET("", auth.RequireAdmin(), userHandler.List)
		usersGroup.POST("", auth.RequireAdmin(), userHandler.Create)
		usersGroup.PATCH("/:id", auth.RequireAdmin(), userHandler.Update)
		usersGroup.PATCH("/:id/role", auth.RequireAdmin(), userHandler.UpdateRole)
		usersGroup.DELETE("/:id", auth.RequireAdmin(), userHandler.Delete)
	}

	categoriesGroup := api.Group("/categories")
	{
		categoriesGroup.GET("", categoryHandler.List)
		categoriesGroup.GET("/with-count", categoryHandler.ListWithCounts)
		categoriesGroup.GET("/by-slug/:slug", categoryHandler.GetBySlug)

		categoriesGroup.POST("", auth.RequireAdmin(), categoryHandler.Create)
		categoriesGroup.PATCH("/:id", auth.RequireAdmin(), categoryHandler.Update)
		categoriesGroup.DELETE("/:id", auth.RequireAdmin(), categoryHandler.Delete)
	}

	tagsGroup := api.Group("/tags")
	{
		tagsGroup.GET("", tagHandler.List)
		tagsGroup.POST("", auth.RequireAdmin(), tagHandler.Create)
		tagsGroup.DELETE("/:id", auth.RequireAdmin(), tagHandler.Delete)
	}

	articlesGroup := api.Group("/articles")
	{
		articlesGroup.GET("", articleHandler.List)
		articlesGroup.GET("/search", articleHandler.Search)
		articlesGroup.GET("/by-slug/:slug", articleHandler.GetBySlug)

		articlesGroup.GET("/all", auth.RequireAdmin(), articleHandler.ListAll)
		articlesGroup.GET("/recent", auth.RequireAuth(), articleHandler.Recent)
		articlesGroup.GET("/:id", auth.RequireAuth(), articleHandler.GetByID)
		articlesGroup.POST("", auth.RequireAuth(), articleHandler.Create)
		articlesGroup.PATCH("/:id", auth.RequireAuth(), articleHandler.Update)
		articlesGroup.PATCH("/:id/status", auth.RequireAdmin(), articleHandler.UpdateStatus)
		articlesGroup.DELETE("/:id", auth.RequireAuth(), articleHandler.Delete)
	}

	commentsGroup := api.Group("/comments")
	{
		commentsGroup.GET("/:articleId", commentHandler.ListByArticle)
		commentsGroup.POST("", auth.RequireAuth(), commentHandler.Create)
		commentsGroup.DELETE("/:id", auth.RequireAdmin(), commentHandler.Delete)
	}

	channelsGroup := api.Group("/channels")
	{
		channelsGroup.GET("", auth.RequireAuth(), channelHandler.List)
		channelsGroup.POST("", auth.RequireAdmin(), channelHandler.Create)
		channelsGroup.DELETE("/:id", auth.RequireAdmin(), channelHandler.Delete)
	}

	messagesGroup := api.Group("/messages")
	{
		messagesGroup.GET("/:channelId", auth.RequireAuth(), channelHandler.ListMessages)
		messagesGroup.POST("", auth.RequireAuth(), channelHandler.CreateMessage)
		messagesGroup.DELETE("/:id", auth.RequireAdmin(), channelHandler.DeleteMessage)
	}

	api.GET("/dashboard/stats", auth.RequireAuth(), statHandler.Dashboard)
	api.POST("/upload", auth.RequireAuth(), uploadHandler.Upload)

	return &Server{router: router, cfg: cfg}
}

func setupCORS(cfg *config.Config) gin.HandlerFunc {
	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run() error {
	return s.router.Run(":" + s.cfg.Port)
}
