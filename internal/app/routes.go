package app

import (
	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	"github.com/rakane/SocialMediaBackEnd/internal/cache"
	"github.com/rakane/SocialMediaBackEnd/internal/config"
	"github.com/rakane/SocialMediaBackEnd/internal/handlers"
	"github.com/rakane/SocialMediaBackEnd/internal/repo"
	"github.com/rakane/SocialMediaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL.Duration())
	postCache := cache.NewPostCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	postRepo := repo.NewPGPostRepo(db)

	userSvc := service.NewUserService(userRepo, issuer, postCache)
	postSvc := service.NewPostService(postRepo, userRepo, postCache)

	registerUserRoutes(api, handlers.NewUserHandler(userSvc), issuer)
	registerPostRoutes(api, handlers.NewPostHandler(postSvc), issuer)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Social API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler, issuer *auth.Issuer) {
	users := api.Group("/users")
	users.GET("/test", h.Test)
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/handle/:handle", h.ByHandle)

	protected := users.Group("", auth.RequireAuth(issuer))
	protected.GET("/current", h.Current)
	protected.POST("/update", h.Update)
	protected.POST("/follow", h.Follow)
	protected.POST("/unfollow", h.Unfollow)
}

func registerPostRoutes(api *gin.RouterGroup, h *handlers.PostHandler, issuer *auth.Issuer) {
	posts := api.Group("/posts")
	posts.GET("/test", h.Test)
	posts.GET("/:id", h.GetByID)
	// :id is an author handle on this route; gin requires one param name per
	// position, so it shares the name with GET /posts/:id.
	posts.GET("/:id/posts", h.ByAuthor)

	protected := posts.Group("", auth.RequireAuth(issuer))
	protected.GET("/current/all", h.Feed)
	protected.POST("/create-post", h.Create)
	protected.DELETE("/:id", h.Delete)
	protected.POST("/like/:id", h.Like)
	protected.POST("/unlike/:id", h.Unlike)
	protected.POST("/comment/:id", h.Comment)
	protected.DELETE("/comment/:id/:commentId", h.Uncomment)
}
