package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/configs"
	"github.com/shostako/yasuragi-no-sato/controllers"
	"github.com/shostako/yasuragi-no-sato/middlewares"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/services"
	"github.com/shostako/yasuragi-no-sato/ws"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.AdminHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	resvRepo := repository.NewReservationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	pageRepo := repository.NewPageContentRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	notifySvc := services.NewNotifyService(cfg)
	resvSvc := services.NewReservationService(db, resvRepo)
	newsSvc := services.NewNewsService(db, newsRepo, cfg.UploadDir, cfg.SiteBaseURL)
	pageSvc := services.NewPageContentService(pageRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(userRepo, cfg)
	resvCtrl := controllers.NewReservationController(resvSvc, resvRepo, notifySvc, hub)
	contactCtrl := controllers.NewContactController(contactRepo, notifySvc, hub)
	newsCtrl := controllers.NewNewsController(newsSvc, newsRepo)
	pageCtrl := controllers.NewPageContentController(pageSvc)
	notifyCtrl := controllers.NewNotifyController(notifySvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
		aAuth.POST("/edit-mode", authCtrl.ToggleEditMode)
	}

	// Public（未ログインでも可。トークンがあればuid紐付け／会員限定記事の閲覧）
	pub := r.Group("/", middlewares.OptionalAuth(cfg.JWTSecret))
	{
		pub.GET("/reservations/calendar", resvCtrl.Calendar)
		pub.POST("/reservations", resvCtrl.Create)
		pub.POST("/contacts", contactCtrl.Create)
		pub.GET("/news", newsCtrl.List)
		pub.GET("/news/feed", newsCtrl.Feed)
		pub.GET("/news/:id", newsCtrl.Detail)
		pub.GET("/pages/:pageId/contents", pageCtrl.Contents)
	}

	r.POST("/notify", notifyCtrl.Send)

	// 一度きりの管理者セットアップ（env未設定なら403）
	r.POST("/setup/admin", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.SetupAdmin)

	// Member（要ログイン）
	member := r.Group("/member", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		member.GET("/reservations", resvCtrl.ListForMe)
		member.GET("/inquiries", contactCtrl.ListForMe)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/reservations", resvCtrl.AdminList)
		admin.PATCH("/reservations/:id/status", resvCtrl.ChangeStatus)
		admin.DELETE("/reservations/:id", resvCtrl.Delete)

		admin.GET("/contacts", contactCtrl.AdminList)
		admin.PATCH("/contacts/:id/status", contactCtrl.ChangeStatus)
		admin.DELETE("/contacts/:id", contactCtrl.Delete)

		admin.GET("/news", newsCtrl.AdminList)
		admin.POST("/news", newsCtrl.Create)
		admin.PATCH("/news/:id", newsCtrl.Update)
		admin.DELETE("/news/:id", newsCtrl.Delete)

		admin.PUT("/pages/:pageId/contents/:key", pageCtrl.Update)
	}

	// 管理ダッシュボードのイベント配信
	r.GET("/ws/admin", middlewares.WSAuthMiddleware(cfg.JWTSecret, "admin"), hub.HandleWebSocket)
}
