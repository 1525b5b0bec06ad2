package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/auth"
	domainClient "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/handlers"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/account"
	ucClient "github.com/BruksfildServices01/ink-agenda/internal/usecase/client"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/dashboard"
	mediauc "github.com/BruksfildServices01/ink-agenda/internal/usecase/media"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/perfil"
	ucSession "github.com/BruksfildServices01/ink-agenda/internal/usecase/session"
)

type Repositories struct {
	Users    user.Repository
	Styles   user.StyleRepository
	Clients  domainClient.Repository
	Sessions domainSession.Repository
	Photos   media.PhotoRepository
	Images   media.GeneratedImageRepository
}

// Deps is everything main wires once at startup. Identity is nil in local
// auth mode; AuditLogs nil disables the audit trail route.
type Deps struct {
	DB        *gorm.DB
	Repos     Repositories
	Audit     audit.Recorder
	AuditLogs *audit.Logger

	Resolver    auth.TokenResolver
	Tokens      account.TokenIssuer
	Identity    user.IdentityProvider
	ResetTokens user.ResetTokenStore
	Mailer      user.Mailer
	DomainCheck account.DomainCheck
	Recover     account.RecoverConfig

	Store     media.ObjectStore
	Generator media.ImageGenerator

	Timezone string
	Location *time.Location

	// BcryptCost overrides the default hashing cost when > 0.
	BcryptCost int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	repos := d.Repos

	// ======================================================
	// USE CASES
	// ======================================================
	register := account.NewRegister(repos.Users, d.Identity, d.Audit, d.DomainCheck)
	changePassword := account.NewChangePassword(repos.Users, d.Identity, d.ResetTokens, d.Audit)
	if d.BcryptCost > 0 {
		register.WithCost(d.BcryptCost)
		changePassword.WithCost(d.BcryptCost)
	}

	authHandler := handlers.NewAuthHandler(
		register,
		account.NewLogin(repos.Users, d.Tokens, d.Identity),
		account.NewRecoverPassword(repos.Users, d.Identity, d.ResetTokens, d.Mailer, d.Recover),
		changePassword,
	)

	perfilHandler := handlers.NewPerfilHandler(
		perfil.NewGetPerfil(repos.Users, d.Store),
		perfil.NewUpdatePerfil(repos.Users, repos.Styles, d.Store, d.Audit),
		perfil.NewDeletePerfil(repos.Users, d.Identity, d.Store, d.Audit),
		perfil.NewUploadProfilePhoto(repos.Users, d.Store, d.Audit),
	)

	styleHandler := handlers.NewStyleHandler(perfil.NewListStyles(repos.Styles))

	clientHandler := handlers.NewClientHandler(
		ucClient.NewCreateClient(repos.Clients, d.Audit),
		ucClient.NewListClients(repos.Clients),
		ucClient.NewGetClient(repos.Clients),
		ucClient.NewUpdateClient(repos.Clients, d.Audit),
		ucClient.NewDeleteClient(repos.Clients, d.Audit),
	)

	sessionHandler := handlers.NewSessionHandler(
		ucSession.NewCreateSession(repos.Sessions, repos.Clients, d.Audit),
		ucSession.NewGetSession(repos.Sessions),
		ucSession.NewUpdateSession(repos.Sessions, repos.Clients, d.Audit),
		ucSession.NewChangeSessionStatus(repos.Sessions, d.Audit),
		ucSession.NewDeleteSession(repos.Sessions, d.Audit),
		ucSession.NewListSessions(repos.Sessions, repos.Clients, d.Location),
		d.Location,
	)

	dashboardHandler := handlers.NewDashboardHandler(
		dashboard.NewSummary(repos.Sessions, d.Timezone),
		d.Location,
	)

	photoHandler := handlers.NewPhotoHandler(
		mediauc.NewUploadPhoto(repos.Photos, d.Store, d.Audit),
		mediauc.NewListPhotos(repos.Photos, d.Store),
		mediauc.NewGetPhoto(repos.Photos, d.Store),
		mediauc.NewDeletePhoto(repos.Photos, d.Store, d.Audit),
	)

	generateHandler := handlers.NewGenerateHandler(
		mediauc.NewGenerateImage(d.Generator, repos.Images, d.Store, d.Audit),
		mediauc.NewListGenerated(repos.Images),
		mediauc.NewGetGenerated(repos.Images),
		mediauc.NewDeleteGenerated(repos.Images, d.Store, d.Audit),
	)

	healthHandler := handlers.NewHealthHandler(d.DB)

	// ======================================================
	// ROOT
	// ======================================================
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")

	// ------------------------------
	// PUBLIC
	// ------------------------------
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", authHandler.Register)
		userGroup.POST("/login", authHandler.Login)
		userGroup.POST("/recuperar-senha", authHandler.RecoverPassword)
		userGroup.POST("/alterar-senha", authHandler.ChangePassword)
	}

	api.GET("/photos/photo/:id", photoHandler.Get)
	api.GET("/photos/user/:id", photoHandler.ListByUser)

	// ------------------------------
	// SECURED
	// ------------------------------
	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(d.Resolver))
	{
		secured.GET("/perfil", perfilHandler.Get)
		secured.PUT("/perfil", perfilHandler.Update)
		secured.DELETE("/perfil", perfilHandler.Delete)
		secured.POST("/image/perfil", perfilHandler.UploadPhoto)

		secured.GET("/style", styleHandler.List)

		// clients
		secured.GET("/client", clientHandler.List)
		secured.POST("/client", clientHandler.Create)
		secured.GET("/client/:id", clientHandler.Get)
		secured.PUT("/client/:id", clientHandler.Update)
		secured.DELETE("/client/:id", clientHandler.Delete)

		// sessions
		pending := domainSession.StatusPending
		realized := domainSession.StatusRealized
		canceled := domainSession.StatusCanceled

		secured.GET("/sessions", sessionHandler.List)
		secured.POST("/sessions", sessionHandler.Create)
		secured.GET("/sessions/pendentes", sessionHandler.ListByStatus(pending))
		secured.GET("/sessions/realizadas", sessionHandler.ListByStatus(realized))
		secured.GET("/sessions/canceladas", sessionHandler.ListByStatus(canceled))
		secured.GET("/sessions/cliente/:clienteId", sessionHandler.ListByClient(nil))
		secured.GET("/sessions/cliente/:clienteId/pendentes", sessionHandler.ListByClient(&pending))
		secured.GET("/sessions/cliente/:clienteId/realizadas", sessionHandler.ListByClient(&realized))
		secured.GET("/sessions/cliente/:clienteId/canceladas", sessionHandler.ListByClient(&canceled))
		secured.PATCH("/sessions/realizar/:id", sessionHandler.ChangeStatus)
		secured.GET("/sessions/:id", sessionHandler.Get)
		secured.PUT("/sessions/:id", sessionHandler.Update)
		secured.DELETE("/sessions/:id", sessionHandler.Delete)

		// dashboard
		for _, p := range []domainSession.Period{
			domainSession.PeriodDay,
			domainSession.PeriodMonth,
			domainSession.PeriodYear,
		} {
			secured.GET("/dashboard/sessions/"+string(p), dashboardHandler.Sessions(domainSession.MetricCount, p))
			secured.GET("/dashboard/sessions/value/"+string(p), dashboardHandler.Sessions(domainSession.MetricValue, p))
		}

		// gallery
		secured.POST("/photos", photoHandler.Upload)
		secured.GET("/photos", photoHandler.ListMine)
		secured.DELETE("/photos/:id", photoHandler.Delete)

		// AI images
		secured.POST("/generate", generateHandler.Generate)
		secured.GET("/ai-gallery", generateHandler.List)
		secured.GET("/ai-gallery/:id", generateHandler.Get)
		secured.DELETE("/ai-gallery/:id", generateHandler.Delete)

		if d.AuditLogs != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Location)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
