package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/auth"
	"github.com/BruksfildServices01/ink-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/ink-agenda/internal/db"
	"github.com/BruksfildServices01/ink-agenda/internal/imaging"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/genai"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/ink-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/resettoken"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/storage"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/supabase"
	"github.com/BruksfildServices01/ink-agenda/internal/logging"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	"github.com/BruksfildServices01/ink-agenda/internal/routes"
	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	loc := timezone.Location(cfg.Timezone)

	deps := routes.Deps{
		DB: db,
		Repos: routes.Repositories{
			Users:    infraRepo.NewUserGormRepository(db),
			Styles:   infraRepo.NewStyleGormRepository(db),
			Clients:  infraRepo.NewClientGormRepository(db),
			Sessions: infraRepo.NewSessionGormRepository(db),
			Photos:   infraRepo.NewPhotoGormRepository(db),
			Images:   infraRepo.NewGeneratedImageGormRepository(db),
		},
		Audit:     audit.New(db),
		AuditLogs: audit.New(db),
		Store: storage.NewS3Store(storage.Config{
			Endpoint:  cfg.StorageEndpointURL(),
			AccessKey: cfg.StorageKey,
			SecretKey: cfg.StorageSecret,
			Bucket:    cfg.StorageBucket,
			PublicURL: cfg.PublicBucketURL,
		}),
		Generator: genai.NewImagenClient(genai.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiImageModel,
		}, &http.Client{Timeout: 90 * time.Second}),
		Recover: account.RecoverConfig{
			ResetURL: cfg.PasswordResetURL,
			TTL:      cfg.PasswordResetTTL,
		},
		Timezone: loc.String(),
		Location: loc,
	}

	if cfg.EmailDomainCheck {
		deps.DomainCheck = func(ctx context.Context, email string) bool {
			return validators.EmailDomainResolves(ctx, net.DefaultResolver, email)
		}
	}

	// ======================================================
	// AUTH STRATEGY
	// ======================================================
	var rdb *redis.Client

	if cfg.UsesSupabase() {
		idp := supabase.NewClient(supabase.Config{
			URL:            cfg.SupabaseURL,
			AnonKey:        cfg.SupabaseAnonKey,
			ServiceRoleKey: cfg.SupabaseServiceRoleKey,
		}, httpClient)

		deps.Identity = idp
		deps.Resolver = auth.NewIdentityResolver(idp)
	} else {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
		deps.Resolver = jwtManager
		deps.Tokens = jwtManager

		rdb, err = resettoken.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("invalid REDIS_URL")
		}
		deps.ResetTokens = resettoken.NewRedisStore(rdb)

		if cfg.ResendAPIKey != "" {
			deps.Mailer = mailer.NewResendMailer(mailer.ResendConfig{
				APIKey: cfg.ResendAPIKey,
				From:   cfg.MailFrom,
			}, httpClient)
		} else {
			logrus.Warn("RESEND_API_KEY not set, password reset e-mails are disabled")
		}
	}

	logrus.WithFields(logrus.Fields{
		"auth_mode": cfg.AuthMode,
		"timezone":  loc.String(),
	}).Info("dependencies ready")

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.MaxMultipartMemory = imaging.MaxUploadBytes + 1<<20
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}

	closeAll(db, rdb)
}

func closeAll(db *gorm.DB, rdb *redis.Client) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Warn("closing database")
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logrus.WithError(err).Warn("closing redis")
		}
	}
}
