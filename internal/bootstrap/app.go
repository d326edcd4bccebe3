// Package bootstrap assembles the application from configuration. Everything
// the handlers depend on is built here once and passed down explicitly; there
// is no global state to reach for.
package bootstrap

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/filings"
	"filing-backend/internal/identity"
	"filing-backend/internal/payments"
	"filing-backend/internal/shared/config"
	"filing-backend/internal/shared/server"
	"filing-backend/internal/shared/storage/db"
	"filing-backend/internal/shared/storage/object"
	localstore "filing-backend/internal/shared/storage/object/local"
	s3store "filing-backend/internal/shared/storage/object/s3"
	"filing-backend/internal/transcripts"
	"filing-backend/internal/users"
)

// App holds the assembled dependencies. Fields may be swapped before Router
// is called, which is how tests substitute the gateway or trust provider.
type App struct {
	Config config.Config

	DB       *sql.DB
	Store    object.ObjectStore
	Gateway  payments.Gateway
	Provider identity.Provider

	UsersRepo   users.Repo
	FilingsRepo filings.Repo
}

// Build constructs the App from configuration. Outside production, missing
// or unreachable backing services degrade to in-process substitutes so the
// server still comes up.
func Build(ctx context.Context, cfg config.Config) *App {
	app := &App{Config: cfg}

	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
			conn.Close()
		} else {
			app.DB = conn
		}
	}

	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.FilingsRepo = &filings.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.FilingsRepo = filings.NewMemoryRepo()
	}

	app.Store = localstore.New(cfg.LocalStoreDir)
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			app.Store = store
		}
	}

	if cfg.StripeSecretKey != "" {
		app.Gateway = payments.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		app.Gateway = payments.Placeholder{}
	}

	if cfg.CheckLoginURL != "" {
		app.Provider = identity.NewWordPressProvider(cfg.CheckLoginURL)
	} else {
		app.Provider = identity.Disabled{}
	}

	return app
}

// Router builds the HTTP engine from the App's current dependencies.
func (a *App) Router() *gin.Engine {
	usersSvc := users.NewService(a.UsersRepo)
	filingSvc := &filings.Service{Repo: a.FilingsRepo, Store: a.Store}
	paymentSvc := &payments.Service{
		Gateway:     a.Gateway,
		Filings:     a.FilingsRepo,
		AmountCents: a.Config.FilingFeeCents,
		Currency:    a.Config.FilingFeeCcy,
	}
	transcriptSvc := &transcripts.Service{Filings: a.FilingsRepo, Store: a.Store}

	return server.NewRouter(a.Config, server.Handlers{
		Identity:    identity.NewHandler(a.Provider, usersSvc),
		Users:       users.NewHandler(usersSvc),
		Filings:     filings.NewHandler(filingSvc),
		Payments:    payments.NewHandler(paymentSvc),
		Transcripts: transcripts.NewHandler(transcriptSvc),
	})
}
