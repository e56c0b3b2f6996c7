package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/generate"
	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/qr"
	"qrfolio-backend/internal/services/health"
	"qrfolio-backend/internal/shared/auth"
	"qrfolio-backend/internal/shared/config"
	"qrfolio-backend/internal/shared/server"
	"qrfolio-backend/internal/shared/server/middleware"
	"qrfolio-backend/internal/shared/storage/db"
	"qrfolio-backend/internal/shared/storage/object"
	localstore "qrfolio-backend/internal/shared/storage/object/local"
	memorystore "qrfolio-backend/internal/shared/storage/object/memory"
	s3store "qrfolio-backend/internal/shared/storage/object/s3"
	"qrfolio-backend/internal/uploads"
	"qrfolio-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.Store
	Signer          *auth.Signer
	UsersRepo       users.Repo
	UsersService    *users.Service
	GenerateService *generate.Service
	GenerateHandler *generate.Handler
	UsersHandler    *users.Handler
	Health          *health.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Signer: signer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Store:           app.Store,
		GenerateHandler: app.GenerateHandler,
		UserHandler:     app.UsersHandler,
		Verifier:        app.Signer,
		Limiter:         middleware.NewRateLimiter(nil),
		Health:          app.Health,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory user repository")
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory user repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "memory":
		return memorystore.New(), nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var userRepo users.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
	}

	receiver := uploads.NewReceiver(app.Store)
	receiver.MaxVideoBytes = app.Config.MaxVideoBytes
	receiver.VerifyPDF = app.Config.ResumeVerifyPDF

	resolver := publish.Chain{
		publish.StaticBase(app.Config.PublicBaseURL),
		publish.RequestBase{TrustForwarded: app.Config.TrustForwardedHeaders},
	}
	publisher := publish.NewPublisher(app.Store, resolver)
	encoder := qr.NewEncoder(app.Config.QRLevel, app.Config.QRSize)

	if app.DB != nil {
		app.Health = health.NewService(app.DB)
	} else {
		app.Health = health.NewService(nil)
	}
	app.UsersRepo = userRepo
	app.UsersService = users.NewService(userRepo, app.Signer)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GenerateService = generate.NewService(receiver, publisher, encoder)
	app.GenerateHandler = generate.NewHandler(app.GenerateService, app.Config.MaxVideoBytes)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
