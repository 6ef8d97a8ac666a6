package app

import (
	"context"
	"fmt"
	"log"

	"apthire/config"
	"apthire/internal/auth"
	"apthire/internal/database"
	"apthire/internal/notifier"
	"apthire/internal/oauth"
	"apthire/internal/services"
	"apthire/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Services groups the business logic the routes are built on.
type Services struct {
	Auth           services.AuthService
	OAuth          services.OAuthService
	User           services.UserService
	Job            services.JobService
	JobApplication services.JobApplicationService
	Lead           services.LeadService
	Dashboard      services.DashboardService
}

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate
	Tokens      *auth.TokenIssuer
	TokenStore  auth.TokenStore
	Services    Services
}

// New connects to Postgres and Redis, applies migrations and wires the services.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	alerter, err := notifier.NewTelegramAlerter(cfg.Telegram)
	if err != nil {
		// Lead alerts are optional.
		log.Printf("WARN: %v. Continuing without lead alerts.", err)
		alerter = &notifier.TelegramAlerter{}
	}

	a := &Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   validator.New(),
		Tokens:      auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer),
		TokenStore:  auth.NewRedisTokenStore(redisClient),
	}
	a.Services = newServices(cfg, dbPool, a.Tokens, a.TokenStore, otpNotifier(cfg), alerter)
	return a, nil
}

func otpNotifier(cfg *config.Config) services.Notifier {
	if cfg.SMTP.Host == "" {
		log.Println("WARN: SMTP host not configured, verification codes will only be logged")
		return notifier.LogNotifier{}
	}
	return notifier.NewEmailNotifier(cfg.SMTP, cfg.Auth.OTPTTL)
}

func newServices(
	cfg *config.Config,
	pool *pgxpool.Pool,
	tokens *auth.TokenIssuer,
	tokenStore auth.TokenStore,
	otp services.Notifier,
	alerter services.LeadAlerter,
) Services {
	userRepo := postgres.NewUserRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	appRepo := postgres.NewJobApplicationRepo(pool)
	leadRepo := postgres.NewLeadRepo(pool)
	txManager := postgres.NewTxManager(pool)

	// The allow-list is fixed for the life of the process.
	allowList := services.NewAdminAllowList(cfg.Auth.AdminEmails)

	return Services{
		Auth:           services.NewAuthService(userRepo, txManager, otp, tokens, tokenStore, allowList, cfg.Auth),
		OAuth:          services.NewOAuthService(userRepo, oauth.NewGoogleProvider(cfg.OAuth), tokens, allowList),
		User:           services.NewUserService(userRepo, jobRepo, appRepo, txManager),
		Job:            services.NewJobService(jobRepo, userRepo, appRepo, txManager),
		JobApplication: services.NewJobApplicationService(appRepo, jobRepo, userRepo, txManager),
		Lead:           services.NewLeadService(leadRepo, alerter),
		Dashboard:      services.NewDashboardService(userRepo, jobRepo, appRepo, leadRepo),
	}
}

// Close releases the connections opened by New.
func (a *Application) Close() {
	if err := a.RedisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	a.DBPool.Close()
}
