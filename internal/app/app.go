package app

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/external/hostedauth"
	"github.com/riskibarqy/creator-booking/external/hostedstorage"
	"github.com/riskibarqy/creator-booking/internal/config"
	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/riskibarqy/creator-booking/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/creator-booking/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/creator-booking/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/creator-booking/internal/infrastructure/storage/memstore"
	"github.com/riskibarqy/creator-booking/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/creator-booking/internal/platform/cache"
	"github.com/riskibarqy/creator-booking/internal/platform/fieldcrypt"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/platform/pgurl"
	"github.com/riskibarqy/creator-booking/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
)

type repositories struct {
	profiles        onboarding.Repository
	specializations specialization.Repository
	portfolio       portfolio.Repository
	pricing         pricing.Repository
	availability    availability.Repository
	banking         banking.Repository
}

// NewHTTPServer wires the service graph. The returned closer releases the
// database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeDB, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	storage, err := newStorage(cfg, logger)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}

	cipher, err := newFieldCipher(cfg, logger)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	onboardingSvc := usecase.NewOnboardingService(repos.profiles, ids, logger)
	specializationSvc := usecase.NewSpecializationService(repos.profiles, repos.specializations, logger)
	portfolioSvc := usecase.NewPortfolioService(repos.profiles, repos.portfolio, storage, ids, usecase.PortfolioConfig{
		MaxFileBytes:  cfg.PortfolioMaxFileBytes,
		UploadWorkers: cfg.PortfolioUploadWorkers,
	}, logger)
	pricingSvc := usecase.NewPricingService(repos.profiles, repos.pricing, ids, logger)
	availabilitySvc := usecase.NewAvailabilityService(repos.profiles, repos.availability, logger)
	bankingSvc := usecase.NewBankingService(repos.profiles, repos.banking, cipher, logger)

	snapshotRepos := usecase.SnapshotRepositories{
		Profiles:        repos.profiles,
		Specializations: repos.specializations,
		Portfolio:       repos.portfolio,
		Pricing:         repos.pricing,
		Availability:    repos.availability,
	}
	directorySvc := usecase.NewDirectoryService(snapshotRepos, logger)
	adminSvc := usecase.NewAdminService(
		usecase.AdminCredentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash},
		hostedauth.NewIssuer(cfg.AuthJWTSecret, cfg.AdminTokenTTL),
		snapshotRepos,
		bankingSvc,
		logger,
	)

	handler := httpapi.NewHandler(
		onboardingSvc,
		specializationSvc,
		portfolioSvc,
		pricingSvc,
		availabilitySvc,
		bankingSvc,
		directorySvc,
		adminSvc,
		cfg.PortfolioMaxFileBytes,
		logger,
	)
	router := httpapi.NewRouter(handler, newVerifier(cfg, logger), logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, closeDB, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeDB = func() error { return nil }
	)

	switch cfg.DBDriver {
	case config.DBDriverMemory:
		logger.Warn("using in-memory repositories", "reason", "DB_DRIVER=memory")
		repos = repositories{
			profiles:        memory.NewCreatorProfileRepository(),
			specializations: memory.NewSpecializationRepository(),
			portfolio:       memory.NewPortfolioRepository(),
			pricing:         memory.NewPricingRepository(),
			availability:    memory.NewAvailabilityRepository(),
			banking:         memory.NewBankingRepository(),
		}
	default:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		closeDB = db.Close
		repos = repositories{
			profiles:        postgres.NewCreatorProfileRepository(db),
			specializations: postgres.NewSpecializationRepository(db),
			portfolio:       postgres.NewPortfolioRepository(db),
			pricing:         postgres.NewPricingRepository(db),
			availability:    postgres.NewAvailabilityRepository(db),
			banking:         postgres.NewBankingRepository(db),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.specializations = cache.NewSpecializationRepository(repos.specializations, store)
		repos.portfolio = cache.NewPortfolioRepository(repos.portfolio, store)
		repos.pricing = cache.NewPricingRepository(repos.pricing, store)
		repos.availability = cache.NewAvailabilityRepository(repos.availability, store)
	}
	return repos, closeDB, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := pgurl.Normalize(cfg.DBURL, pgurl.Options{
		ApplicationName: cfg.ServiceName,
		ConnectTimeout:  cfg.DBConnectTimeout,
	})
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(pgurl.DBName(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func newStorage(cfg config.Config, logger *logging.Logger) (portfolio.Storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory object storage", "reason", "STORAGE_DRIVER=memory")
		return memstore.New("memory://" + cfg.StorageBucket), nil
	}

	client, err := hostedstorage.NewClient(hostedstorage.Config{
		HTTPClient:     &http.Client{Timeout: cfg.StorageTimeout},
		BaseURL:        cfg.StorageBaseURL,
		Bucket:         cfg.StorageBucket,
		ServiceKey:     cfg.StorageServiceKey,
		Timeout:        cfg.StorageTimeout,
		CircuitBreaker: cfg.StorageCircuit,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build storage client: %w", err)
	}
	return client, nil
}

func newVerifier(cfg config.Config, logger *logging.Logger) *hostedauth.Verifier {
	var local *hostedauth.JWTVerifier
	if cfg.AuthJWTSecret != "" {
		local = hostedauth.NewJWTVerifier(cfg.AuthJWTSecret, logger)
	}

	var remote *hostedauth.Client
	if cfg.AuthBaseURL != "" {
		remote = hostedauth.NewClient(hostedauth.ClientConfig{
			HTTPClient:      &http.Client{Timeout: cfg.AuthTimeout},
			BaseURL:         cfg.AuthBaseURL,
			APIKey:          cfg.AuthAPIKey,
			Timeout:         cfg.AuthTimeout,
			CacheTTL:        cfg.AuthCacheTTL,
			CacheMaxEntries: cfg.AuthCacheMaxEntries,
			CircuitBreaker:  cfg.AuthCircuit,
			Logger:          logger,
		})
	}
	return hostedauth.NewVerifier(local, remote)
}

// newFieldCipher falls back to a process-local key in dev. Banking rows
// written with it cannot be read after a restart.
func newFieldCipher(cfg config.Config, logger *logging.Logger) (*fieldcrypt.Cipher, error) {
	if cfg.BankingEncryptionKey == "" {
		logger.Warn("BANKING_ENCRYPTION_KEY not set, using an ephemeral key", "env", cfg.AppEnv)
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate ephemeral banking key: %w", err)
		}
		return fieldcrypt.New(key)
	}

	key, err := fieldcrypt.ParseKey(cfg.BankingEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("parse BANKING_ENCRYPTION_KEY: %w", err)
	}
	return fieldcrypt.New(key)
}
