package config

import (
	"testing"
	"time"
)

// setBaseEnv sets the minimum environment a dev instance needs.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_BASE_URL", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("BANKING_ENCRYPTION_KEY", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("BANKING_ENCRYPTION_KEY", "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_BankingKeyRequiredOutsideDev(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", EnvStage)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BANKING_ENCRYPTION_KEY is missing in stage")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "creator-booking-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "creator-booking-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})
}

func TestLoad_DBSettings(t *testing.T) {
	setBaseEnv(t)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("DB_CONNECT_TIMEOUT", "")
		t.Setenv("DB_MAX_OPEN_CONNS", "")
		t.Setenv("DB_MAX_IDLE_CONNS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBDriver != DBDriverPostgres {
			t.Fatalf("expected postgres driver by default, got %q", cfg.DBDriver)
		}
		if cfg.DBConnectTimeout != 5*time.Second || cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 {
			t.Fatalf("unexpected pool defaults: timeout=%s open=%d idle=%d", cfg.DBConnectTimeout, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		}
	})

	t.Run("idle above open", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "4")
		t.Setenv("DB_MAX_IDLE_CONNS", "8")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when idle conns exceed open conns")
		}
	})

	t.Run("invalid driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DRIVER")
		}
	})

	t.Run("invalid connect timeout", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("DB_CONNECT_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_CONNECT_TIMEOUT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_StorageConfig(t *testing.T) {
	setBaseEnv(t)

	t.Run("hosted requires base url and key", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StorageDriverHosted)
		t.Setenv("STORAGE_BASE_URL", "")
		t.Setenv("STORAGE_SERVICE_KEY", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for hosted storage without base url")
		}
	})

	t.Run("hosted with values", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StorageDriverHosted)
		t.Setenv("STORAGE_BASE_URL", "https://project.example.co")
		t.Setenv("STORAGE_SERVICE_KEY", "service-key")
		t.Setenv("STORAGE_BUCKET", "")
		t.Setenv("STORAGE_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageBucket != "portfolio" {
			t.Fatalf("unexpected default bucket: %q", cfg.StorageBucket)
		}
		if cfg.StorageCircuit.FailureThreshold != 3 || !cfg.StorageCircuit.Enabled {
			t.Fatalf("unexpected storage circuit config: %+v", cfg.StorageCircuit)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "s3")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_PortfolioLimits(t *testing.T) {
	setBaseEnv(t)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORTFOLIO_MAX_FILE_BYTES", "")
		t.Setenv("PORTFOLIO_UPLOAD_WORKERS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PortfolioMaxFileBytes != 50<<20 || cfg.PortfolioUploadWorkers != 4 {
			t.Fatalf("unexpected portfolio defaults: bytes=%d workers=%d", cfg.PortfolioMaxFileBytes, cfg.PortfolioUploadWorkers)
		}
	})

	t.Run("zero workers rejected", func(t *testing.T) {
		t.Setenv("PORTFOLIO_UPLOAD_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for PORTFOLIO_UPLOAD_WORKERS=0")
		}
	})
}

func TestLoad_AuthAndAdmin(t *testing.T) {
	t.Run("requires a verification source", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("AUTH_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without AUTH_JWT_SECRET and AUTH_BASE_URL")
		}
	})

	t.Run("admin credentials must be paired", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ADMIN_USERNAME", "ops")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ADMIN_USERNAME without ADMIN_PASSWORD_HASH")
		}
	})

	t.Run("admin needs a signing secret", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("AUTH_BASE_URL", "https://project.example.co")
		t.Setenv("ADMIN_USERNAME", "ops")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for admin login without AUTH_JWT_SECRET")
		}
	})

	t.Run("parses auth knobs", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("AUTH_TIMEOUT", "2s")
		t.Setenv("AUTH_CACHE_TTL", "45s")
		t.Setenv("AUTH_CIRCUIT_ENABLED", "false")
		t.Setenv("ADMIN_TOKEN_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AuthTimeout != 2*time.Second || cfg.AuthCacheTTL != 45*time.Second {
			t.Fatalf("unexpected auth timings: timeout=%s ttl=%s", cfg.AuthTimeout, cfg.AuthCacheTTL)
		}
		if cfg.AuthCircuit.Enabled {
			t.Fatalf("expected auth circuit disabled")
		}
		if cfg.AdminTokenTTL != time.Hour {
			t.Fatalf("unexpected admin token ttl: %s", cfg.AdminTokenTTL)
		}
	})

	t.Run("invalid circuit failure count", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("AUTH_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for AUTH_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}
