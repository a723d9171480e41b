package main

// @title           Bibliosight Core API
// @version         1.0
// @description     Repository ingest client for the Web of Knowledge "Web Services Lite" API. Bibliosight Core runs lite searches against the vendor SOAP service and publishes the results as a namespaced XML document.

// @contact.name   Bibliosight
// @contact.url    https://github.com/leedsmet/bibliosight-core/issues

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/leedsmet/bibliosight-core/internal/adapters/driven/postgres"
	redisadapter "github.com/leedsmet/bibliosight-core/internal/adapters/driven/redis"
	"github.com/leedsmet/bibliosight-core/internal/adapters/driven/wok"
	"github.com/leedsmet/bibliosight-core/internal/adapters/driving/http"
	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driving"
	"github.com/leedsmet/bibliosight-core/internal/core/services"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	log.Printf("bibliosight-core %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ===== Initialize PostgreSQL (optional) =====
	var db *postgres.DB
	var historyStore driven.HistoryStore
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.DefaultConfig(databaseURL)
		dbConfig.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", dbConfig.MaxOpenConns)
		dbConfig.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", dbConfig.MaxIdleConns)

		var err error
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		historyStore = postgres.NewHistoryStore(db)
		log.Println("PostgreSQL connected and schema initialized")
	} else {
		log.Println("DATABASE_URL not set, execution history disabled")
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	var resultCache driven.ResultCache
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		ttl := time.Duration(getEnvInt("RESULT_CACHE_TTL_SEC", 3600)) * time.Second
		resultCache = redisadapter.NewResultCache(redisClient, ttl)
		log.Println("Redis connected, result cache enabled")
	} else {
		log.Println("REDIS_URL not set, result cache disabled")
	}

	// ===== Vendor gateway factory =====
	wokConfig := wok.DefaultConfig()
	wokConfig.AuthURL = getEnv("WOK_AUTH_URL", wokConfig.AuthURL)
	wokConfig.SearchURL = getEnv("WOK_SEARCH_URL", wokConfig.SearchURL)
	wokConfig.Timeout = time.Duration(getEnvInt("WOK_TIMEOUT_SEC", 30)) * time.Second
	gateways := wok.NewFactory(wokConfig)

	// ===== Query model =====
	queryService := services.NewQueryService(gateways, resultCache, historyStore, slog.Default())
	seedConfiguration(queryService)

	// ===== HTTP server =====
	cfg := http.Config{
		Host:    getEnv("HOST", "0.0.0.0"),
		Port:    port,
		Version: version,
	}

	var dbPinger, redisPinger http.Pinger
	if db != nil {
		dbPinger = db
	}
	if redisClient != nil {
		redisPinger = redisPing{redisClient}
	}

	server := http.NewServer(cfg, queryService, historyStore, dbPinger, redisPinger)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// seedConfiguration applies the startup query configuration from the
// environment. Unset values fall back to a working lite search profile.
func seedConfiguration(qs driving.QueryService) {
	qs.SetDatabaseID(getEnv("WOK_DATABASE_ID", "WOS"))
	qs.SetUserQuery(getEnv("WOK_USER_QUERY", ""))
	qs.SetDateMode(domain.DateMode(getEnv("WOK_DATE_MODE", string(domain.DateModeRecent))))
	qs.SetSymbolicTimeSpan(domain.SymbolicTimeSpan(getEnv("WOK_SYMBOLIC_TIMESPAN", string(domain.SymbolicTimeSpanOneWeek))))
	qs.SetEditions([]domain.Edition{
		{Collection: "WOS", Edition: "SCI"},
		{Collection: "WOS", Edition: "SSCI"},
		{Collection: "WOS", Edition: "AHCI"},
	})
	qs.SetFirstRecord(getEnvInt("WOK_FIRST_RECORD", 1))
	qs.SetMaxResultCount(getEnvInt("WOK_MAX_RESULT_COUNT", 100))
	qs.SetSortFields([]domain.SortField{})

	if host := getEnv("PROXY_HOST", ""); host != "" {
		qs.SetProxyHost(host)
		qs.SetProxyPort(getEnvInt("PROXY_PORT", 8080))
	}
}

// redisPing adapts the redis client to the server's health check interface
type redisPing struct {
	client *redis.Client
}

func (p redisPing) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
