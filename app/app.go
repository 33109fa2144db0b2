package app

import (
	"Gin_postgres_redis_booking_tool/db"
	"Gin_postgres_redis_booking_tool/localdb"
	"Gin_postgres_redis_booking_tool/session"
	"Gin_postgres_redis_booking_tool/store"
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

// Aliases so handlers stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates every dependency the controllers need.
type App struct {
	Router *gin.Engine
	Store  store.Store
	RDB    *redis.Client
	WA     *webauthn.WebAuthn
	Config Config

	appSess *session.AppSessionStore
}

// Config comes from environment variables.
type Config struct {
	StorageBackend    string // "postgres" (default) or "local"
	LocalStorePath    string
	RedisAddr         string
	RedisPwd          string
	WebOrigin         string
	RPID              string
	RPOrigins         []string
	SessionTTL        time.Duration
	AppSessionTTL     time.Duration
	BootstrapPassword string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	// --- Storage: Postgres by default, single-file JSON store for small
	// single-process deployments. Same contract either way.
	var st store.Store
	switch cfg.StorageBackend {
	case "local":
		ls, err := localdb.Open(cfg.LocalStorePath)
		if err != nil {
			log.Fatalf("open local store: %v", err)
		}
		st = ls
		log.Printf("using local store at %s", cfg.LocalStorePath)
	default:
		st = db.NewRepo(db.ConnectDB())
	}

	// --- Redis (sessions + WebAuthn ceremony cache) ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- WebAuthn RP ---
	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: "Equipment booking passkeys",
		RPID:          cfg.RPID,
		RPOrigins:     cfg.RPOrigins,
	})
	if err != nil {
		log.Fatalf("webauthn: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, Store: st, RDB: rdb, WA: wa, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.AppSessionTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttlSec := get("SESSION_TTL_SECONDS", "600")
	var ttl time.Duration = 10 * time.Minute
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	originsCSV := get("RP_ORIGINS", "http://localhost:5173")
	var origins []string
	for _, o := range strings.Split(originsCSV, ",") {
		if s := strings.TrimSpace(o); s != "" {
			origins = append(origins, s)
		}
	}
	return Config{
		StorageBackend:    get("STORAGE_BACKEND", "postgres"),
		LocalStorePath:    get("LOCAL_STORE_PATH", "booking_data.json"),
		RedisAddr:         get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:          os.Getenv("REDIS_PASSWORD"),
		WebOrigin:         get("WEB_ORIGIN", "http://localhost:5173"),
		RPID:              get("RP_ID", "localhost"),
		RPOrigins:         origins,
		SessionTTL:        ttl,
		AppSessionTTL:     24 * time.Hour,
		BootstrapPassword: os.Getenv("BOOTSTRAP_PASSWORD"),
	}
}
