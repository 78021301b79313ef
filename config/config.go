package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	CatalogFixture  = "fixture"
	CatalogPostgres = "postgres"

	SlotFile   = "file"
	SlotRedis  = "redis"
	SlotMemory = "memory"
)

// Server is the storefront-svc runtime configuration.
type Server struct {
	Addr             string
	CatalogBackend   string
	FixtureDir       string
	KafkaBroker      string
	ReviewTopic      string
	PublicBaseURL    string
	ReviewRatePerMin int
	AllowedOrigins   []string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ServerLog        *log.Logger
}

// Client is the shop-cli runtime configuration.
type Client struct {
	StorefrontURL  string
	CartSlot       string
	CartFile       string
	CartKey        string
	RequestTimeout time.Duration
	ClientLog      *log.Logger
}

// LoadEnv reads a .env file when one is present. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

func LoadServer() Server {
	return Server{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		CatalogBackend:   envOrDefault("CATALOG_BACKEND", CatalogFixture),
		FixtureDir:       strings.TrimSpace(os.Getenv("FIXTURE_DIR")),
		KafkaBroker:      strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		ReviewTopic:      envOrDefault("REVIEW_TOPIC", "reviews"),
		PublicBaseURL:    strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		ReviewRatePerMin: intOrDefault("REVIEW_RATE_PER_MIN", 5),
		AllowedOrigins:   parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ReadTimeout:      durationOrDefault("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:     durationOrDefault("HTTP_WRITE_TIMEOUT", 10*time.Second),
		ServerLog:        log.New(os.Stdout, "[storefront-svc] ", log.LstdFlags),
	}
}

func LoadClient() Client {
	cartFile := strings.TrimSpace(os.Getenv("CART_FILE"))
	if cartFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cartFile = filepath.Join(home, ".foodiegv", "foodiegv-cart.json")
	}

	return Client{
		StorefrontURL:  strings.TrimRight(envOrDefault("STOREFRONT_URL", "http://localhost:8080/api"), "/"),
		CartSlot:       envOrDefault("CART_SLOT", SlotFile),
		CartFile:       cartFile,
		CartKey:        envOrDefault("CART_KEY", "foodiegv-cart"),
		RequestTimeout: durationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		ClientLog:      log.New(os.Stderr, "[shop-cli] ", log.LstdFlags),
	}
}

// PostgresDSN builds a lib/pq keyword/value connection string from the DB_*
// variables. Values are quoted so passwords may contain spaces or quotes.
func PostgresDSN() string {
	settings := []struct{ key, value string }{
		{"host", envOrDefault("DB_HOST", "localhost")},
		{"port", envOrDefault("DB_PORT", "5432")},
		{"user", envOrDefault("DB_USER", "postgres")},
		{"password", os.Getenv("DB_PASSWORD")},
		{"dbname", envOrDefault("DB_NAME", "foodiegv")},
		{"sslmode", envOrDefault("DB_SSLMODE", "disable")},
	}

	parts := make([]string, 0, len(settings))
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", s.key, quoteDSN(s.value)))
	}
	return strings.Join(parts, " ")
}

func quoteDSN(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + v + "'"
}

// MustInitPostgres opens and pings the catalog database. The pool size comes
// from DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS.
func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database %s: %v", envOrDefault("DB_HOST", "localhost"), err)
	}

	db.SetMaxOpenConns(intOrDefault("DB_MAX_OPEN_CONNS", 10))
	db.SetMaxIdleConns(intOrDefault("DB_MAX_IDLE_CONNS", 2))
	db.SetConnMaxLifetime(durationOrDefault("DB_CONN_MAX_LIFETIME", time.Hour))
	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: envOrDefault("REDIS_HOST", "localhost") + ":" + envOrDefault("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// NewKafkaWriter returns nil when no broker is configured.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	if broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
