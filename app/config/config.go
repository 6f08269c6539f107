package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB
	AI AIConfig
}

// AIConfig holds the Anthropic API settings used for plan generation and
// quality review. An empty APIKey switches the AI service to its offline
// fallback.
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

var AppConfig *Config

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// InitDB opens the PostgreSQL connection pool and loads the AI settings.
func InitDB() {
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := envOr("DB_NAME", "study_planner")
	sslmode := envOr("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME to point at a running PostgreSQL instance.")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB: db,
		AI: AIConfig{
			APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
			Model:   envOr("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
			BaseURL: envOr("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		},
	}
	log.Println("Database connected successfully")
	if AppConfig.AI.APIKey == "" {
		log.Println("ANTHROPIC_API_KEY not set; AI plan generation will use the rule-based fallback")
	}
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func GetAI() AIConfig {
	return AppConfig.AI
}
