package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Image store (Cloudinary-style signed uploads)
	ImageStoreCloudName string
	ImageStoreAPIKey    string
	ImageStoreAPISecret string
	ImageStoreFolder    string

	// Statement defaults
	ManagementFeePercent decimal.Decimal

	// Balance snapshot cache
	BalanceCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "propfolio-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("IMAGE_STORE_CLOUD_NAME", "")
	viper.SetDefault("IMAGE_STORE_API_KEY", "")
	viper.SetDefault("IMAGE_STORE_API_SECRET", "")
	viper.SetDefault("IMAGE_STORE_FOLDER", "propfolio")
	viper.SetDefault("MANAGEMENT_FEE_PERCENT", "0.10")
	viper.SetDefault("BALANCE_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION (%q). Defaulting to 1h.\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	refreshExpiry, err := time.ParseDuration(viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid REFRESH_TOKEN_EXPIRY_DURATION (%q). Defaulting to 168h.\n", viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION"))
		refreshExpiry = 168 * time.Hour
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.ImageStoreCloudName = viper.GetString("IMAGE_STORE_CLOUD_NAME")
	cfg.ImageStoreAPIKey = viper.GetString("IMAGE_STORE_API_KEY")
	cfg.ImageStoreAPISecret = viper.GetString("IMAGE_STORE_API_SECRET")
	cfg.ImageStoreFolder = viper.GetString("IMAGE_STORE_FOLDER")

	feePercent, err := decimal.NewFromString(viper.GetString("MANAGEMENT_FEE_PERCENT"))
	if err != nil || feePercent.IsNegative() || feePercent.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("Warning: Invalid MANAGEMENT_FEE_PERCENT (%q). Defaulting to 0.10.\n", viper.GetString("MANAGEMENT_FEE_PERCENT"))
		feePercent = decimal.NewFromFloat(0.10)
	}
	cfg.ManagementFeePercent = feePercent

	cacheTTL, err := time.ParseDuration(viper.GetString("BALANCE_CACHE_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}
	cfg.BalanceCacheTTL = cacheTTL

	return cfg, nil
}
