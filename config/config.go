package config

import (
	"konigfood_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "KonigFood_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				FrontendURL:    getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
				CookieDomain:   getEnvAsString("COOKIE_DOMAIN", ""),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Cache: &structs.CacheConfig{
				Address:  getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username: getEnvAsString("REDIS_USERNAME", ""),
				Password: getEnvAsString("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),

				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns: getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:  getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:  getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),

				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),

				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 2*time.Second),
			},
			Catalog: &structs.CatalogConfig{
				Repo:           getEnvAsString("GITHUB_REPO", ""),
				FilePath:       getEnvAsString("GITHUB_PRODUCTS_PATH", "configs/products.json"),
				Branch:         getEnvAsString("GITHUB_BRANCH", "main"),
				Token:          getEnvAsString("GITHUB_PAT", ""),
				APIBaseURL:     getEnvAsString("GITHUB_API_BASE_URL", "https://api.github.com"),
				CommitterName:  getEnvAsString("GITHUB_COMMITTER_NAME", "Admin Bot"),
				CommitterEmail: getEnvAsString("GITHUB_COMMITTER_EMAIL", "admin@bot.local"),

				CacheTTL:        getEnvAsTimeDuration("CATALOG_CACHE_TTL", 5*time.Minute),
				RefreshInterval: getEnvAsTimeDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute),

				SafePayloadBytes: getEnvAsInt64("CATALOG_SAFE_PAYLOAD_BYTES", 4404019), // 4.2 MiB
				MaxPayloadBytes:  getEnvAsInt64("CATALOG_MAX_PAYLOAD_BYTES", 4718592),  // 4.5 MiB platform limit
			},
			Cart: &structs.CartConfig{
				TTL:               getEnvAsTimeDuration("CART_TTL", 24*time.Hour),
				SessionCookieName: getEnvAsString("CART_SESSION_COOKIE", "cart_session"),
				SessionTTL:        getEnvAsTimeDuration("CART_SESSION_TTL", 30*24*time.Hour),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 12*time.Hour),
				AdminEmail:        getEnvAsString("ADMIN_EMAIL", ""),
				AdminPasswordHash: getEnvAsString("ADMIN_PASSWORD_HASH", ""),
				BlacklistCacheTTL: getEnvAsTimeDuration("AUTH_BLACKLIST_TTL", 12*time.Hour),
			},
			Email: &structs.EmailConfig{
				ApiKey:        getEnvAsString("EMAIL_API_KEY", ""),
				From:          getEnvAsString("EMAIL_FROM", "König Food <orders@konigfood.local>"),
				ShopRecipient: getEnvAsString("EMAIL_SHOP_RECIPIENT", ""),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),

				AuthLimit:  getEnvAsInt("RATE_LIMIT_AUTH", 10),
				AuthWindow: getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),

				AdminLimit:  getEnvAsInt("RATE_LIMIT_ADMIN", 60),
				AdminWindow: getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),

				ExpensiveLimit:  getEnvAsInt("RATE_LIMIT_EXPENSIVE", 120),
				ExpensiveWindow: getEnvAsTimeDuration("RATE_LIMIT_EXPENSIVE_WINDOW", time.Minute),

				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 300),
				GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
