package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Cache     *CacheConfig
	Catalog   *CatalogConfig
	Cart      *CartConfig
	Auth      *AuthConfig
	Email     *EmailConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // KonigFood
	Environment    string        // development, production
	Port           string        // :8082
	FrontendURL    string        // public storefront origin
	CookieDomain   string        // cross-subdomain cookie domain in production
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type CacheConfig struct {
	Address  string
	Username string
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

// CatalogConfig describes the remote catalog file and its caching policy.
// The catalog is a single JSON array committed to a GitHub repository; every
// write replaces the whole file (last-writer-wins, no partial updates).
type CatalogConfig struct {
	Repo           string // owner/name
	FilePath       string // configs/products.json
	Branch         string
	Token          string // PAT with contents write access
	APIBaseURL     string // overridable for tests
	CommitterName  string
	CommitterEmail string

	CacheTTL        time.Duration // how long a fetched snapshot stays fresh
	RefreshInterval time.Duration // background refresh cadence

	// Request body guard: payloads above Safe are rejected locally before any
	// network call; Max is the platform hard limit reported to the admin.
	SafePayloadBytes int64
	MaxPayloadBytes  int64
}

type CartConfig struct {
	TTL               time.Duration // cart self-clears this long after the last mutation
	SessionCookieName string
	SessionTTL        time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	AdminEmail        string
	AdminPasswordHash string // argon2id encoded
	BlacklistCacheTTL time.Duration
}

type EmailConfig struct {
	ApiKey        string
	From          string
	ShopRecipient string // a copy of every order/contact email goes here
}

type RateLimitConfig struct {
	Enabled bool

	AuthLimit  int
	AuthWindow time.Duration

	AdminLimit  int
	AdminWindow time.Duration

	ExpensiveLimit  int
	ExpensiveWindow time.Duration

	GeneralLimit  int
	GeneralWindow time.Duration
}
