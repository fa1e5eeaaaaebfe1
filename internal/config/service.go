package config

import "time"

type ServiceConfig struct {
	ClientURL           string `yaml:"client_url"`
	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
	JWTSecret           string `yaml:"jwt_secret"`

	// Tampa ArcGIS feature service. Empty endpoint selects the default.
	TampaEndpoint string        `yaml:"tampa_endpoint"`
	TampaTimeout  time.Duration `yaml:"tampa_timeout"`

	// Redis cache for external search results. Empty addr disables caching.
	RedisAddr      string        `yaml:"redis_addr"`
	RedisPassword  string        `yaml:"redis_password"`
	RedisDB        int           `yaml:"redis_db"`
	SearchCacheTTL time.Duration `yaml:"search_cache_ttl"`
}
