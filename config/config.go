package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	APIBaseURL    = "api.base_url"
	APITimeout    = "api.timeout"
	APIClientPage = "api.client_page"
	APIRetries    = "api.retries"

	CacheDriver = "cache.driver"
	CacheTTL    = "cache.ttl"

	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"

	SessionPath   = "session.path"
	SessionSecret = "session.secret"

	VerificationSecret  = "verification.secret"
	VerificationBaseURL = "verification.base_url"

	SandboxPort   = "sandbox.port"
	SandboxSecret = "sandbox.secret"

	RelayURL        = "relay.url"
	RelayAccountSID = "relay.account_sid"
	RelayAuthToken  = "relay.auth_token"
	RelayFrom       = "relay.from"

	LogLevel  = "log.level"
	LogFormat = "log.format"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

func init() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("marketplace")
	viper.AutomaticEnv()

	viper.SetDefault(APIBaseURL, "http://localhost:9000/api")
	viper.SetDefault(APITimeout, "30s")
	viper.SetDefault(APIRetries, 3)

	viper.SetDefault(CacheDriver, CacheDriverMemory)
	viper.SetDefault(CacheTTL, "1m")

	viper.SetDefault(RedisAddress, "localhost:6379")
	viper.SetDefault(RedisDB, 0)

	viper.SetDefault(SessionPath, "~/.eventers/session")

	viper.SetDefault(VerificationBaseURL, "http://localhost:3000/verify")

	viper.SetDefault(SandboxPort, ":9000")
	viper.SetDefault(SandboxSecret, "sandbox-secret")
	viper.SetDefault(RelayFrom, "Eventers")

	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(LogFormat, "text")
}
