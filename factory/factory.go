package factory

import (
	"context"
	"sync"

	"eventers-marketplace-client/cache"
	"eventers-marketplace-client/client"
	"eventers-marketplace-client/config"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/session"
	"eventers-marketplace-client/verification"

	"github.com/spf13/viper"
)

type Factory interface {
	Store(ctx context.Context) cache.Store
	Session(ctx context.Context) *session.Manager
	Client(ctx context.Context) *client.Client
	Verification(ctx context.Context) *verification.Encoder
	Close() error
}

type factory struct {
	storeOnce, sessionOnce, clientOnce, encoderOnce sync.Once

	store   cache.Store
	session *session.Manager
	client  *client.Client
	encoder *verification.Encoder
}

func NewFactory() Factory {
	return &factory{}
}

// Store returns the query cache selected by cache.driver. An unreachable
// redis falls back to the in-memory store.
func (f *factory) Store(ctx context.Context) cache.Store {
	f.storeOnce.Do(func() {
		if viper.GetString(config.CacheDriver) != config.CacheDriverRedis {
			f.store = cache.NewMemoryStore()
			return
		}
		rs := cache.NewRedisStore(cache.NewRedisClient(
			viper.GetString(config.RedisAddress),
			viper.GetString(config.RedisPassword),
			viper.GetInt(config.RedisDB),
		), "")
		if err := rs.Ping(ctx); err != nil {
			logger.Warnf(ctx, "store: %v, using in-memory cache", err)
			rs.Close()
			f.store = cache.NewMemoryStore()
			return
		}
		f.store = rs
	})
	return f.store
}

func (f *factory) Session(ctx context.Context) *session.Manager {
	f.sessionOnce.Do(func() {
		m, err := session.NewManager(viper.GetString(config.SessionPath), viper.GetString(config.SessionSecret))
		if err != nil {
			logger.Fatalf(ctx, "session: error creating session manager: %+v", err)
		}
		if err := m.Load(ctx); err != nil {
			logger.Warnf(ctx, "session: %v", err)
		}
		f.session = m
	})
	return f.session
}

func (f *factory) Client(ctx context.Context) *client.Client {
	f.clientOnce.Do(func() {
		cl, err := client.New(viper.GetString(config.APIBaseURL),
			client.WithTimeout(viper.GetDuration(config.APITimeout)),
			client.WithRetries(viper.GetInt(config.APIRetries)),
			client.WithCache(f.Store(ctx), viper.GetDuration(config.CacheTTL)),
			client.WithTokenSource(f.Session(ctx)),
			client.WithClientPage(viper.GetString(config.APIClientPage)),
		)
		if err != nil {
			logger.Fatalf(ctx, "client: error creating api client: %+v", err)
		}
		f.client = cl
	})
	return f.client
}

func (f *factory) Verification(ctx context.Context) *verification.Encoder {
	f.encoderOnce.Do(func() {
		enc, err := verification.NewEncoder(viper.GetString(config.VerificationSecret), viper.GetString(config.VerificationBaseURL))
		if err != nil {
			logger.Fatalf(ctx, "verification: error creating encoder: %+v", err)
		}
		f.encoder = enc
	})
	return f.encoder
}

// Close releases the cache store if one was built.
func (f *factory) Close() error {
	if f.store == nil {
		return nil
	}
	return f.store.Close()
}
