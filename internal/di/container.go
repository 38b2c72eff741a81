package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/core"
	"github.com/mikey/mailsift/internal/factory"
	"github.com/mikey/mailsift/internal/logging"
	"github.com/mikey/mailsift/internal/pipeline"
)

// Options carries the persistent CLI flags that shape the container
type Options struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool
}

// BuildContainer creates and configures the dependency injection container
// for one CLI process
func BuildContainer(opts Options) (*dig.Container, error) {
	container := dig.New()

	// Register options
	if err := container.Provide(func() Options { return opts }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(opts Options) (*config.Config, error) {
		if opts.ConfigFile != "" {
			return config.NewFromFile(opts.ConfigFile)
		}
		return config.New()
	}); err != nil {
		return nil, err
	}

	// Register logger. The --verbose and --json-log flags override the
	// logging section of the configuration file.
	if err := container.Provide(func(opts Options, cfg *config.Config) (*zap.Logger, error) {
		if opts.Verbose || opts.JSONLog {
			return logging.InitConsoleLogger(opts.Verbose, opts.JSONLog)
		}
		return logging.InitLogger(cfg)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClientFactory); err != nil {
		return nil, err
	}

	// Register result cache, nil when disabled
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		if !f.IsCacheEnabled() {
			return nil, nil
		}
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register the per-invocation service factory. The API key is only
	// known once the credentials stage has run, so the service is built
	// per key rather than per process.
	if err := container.Provide(func(
		clients *factory.ClientFactory,
		caches *factory.CacheFactory,
		cache core.CacheRepository,
		logger *zap.Logger,
	) pipeline.ServiceFactory {
		return func(apiKey string) (*core.MessageService, error) {
			client, err := clients.CreateClient(apiKey)
			if err != nil {
				return nil, err
			}
			ttl, err := caches.GetCacheTTL()
			if err != nil {
				return nil, err
			}
			return core.NewMessageService(client, cache, logger, caches.IsCacheEnabled(), ttl), nil
		}
	}); err != nil {
		return nil, err
	}

	return container, nil
}
