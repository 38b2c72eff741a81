package factory

import (
	"fmt"

	"github.com/mikey/mailsift/internal/adapters/api"
	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/core"
	"github.com/mikey/mailsift/internal/version"
	"go.uber.org/zap"
)

// ClientFactory creates analysis service clients bound to a resolved API key
type ClientFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClientFactory creates a new client factory
func NewClientFactory(cfg *config.Config, logger *zap.Logger) *ClientFactory {
	return &ClientFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates an analysis service client for one invocation
func (f *ClientFactory) CreateClient(apiKey string) (core.AnalysisClient, error) {
	apiCfg, err := f.cfg.API()
	if err != nil {
		return nil, fmt.Errorf("invalid API configuration: %w", err)
	}

	return api.NewClient(
		apiCfg.BaseURL,
		apiCfg.Version,
		apiKey,
		version.Version,
		apiCfg.Timeout,
		f.logger,
	), nil
}
