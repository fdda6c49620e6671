package llm

import (
	"jurimetrics/internal/config"
	"jurimetrics/internal/logging"
	"jurimetrics/ports"
)

// NewProviderChain builds the configured provider chain in trial order:
// primary first, then the secondary if one is configured. An empty chain
// means augmentation is disabled.
func NewProviderChain(cfg config.AIConfig, log *logging.Logger) []ports.AnalysisProvider {
	if !cfg.Enabled {
		return nil
	}

	providers := []ports.AnalysisProvider{}

	primary, err := NewClient(Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		log.Warn("primary analysis provider unavailable: %v", err)
	} else {
		providers = append(providers, NewAnalysisAdapter("primary", primary, cfg.Model, cfg.MaxTokens, log))
	}

	if cfg.SecondaryKey != "" {
		secondary, err := NewClient(Config{
			APIKey:      cfg.SecondaryKey,
			BaseURL:     cfg.SecondaryURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			log.Warn("secondary analysis provider unavailable: %v", err)
		} else {
			providers = append(providers, NewAnalysisAdapter("secondary", secondary, cfg.SecondaryModel, cfg.MaxTokens, log))
		}
	}

	return providers
}
