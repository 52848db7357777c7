package parser

import (
	"fmt"

	"go.uber.org/zap"

	"invoicescan/internal/config"
	"invoicescan/internal/port"
)

// ProviderFactory creates a live InvoiceExtractor from the parser config.
type ProviderFactory func(cfg *config.ParserConfig, log *zap.SugaredLogger) (port.InvoiceExtractor, error)

// registry of live provider factories, populated via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor picks the extractor once at startup: the simulated one when no
// credential is configured, otherwise the registered provider.
func NewExtractor(cfg *config.ParserConfig, log *zap.SugaredLogger) (port.InvoiceExtractor, error) {
	if !cfg.Configured() {
		log.Warnw("parser.NewExtractor: API key is not set or is a placeholder, upstream calls will be simulated")
		return NewSimulatedParser(log), nil
	}
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	log.Infow("parser.NewExtractor: API key is configured", "provider", cfg.Provider, "model", cfg.DefaultModel)
	return factory(cfg, log)
}
