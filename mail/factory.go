package mail

import (
	"fmt"
	"sync"

	"github.com/indieinfra/vitrine/config"
)

// Factory builds a sender for the provided mail config.
type Factory func(*config.Mail) (Sender, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a sender factory for the given strategy name.
func Register(strategy string, factory Factory) {
	mu.Lock()
	registry[strategy] = factory
	mu.Unlock()
}

// Get retrieves a factory for the given strategy.
func Get(strategy string) (Factory, bool) {
	mu.RLock()
	f, ok := registry[strategy]
	mu.RUnlock()
	return f, ok
}

// Create builds a sender using the registered factory for the configured strategy.
func Create(cfg *config.Mail) (Sender, error) {
	if f, ok := Get(cfg.Strategy); ok {
		return f(cfg)
	}

	return nil, fmt.Errorf("unknown mail strategy %q", cfg.Strategy)
}

func init() {
	Register("noop", func(cfg *config.Mail) (Sender, error) {
		return &NoopSender{}, nil
	})
	Register("smtp", func(cfg *config.Mail) (Sender, error) {
		return NewSmtpSender(cfg.Smtp), nil
	})
}
