package recurrence

import (
	"io"
	"log/slog"
	"time"
)

// EngineConfig holds configuration options for the rule engine
type EngineConfig struct {
	// Cache configuration
	CacheEnabled bool
	CacheConfig  CacheConfig

	// CheckRFC5545 makes Engine.Check also run serialized rules through a
	// full RRULE parser
	CheckRFC5545 bool
}

// DefaultEngineConfig provides sensible defaults for production use
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,
	CheckRFC5545: true,
}

// HighPerformanceConfig is tuned for renderers describing many stored rules
var HighPerformanceConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      5000,
		CleanupInterval: 10 * time.Minute,
	},
	CheckRFC5545: false,
}

// LowMemoryConfig is optimized for memory-constrained environments
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},
	CheckRFC5545: true,
}

// DisabledCacheConfig turns off caching entirely
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,
	CheckRFC5545: true,
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger the engine reports cache activity and rejected
// patterns to. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngineWithConfig creates a new rule engine with custom configuration
func NewEngineWithConfig(config EngineConfig, opts ...Option) *Engine {
	var cache *RuleCache
	if config.CacheEnabled {
		cache = NewRuleCache(config.CacheConfig)
	}

	e := &Engine{
		cache:  cache,
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
