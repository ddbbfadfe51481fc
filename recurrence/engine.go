package recurrence

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/mo"
)

// Cache operation names
const (
	opParse     = "parse"
	opDescribe  = "describe"
	opNormalize = "normalize"
)

// Engine wraps the package functions with a result cache for callers that
// repeatedly parse and describe the same stored rules, such as a list view
// re-rendering every task. The package functions remain the source of truth;
// an Engine returns exactly what they return.
type Engine struct {
	cache  *RuleCache
	config EngineConfig
	logger *slog.Logger
}

// NewEngine creates a new rule engine with DefaultEngineConfig
func NewEngine(opts ...Option) *Engine {
	return NewEngineWithConfig(DefaultEngineConfig, opts...)
}

// Parse is the cached form of the package-level Parse. The returned pattern
// never shares memory with the cached copy.
func (e *Engine) Parse(rule string) mo.Option[Pattern] {
	if cached, ok := e.lookup(opParse, rule); ok {
		return clonePatternOption(cached.(mo.Option[Pattern]))
	}

	result := Parse(rule)
	if p, ok := result.Get(); ok {
		e.logger.Debug("parsed recurrence rule", "rule", rule, "normalized", ToRule(p))
	}
	e.store(opParse, rule, clonePatternOption(result))
	return result
}

// Describe parses rule and describes the result. A blank rule describes as
// the empty string.
func (e *Engine) Describe(rule string) string {
	if cached, ok := e.lookup(opDescribe, rule); ok {
		return cached.(string)
	}

	description := ""
	if p, ok := e.Parse(rule).Get(); ok {
		description = Describe(p)
	}
	e.store(opDescribe, rule, description)
	return description
}

// Normalize rewrites rule in the canonical dialect, so that shorthand input
// such as "every 2 weeks" is stored as "FREQ=WEEKLY;INTERVAL=2"
func (e *Engine) Normalize(rule string) mo.Option[string] {
	if cached, ok := e.lookup(opNormalize, rule); ok {
		return cached.(mo.Option[string])
	}

	result := mo.None[string]()
	if p, ok := e.Parse(rule).Get(); ok {
		result = mo.Some(ToRule(p))
	}
	e.store(opNormalize, rule, result)
	return result
}

// Check validates p before it is saved. With CheckRFC5545 enabled it also
// confirms that the serialized rule is accepted by a full RRULE parser.
func (e *Engine) Check(p Pattern) error {
	if err := p.Err(); err != nil {
		e.logger.Debug("rejected recurrence pattern", "rule", ToRule(p), "error", err)
		return err
	}
	if !e.config.CheckRFC5545 {
		return nil
	}

	rule := ToRule(p)
	if err := CheckRFC5545(rule); err != nil {
		e.logger.Warn("canonical rule rejected by RRULE parser", "rule", rule, "error", err)
		return fmt.Errorf("rule is not RFC 5545 compatible: %w", err)
	}
	return nil
}

// CheckRule parses rule and runs Check on the result
func (e *Engine) CheckRule(rule string) error {
	p, ok := e.Parse(rule).Get()
	if !ok {
		return ErrEmptyRule
	}
	return e.Check(p)
}

// Stats returns cache statistics; zero when caching is disabled
func (e *Engine) Stats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.Stats()
}

// Close releases the cache and its cleanup goroutine
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

func (e *Engine) lookup(operation, rule string) (any, bool) {
	if e.cache == nil {
		return nil, false
	}
	result, ok := e.cache.Get(operation, strings.TrimSpace(rule))
	if ok {
		e.logger.Debug("recurrence cache hit", "operation", operation, "rule", rule)
	}
	return result, ok
}

func (e *Engine) store(operation, rule string, result any) {
	if e.cache == nil {
		return
	}
	e.cache.Set(operation, strings.TrimSpace(rule), result)
}

func clonePatternOption(o mo.Option[Pattern]) mo.Option[Pattern] {
	if p, ok := o.Get(); ok {
		return mo.Some(p.Clone())
	}
	return o
}
