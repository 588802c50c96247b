// pkg/logging/sampling.go
package logging

import (
	"go.uber.org/zap/zapcore"
)

// newSampledCore wraps core with sampling on the backend route.
// Error and above always pass through.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled {
		return core
	}

	errorCore := &levelFilterCore{
		Core:     core,
		minLevel: zapcore.ErrorLevel,
	}

	belowErrorCore := &levelFilterCore{
		Core:     core,
		maxLevel: zapcore.WarnLevel,
	}

	sampledCore := zapcore.NewSamplerWithOptions(
		belowErrorCore,
		cfg.Tick.Duration(),
		cfg.Initial,
		cfg.Thereafter,
	)

	return zapcore.NewTee(errorCore, sampledCore)
}

// levelFilterCore filters logs by level range.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level // only log >= minLevel (0 = no min)
	maxLevel zapcore.Level // only log <= maxLevel (0 = no max)
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	if c.minLevel != 0 && lvl < c.minLevel {
		return false
	}
	if c.maxLevel != 0 && lvl > c.maxLevel {
		return false
	}
	return c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

// With creates a child core that preserves level filtering. Without
// this override zap's promoted Core.With would return the unwrapped
// inner core, and constant fields would strip the level bounds off
// both tee branches.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{
		Core:     c.Core.With(fields),
		minLevel: c.minLevel,
		maxLevel: c.maxLevel,
	}
}
