package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thundergore/damage-calc/internal/game"
)

// Tracer writes a per-stage calculation log to a file. A nil Tracer is valid
// and logs nothing, so callers only branch once at construction.
type Tracer struct {
	logger *zap.Logger
}

// New opens a console-encoded trace log at path.
func New(path string) (*Tracer, error) {
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Tracer{logger: logger}, nil
}

// Close flushes buffered entries.
func (t *Tracer) Close() {
	if t != nil && t.logger != nil {
		_ = t.logger.Sync()
	}
}

// LogBreakdown writes one entry per pipeline stage of a profile's result.
func (t *Tracer) LogBreakdown(name string, bd game.Breakdown) {
	if t == nil || t.logger == nil {
		return
	}

	t.logger.Info("Hit Phase",
		zap.String("profile", name),
		zap.Int("target", bd.HitTarget),
		zap.Float64("p_hit", bd.PHit),
		zap.Float64("p_nat6", bd.PHitNat6),
		zap.Float64("hits", bd.Hits),
		zap.Float64("extra_hits", bd.ExtraHits),
		zap.Float64("auto_wounds", bd.AutoWounds),
		zap.Float64("mortals", bd.MortalsOnHit))

	t.logger.Info("Wound Phase",
		zap.String("profile", name),
		zap.Int("target", bd.WoundTarget),
		zap.Float64("p_wound", bd.PWound),
		zap.Float64("p_nat6", bd.PWoundNat6),
		zap.Float64("needing_roll", bd.HitsNeedingWound),
		zap.Float64("wounds_from_rolls", bd.WoundsFromRolls),
		zap.Float64("mortals", bd.MortalsOnWound))

	t.logger.Info("Save Phase",
		zap.String("profile", name),
		zap.Int("target", bd.SaveTarget),
		zap.Float64("p_save", bd.PSave),
		zap.Float64("wounds_in", bd.WoundsBeforeSave),
		zap.Float64("unsaved", bd.UnsavedWounds))

	t.logger.Info("Damage Total",
		zap.String("profile", name),
		zap.Float64("p_ward", bd.PWard),
		zap.Float64("normal", bd.NormalDamage),
		zap.Float64("mortal", bd.MortalDamage),
		zap.Float64("total", bd.Total))
}
