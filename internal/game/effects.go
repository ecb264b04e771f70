package game

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/thundergore/damage-calc/internal/engine"
)

// MortalMode picks whether a mortal-wound proc replaces or supplements the
// die's normal continuation.
type MortalMode string

const (
	MortalInstead    MortalMode = "instead"
	MortalInAddition MortalMode = "in_addition"
)

// Effects enumerates the optional rule modifiers of a weapon profile.
// Pure data; any combination is well-defined.
type Effects struct {
	// Re-rolls
	RerollHit   engine.RerollMode `json:"reroll_hit,omitempty" yaml:"reroll_hit,omitempty"`
	RerollWound engine.RerollMode `json:"reroll_wound,omitempty" yaml:"reroll_wound,omitempty"`

	// Exploding hits: each natural 6 to hit adds N extra hits
	ExplodeOnHit6 int `json:"explode_on_hit_6,omitempty" yaml:"explode_on_hit_6,omitempty"`

	// Natural 6 to hit converts straight to a wound (no wound roll)
	AutowoundOnHit6 bool `json:"autowound_on_hit_6,omitempty" yaml:"autowound_on_hit_6,omitempty"`

	// Mortals on a natural 6 to hit; empty value disables the trigger
	MortalOnHit6Value               string     `json:"mortal_on_hit_6_value,omitempty" yaml:"mortal_on_hit_6_value,omitempty"`
	MortalOnHit6Mode                MortalMode `json:"mortal_on_hit_6_mode,omitempty" yaml:"mortal_on_hit_6_mode,omitempty"`
	ContinueToWoundAfterMortalOnHit bool       `json:"continue_to_wound_after_mortal_on_hit,omitempty" yaml:"continue_to_wound_after_mortal_on_hit,omitempty"`

	// Mortals on a natural 6 to wound
	MortalOnWound6Value string     `json:"mortal_on_wound_6_value,omitempty" yaml:"mortal_on_wound_6_value,omitempty"`
	MortalOnWound6Mode  MortalMode `json:"mortal_on_wound_6_mode,omitempty" yaml:"mortal_on_wound_6_mode,omitempty"`

	// Whether hit-mortal consumption is drawn from the auto-wound pool
	// rather than the needs-wound pool when auto-wound captures the 6s.
	// No omitempty: false must survive a marshal round trip.
	ExplodeAppliesToAutowounds bool `json:"explode_applies_to_autowounds" yaml:"explode_applies_to_autowounds"`
}

// NewEffects returns the conventional defaults: no re-rolls, mortal procs in
// "instead" mode, explosions eligible for auto-wounds. Input surfaces start
// from this value so absent fields inherit the defaults.
func NewEffects() Effects {
	return Effects{
		RerollHit:                  engine.RerollNone,
		RerollWound:                engine.RerollNone,
		MortalOnHit6Mode:           MortalInstead,
		MortalOnWound6Mode:         MortalInstead,
		ExplodeAppliesToAutowounds: true,
	}
}

// UnmarshalJSON decodes over the defaults, so keys absent from the document
// keep their conventional values.
func (e *Effects) UnmarshalJSON(data []byte) error {
	tmp := NewEffects()
	type raw Effects
	if err := json.Unmarshal(data, (*raw)(&tmp)); err != nil {
		return err
	}
	*e = tmp
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (e *Effects) UnmarshalYAML(value *yaml.Node) error {
	tmp := NewEffects()
	type raw Effects
	if err := value.Decode((*raw)(&tmp)); err != nil {
		return err
	}
	*e = tmp
	return nil
}

// normalized fills the empty enum fields so a zero-value Effects evaluates
// like the defaults instead of erroring on the empty re-roll mode.
func (e Effects) normalized() Effects {
	if e.RerollHit == "" {
		e.RerollHit = engine.RerollNone
	}
	if e.RerollWound == "" {
		e.RerollWound = engine.RerollNone
	}
	if e.MortalOnHit6Mode == "" {
		e.MortalOnHit6Mode = MortalInstead
	}
	if e.MortalOnWound6Mode == "" {
		e.MortalOnWound6Mode = MortalInstead
	}
	return e
}
