package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thundergore/damage-calc/internal/engine"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
)

// Roster is a named list of weapon profiles, optionally sharing one defender
// block that is applied to every profile on load.
type Roster struct {
	Name     string
	Defender *game.Defender
	Profiles []game.WeaponProfile
}

var allowedRosterKeys = map[string]struct{}{
	"name":     {},
	"defender": {},
	"profiles": {},
}

var allowedDefenderKeys = map[string]struct{}{
	"save":     {},
	"save_mod": {},
	"ward":     {},
}

var allowedProfileKeys = map[string]struct{}{
	"name":              {},
	"attacks":           {},
	"hit":               {},
	"wound":             {},
	"rend":              {},
	"damage":            {},
	"hit_mod":           {},
	"wound_mod":         {},
	"target_save":       {},
	"defender_save_mod": {},
	"target_ward":       {},
	"effects":           {},
}

var allowedEffectKeys = map[string]struct{}{
	"reroll_hit":                            {},
	"reroll_wound":                          {},
	"explode_on_hit_6":                      {},
	"autowound_on_hit_6":                    {},
	"mortal_on_hit_6_value":                 {},
	"mortal_on_hit_6_mode":                  {},
	"continue_to_wound_after_mortal_on_hit": {},
	"mortal_on_wound_6_value":               {},
	"mortal_on_wound_6_mode":                {},
	"explode_applies_to_autowounds":         {},
}

func checkKeys(value *yaml.Node, allowed map[string]struct{}, what string) error {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if _, ok := allowed[k.Value]; !ok {
			return calcerr.InvalidConfigf("unsupported %s key %q", what, k.Value)
		}
	}
	return nil
}

func childNode(value *yaml.Node, key string) *yaml.Node {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return value.Content[i+1]
		}
	}
	return nil
}

// profileSpec decodes a profile mapping over pre-filled effect defaults, so
// keys absent from the document keep their conventional values.
type profileSpec game.WeaponProfile

func (p *profileSpec) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, allowedProfileKeys, "profile"); err != nil {
		return err
	}
	if err := checkKeys(childNode(value, "effects"), allowedEffectKeys, "effect"); err != nil {
		return err
	}

	tmp := game.WeaponProfile{Effects: game.NewEffects()}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*p = profileSpec(tmp)
	return nil
}

func (r *Roster) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, allowedRosterKeys, "roster"); err != nil {
		return err
	}
	if err := checkKeys(childNode(value, "defender"), allowedDefenderKeys, "defender"); err != nil {
		return err
	}

	var tmp struct {
		Name     string         `yaml:"name"`
		Defender *game.Defender `yaml:"defender"`
		Profiles []profileSpec  `yaml:"profiles"`
	}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	r.Name = tmp.Name
	r.Defender = tmp.Defender
	r.Profiles = make([]game.WeaponProfile, len(tmp.Profiles))
	for i, p := range tmp.Profiles {
		r.Profiles[i] = game.WeaponProfile(p)
	}
	return nil
}

// Load reads, decodes and validates a roster file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInvalidConfig, fmt.Sprintf("read roster %s", path))
	}
	return Parse(data)
}

// Parse decodes a roster document. A top-level defender block is applied to
// every profile before validation runs.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInvalidConfig, "parse roster")
	}
	if r.Defender != nil {
		for i := range r.Profiles {
			r.Profiles[i] = r.Profiles[i].WithDefender(*r.Defender)
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks every profile for values the calculator would otherwise
// clamp or misread silently. Typos in dice expressions and mode names fail
// here rather than at evaluation time.
func (r *Roster) Validate() error {
	if len(r.Profiles) == 0 {
		return calcerr.InvalidConfig("roster has no profiles")
	}
	for i, p := range r.Profiles {
		if err := validateProfile(p); err != nil {
			return calcerr.Wrapf(err, "profile %d (%s)", i+1, p.Name)
		}
	}
	return nil
}

func validateProfile(p game.WeaponProfile) error {
	if p.Name == "" {
		return calcerr.InvalidConfig("missing name")
	}
	if p.Attacks < 0 {
		return calcerr.InvalidConfigf("attacks must be >= 0, got %d", p.Attacks)
	}
	if p.Hit < 2 || p.Hit > 6 {
		return calcerr.InvalidConfigf("hit must be 2-6, got %d", p.Hit)
	}
	if p.Wound < 2 || p.Wound > 6 {
		return calcerr.InvalidConfigf("wound must be 2-6, got %d", p.Wound)
	}
	if p.Rend > 0 {
		return calcerr.InvalidConfigf("rend must be 0 or negative, got %d", p.Rend)
	}
	if p.TargetSave < 2 || p.TargetSave > 6 {
		return calcerr.InvalidConfigf("target_save must be 2-6, got %d", p.TargetSave)
	}
	if p.TargetWard != 0 && (p.TargetWard < 2 || p.TargetWard > 6) {
		return calcerr.InvalidConfigf("target_ward must be 0 or 2-6, got %d", p.TargetWard)
	}
	if _, err := engine.ExpectedValue(p.Damage); err != nil {
		return calcerr.Wrap(err, "damage")
	}
	return validateEffects(p.Effects)
}

func validateEffects(e game.Effects) error {
	if err := checkRerollMode("reroll_hit", e.RerollHit); err != nil {
		return err
	}
	if err := checkRerollMode("reroll_wound", e.RerollWound); err != nil {
		return err
	}
	if e.ExplodeOnHit6 < 0 {
		return calcerr.InvalidConfigf("explode_on_hit_6 must be >= 0, got %d", e.ExplodeOnHit6)
	}
	if err := checkMortalMode("mortal_on_hit_6_mode", e.MortalOnHit6Mode); err != nil {
		return err
	}
	if err := checkMortalMode("mortal_on_wound_6_mode", e.MortalOnWound6Mode); err != nil {
		return err
	}
	if e.MortalOnHit6Value != "" {
		if _, err := engine.ExpectedValue(e.MortalOnHit6Value); err != nil {
			return calcerr.Wrap(err, "mortal_on_hit_6_value")
		}
	}
	if e.MortalOnWound6Value != "" {
		if _, err := engine.ExpectedValue(e.MortalOnWound6Value); err != nil {
			return calcerr.Wrap(err, "mortal_on_wound_6_value")
		}
	}
	return nil
}

func checkRerollMode(field string, mode engine.RerollMode) error {
	switch mode {
	case "", engine.RerollNone, engine.RerollOnes, engine.RerollFailed:
		return nil
	}
	return calcerr.InvalidConfigf("%s: unknown mode %q", field, string(mode))
}

func checkMortalMode(field string, mode game.MortalMode) error {
	switch mode {
	case "", game.MortalInstead, game.MortalInAddition:
		return nil
	}
	return calcerr.InvalidConfigf("%s: unknown mode %q", field, string(mode))
}
