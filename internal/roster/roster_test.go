package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thundergore/damage-calc/internal/engine"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/roster"
)

func TestParseAppliesDefender(t *testing.T) {
	doc := `
name: skaven counter-charge
defender:
  save: 3
  save_mod: 1
  ward: 5
profiles:
  - name: halberds
    attacks: 20
    hit: 4
    wound: 4
    rend: -1
    damage: "1"
  - name: rusty blades
    attacks: 10
    hit: 5
    wound: 5
    damage: d3
`

	r, err := roster.Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "skaven counter-charge", r.Name)
	require.Len(t, r.Profiles, 2)
	for _, p := range r.Profiles {
		assert.Equal(t, 3, p.TargetSave)
		assert.Equal(t, 1, p.DefenderSaveMod)
		assert.Equal(t, 5, p.TargetWard)
	}
}

func TestParseEffectDefaults(t *testing.T) {
	doc := `
profiles:
  - name: plain
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
  - name: autowound only
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      autowound_on_hit_6: true
  - name: opted out
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      autowound_on_hit_6: true
      explode_applies_to_autowounds: false
`

	r, err := roster.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, r.Profiles, 3)

	assert.Equal(t, game.NewEffects(), r.Profiles[0].Effects)

	want := game.NewEffects()
	want.AutowoundOnHit6 = true
	assert.Equal(t, want, r.Profiles[1].Effects)

	want.ExplodeAppliesToAutowounds = false
	assert.Equal(t, want, r.Profiles[2].Effects)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		wantIn string
	}{
		{
			name: "roster key",
			doc: `
banner: doom
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
`,
			wantIn: `unsupported roster key "banner"`,
		},
		{
			name: "defender key",
			doc: `
defender:
  save: 4
  armour: 3
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
`,
			wantIn: `unsupported defender key "armour"`,
		},
		{
			name: "profile key",
			doc: `
profiles:
  - name: blades
    atacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
`,
			wantIn: `unsupported profile key "atacks"`,
		},
		{
			name: "effect key",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      explode: 1
`,
			wantIn: `unsupported effect key "explode"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := roster.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, calcerr.IsInvalidConfig(err))
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		wantIn string
		code   calcerr.Code
	}{
		{
			name:   "no profiles",
			doc:    "name: empty\n",
			wantIn: "roster has no profiles",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "missing profile name",
			doc: `
profiles:
  - attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
`,
			wantIn: "missing name",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "negative attacks",
			doc: `
profiles:
  - name: blades
    attacks: -1
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
`,
			wantIn: "attacks must be >= 0",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "hit out of range",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 7
    wound: 4
    damage: "1"
    target_save: 4
`,
			wantIn: "hit must be 2-6",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "wound out of range",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 1
    damage: "1"
    target_save: 4
`,
			wantIn: "wound must be 2-6",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "positive rend",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    rend: 1
    damage: "1"
    target_save: 4
`,
			wantIn: "rend must be 0 or negative",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "missing save",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
`,
			wantIn: "target_save must be 2-6",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "ward out of range",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    target_ward: 1
`,
			wantIn: "target_ward must be 0 or 2-6",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "bad damage expression",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: 2d4
    target_save: 4
`,
			wantIn: "unsupported dice expression",
			code:   calcerr.CodeUnsupportedExpression,
		},
		{
			name: "bad reroll mode",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      reroll_hit: sixes
`,
			wantIn: `reroll_hit: unknown mode "sixes"`,
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "bad mortal mode",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      mortal_on_wound_6_value: d3
      mortal_on_wound_6_mode: always
`,
			wantIn: `mortal_on_wound_6_mode: unknown mode "always"`,
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "negative explode",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      explode_on_hit_6: -1
`,
			wantIn: "explode_on_hit_6 must be >= 0",
			code:   calcerr.CodeInvalidConfig,
		},
		{
			name: "bad mortal value expression",
			doc: `
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
    effects:
      mortal_on_hit_6_value: d99
`,
			wantIn: "mortal_on_hit_6_value",
			code:   calcerr.CodeUnsupportedExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := roster.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
			assert.Equal(t, tt.code, calcerr.GetCode(err))
		})
	}
}

func TestParseNamesOffendingProfile(t *testing.T) {
	doc := `
profiles:
  - name: fine
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
  - name: broken
    attacks: 10
    hit: 9
    wound: 4
    damage: "1"
    target_save: 4
`

	_, err := roster.Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile 2 (broken)")
}

func TestParseFullRoster(t *testing.T) {
	doc := `
name: vanguard
defender:
  save: 4
  ward: 6
profiles:
  - name: glaives
    attacks: 6
    hit: 3
    hit_mod: 1
    wound: 3
    wound_mod: -1
    rend: -2
    damage: d3+1
    effects:
      reroll_hit: failed
      explode_on_hit_6: 1
      mortal_on_wound_6_value: d3
      mortal_on_wound_6_mode: in_addition
`

	r, err := roster.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, r.Profiles, 1)

	p := r.Profiles[0]
	assert.Equal(t, "glaives", p.Name)
	assert.Equal(t, 6, p.Attacks)
	assert.Equal(t, 3, p.Hit)
	assert.Equal(t, 1, p.HitMod)
	assert.Equal(t, -1, p.WoundMod)
	assert.Equal(t, -2, p.Rend)
	assert.Equal(t, "d3+1", p.Damage)
	assert.Equal(t, 4, p.TargetSave)
	assert.Equal(t, 6, p.TargetWard)

	assert.Equal(t, engine.RerollFailed, p.Effects.RerollHit)
	assert.Equal(t, engine.RerollNone, p.Effects.RerollWound)
	assert.Equal(t, 1, p.Effects.ExplodeOnHit6)
	assert.Equal(t, "d3", p.Effects.MortalOnWound6Value)
	assert.Equal(t, game.MortalInAddition, p.Effects.MortalOnWound6Mode)
	assert.Equal(t, game.MortalInstead, p.Effects.MortalOnHit6Mode)
	assert.True(t, p.Effects.ExplodeAppliesToAutowounds)

	// A parsed roster must evaluate without further massaging.
	bd, err := p.Evaluate()
	require.NoError(t, err)
	assert.Greater(t, bd.Total, 0.0)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	doc := `
name: from disk
profiles:
  - name: blades
    attacks: 10
    hit: 4
    wound: 4
    damage: "1"
    target_save: 4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from disk", r.Name)

	_, err = roster.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, calcerr.IsInvalidConfig(err))
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	doc := `
presets:
  - name: longswords
    description: standard two-handed line
    profile:
      attacks: 10
      hit: 3
      wound: 4
      rend: -1
      damage: "1"
      target_save: 4
  - name: crossbows
    profile:
      name: heavy crossbows
      attacks: 5
      hit: 4
      wound: 3
      damage: "2"
      target_save: 4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	presets, err := roster.LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	assert.Equal(t, "longswords", presets[0].Name)
	assert.Equal(t, "standard two-handed line", presets[0].Description)
	assert.Equal(t, "longswords", presets[0].Profile.Name)
	assert.Equal(t, game.NewEffects(), presets[0].Profile.Effects)

	assert.Equal(t, "crossbows", presets[1].Name)
	assert.Equal(t, "heavy crossbows", presets[1].Profile.Name)
}

func TestLoadPresetsValidation(t *testing.T) {
	dir := t.TempDir()

	unnamed := filepath.Join(dir, "unnamed.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte(`
presets:
  - profile:
      attacks: 10
      hit: 4
      wound: 4
      damage: "1"
      target_save: 4
`), 0o644))

	_, err := roster.LoadPresets(unnamed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset 1: missing name")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
presets:
  - name: cursed
    profile:
      attacks: 10
      hit: 4
      wound: 4
      damage: 2d4
      target_save: 4
`), 0o644))

	_, err = roster.LoadPresets(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `preset "cursed"`)
	assert.True(t, calcerr.IsUnsupportedExpression(err))
}
