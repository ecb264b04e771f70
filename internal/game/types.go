package game

import "encoding/json"

// WeaponProfile is one attack profile plus the defensive context it is
// evaluated against.
type WeaponProfile struct {
	Name    string `json:"name" yaml:"name"`
	Attacks int    `json:"attacks" yaml:"attacks"`
	Hit     int    `json:"hit" yaml:"hit"`     // to-hit target (2-6)
	Wound   int    `json:"wound" yaml:"wound"` // to-wound target (2-6)
	Rend    int    `json:"rend" yaml:"rend"`   // save penalty, 0 or negative
	Damage  string `json:"damage" yaml:"damage"`

	// Offensive modifiers, applied against the target number
	HitMod   int `json:"hit_mod,omitempty" yaml:"hit_mod,omitempty"`
	WoundMod int `json:"wound_mod,omitempty" yaml:"wound_mod,omitempty"`

	// Defensive context
	TargetSave      int `json:"target_save" yaml:"target_save"`
	DefenderSaveMod int `json:"defender_save_mod,omitempty" yaml:"defender_save_mod,omitempty"`
	TargetWard      int `json:"target_ward,omitempty" yaml:"target_ward,omitempty"` // 0 means no ward

	Effects Effects `json:"effects" yaml:"effects"`
}

// UnmarshalJSON pre-fills the effect defaults, so a profile without an
// "effects" key evaluates with the conventional behavior.
func (p *WeaponProfile) UnmarshalJSON(data []byte) error {
	type raw WeaponProfile
	tmp := raw{Effects: NewEffects()}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = WeaponProfile(tmp)
	return nil
}

// Defender is the engagement-level defensive context shared by every profile
// in a batch.
type Defender struct {
	Save    int `json:"save" yaml:"save"`
	SaveMod int `json:"save_mod,omitempty" yaml:"save_mod,omitempty"`
	Ward    int `json:"ward,omitempty" yaml:"ward,omitempty"` // 0 means no ward
}

// WithDefender returns a copy of the profile with d's save, save modifier
// and ward filled in.
func (p WeaponProfile) WithDefender(d Defender) WeaponProfile {
	p.TargetSave = d.Save
	p.DefenderSaveMod = d.SaveMod
	p.TargetWard = d.Ward
	return p
}

// Breakdown reports the expected quantity at every stage of one profile's
// attack sequence. Probabilities are per die; counts are totals across all
// attacks of the profile.
type Breakdown struct {
	HitTarget   int `json:"hit_target"`
	WoundTarget int `json:"wound_target"`
	SaveTarget  int `json:"save_target"`

	PHit       float64 `json:"p_hit"`
	PWound     float64 `json:"p_wound"`
	PSave      float64 `json:"p_save"`
	PWard      float64 `json:"p_ward"`
	PHitNat6   float64 `json:"p_hit_nat6"`
	PWoundNat6 float64 `json:"p_wound_nat6"`

	Hits             float64 `json:"hits"`
	ExtraHits        float64 `json:"extra_hits"`
	AutoWounds       float64 `json:"auto_wounds"`
	HitsNeedingWound float64 `json:"hits_needing_wound"`
	WoundsFromRolls  float64 `json:"wounds_from_rolls"`
	WoundsBeforeSave float64 `json:"wounds_before_save"`
	UnsavedWounds    float64 `json:"unsaved_wounds"`

	MortalsOnHit   float64 `json:"mortals_on_hit"`
	MortalsOnWound float64 `json:"mortals_on_wound"`

	NormalDamage float64 `json:"normal_damage"`
	MortalDamage float64 `json:"mortal_damage"`
	Total        float64 `json:"total"`
}
