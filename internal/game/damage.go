package game

import (
	"math"

	"github.com/thundergore/damage-calc/internal/engine"
)

// ExpectedDamage returns the expected total damage (normal + mortal) the
// profile deals across all of its attacks.
func (p WeaponProfile) ExpectedDamage() (float64, error) {
	b, err := p.Evaluate()
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Evaluate walks the hit, wound, save and ward stages analytically and
// reports the expected quantity at every step.
//
// Model assumptions:
//   - d6 system, 1s always fail, natural 6s can trigger effects.
//   - Save is modified by rend and defender save mods; ward is unmodified.
//   - Mortals skip the normal save but can still be warded.
//   - Explosions add hits, not rolls; added hits roll to wound but cannot
//     retrigger the on-hit 6 effects of the die that spawned them.
//   - Auto-wound converts natural 6 hits straight to wounds, no wound roll.
//   - Re-roll "failed" re-rolls only failures (optimal play); "ones" only 1s.
func (p WeaponProfile) Evaluate() (Breakdown, error) {
	e := p.Effects.normalized()

	// Effective stage targets; modifiers lower the number needed
	hitTarget := engine.Clamp(2, 6, p.Hit-p.HitMod)
	woundTarget := engine.Clamp(2, 6, p.Wound-p.WoundMod)
	saveTarget := engine.Clamp(2, 6, p.TargetSave-p.Rend-p.DefenderSaveMod)

	pHitBase := engine.ProbSuccessOn(hitTarget)
	pWoundBase := engine.ProbSuccessOn(woundTarget)
	pSave := engine.ProbSuccessOn(saveTarget)
	pWard := 0.0
	if p.TargetWard > 0 {
		pWard = engine.ProbSuccessOn(p.TargetWard)
	}

	normalDmg, err := engine.ExpectedValue(p.Damage)
	if err != nil {
		return Breakdown{}, err
	}

	pHit, err := engine.SuccessWithReroll(pHitBase, e.RerollHit)
	if err != nil {
		return Breakdown{}, err
	}
	pWound, err := engine.SuccessWithReroll(pWoundBase, e.RerollWound)
	if err != nil {
		return Breakdown{}, err
	}

	// Natural 6 triggers are keyed to the base chance: a "failed" re-roll
	// fires on the original roll, not the kept one
	pHitNat6, err := engine.Nat6WithReroll(pHitBase, e.RerollHit)
	if err != nil {
		return Breakdown{}, err
	}
	pWoundNat6, err := engine.Nat6WithReroll(pWoundBase, e.RerollWound)
	if err != nil {
		return Breakdown{}, err
	}

	// Exploding hits on natural 6 to hit
	extraHits := float64(e.ExplodeOnHit6) * pHitNat6

	// Auto-wounds skip the wound roll. With the 2-6 clamp a 6 always
	// succeeds, so every trigger is also a successful hit.
	autoWounds := 0.0
	if e.AutowoundOnHit6 {
		autoWounds = pHitNat6
	}
	needWound := math.Max(0, pHit-autoWounds) + extraHits

	// Mortals on natural 6 to hit
	mortalsOnHit := 0.0
	if e.MortalOnHit6Value != "" {
		perProc, err := engine.ExpectedValue(e.MortalOnHit6Value)
		if err != nil {
			return Breakdown{}, err
		}
		mortalsOnHit = pHitNat6 * perProc

		// An "instead" proc replaces the die's normal continuation, and so
		// does "in addition" without the continue flag. Those dice leave
		// the auto-wound pool when auto-wound captures the 6s, otherwise
		// the needs-wound pool.
		consume := e.MortalOnHit6Mode == MortalInstead ||
			(e.MortalOnHit6Mode == MortalInAddition && !e.ContinueToWoundAfterMortalOnHit)
		if consume {
			if e.AutowoundOnHit6 && e.ExplodeAppliesToAutowounds {
				autoWounds = math.Max(0, autoWounds-pHitNat6)
			} else {
				needWound = math.Max(0, needWound-pHitNat6)
			}
		}
	}

	// Wound stage for everything still rolling
	woundsFromRolls := needWound * pWound

	// Mortals on natural 6 to wound; each needs-wound hit makes one roll
	mortalsOnWound := 0.0
	if e.MortalOnWound6Value != "" {
		perProc, err := engine.ExpectedValue(e.MortalOnWound6Value)
		if err != nil {
			return Breakdown{}, err
		}
		procs := needWound * pWoundNat6
		mortalsOnWound = procs * perProc
		if e.MortalOnWound6Mode == MortalInstead {
			// a natural 6 is also a success, so the proc replaces one
			woundsFromRolls = math.Max(0, woundsFromRolls-procs)
		}
	}

	woundsBeforeSave := autoWounds + woundsFromRolls

	// Normal damage passes save then ward; mortals are warded only
	pUnsaved := 1 - pSave
	pUnwarded := 1 - pWard
	normalPerAttack := woundsBeforeSave * pUnsaved * pUnwarded * normalDmg
	mortalPerAttack := (mortalsOnHit + mortalsOnWound) * pUnwarded

	attacks := float64(p.Attacks)
	return Breakdown{
		HitTarget:   hitTarget,
		WoundTarget: woundTarget,
		SaveTarget:  saveTarget,

		PHit:       pHit,
		PWound:     pWound,
		PSave:      pSave,
		PWard:      pWard,
		PHitNat6:   pHitNat6,
		PWoundNat6: pWoundNat6,

		Hits:             attacks * pHit,
		ExtraHits:        attacks * extraHits,
		AutoWounds:       attacks * autoWounds,
		HitsNeedingWound: attacks * needWound,
		WoundsFromRolls:  attacks * woundsFromRolls,
		WoundsBeforeSave: attacks * woundsBeforeSave,
		UnsavedWounds:    attacks * woundsBeforeSave * pUnsaved,

		MortalsOnHit:   attacks * mortalsOnHit,
		MortalsOnWound: attacks * mortalsOnWound,

		NormalDamage: attacks * normalPerAttack,
		MortalDamage: attacks * mortalPerAttack,
		Total:        attacks * (normalPerAttack + mortalPerAttack),
	}, nil
}
