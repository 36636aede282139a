package engine

import (
	"math"

	"dueldice/internal/game"
)

// resolveValue computes an ability's raw numeric value for an attack:
// 0 for no source, the floored fixed value, or the recorded roll for the
// ability's stat (including any disruption reductions).
func (ctx *commitContext) resolveValue(ability *game.Ability, attackID string) int {
	switch ability.ValueSourceType {
	case game.ValueSourceFixed:
		v := int(math.Floor(ability.ValueSourceFixed))
		if v < 0 {
			v = 0
		}
		return v
	case game.ValueSourceRoll:
		return ctx.statValue(attackID, ability.ValueSourceStat)
	}
	return 0
}

// ResolveFixedOrRollValue is the standalone form of ability value
// resolution used by the spell handshake, where a single roll outcome is
// supplied directly instead of the commit roll map.
func ResolveFixedOrRollValue(ability *game.Ability, rollOutcome *float64) int {
	switch ability.ValueSourceType {
	case game.ValueSourceFixed:
		v := int(math.Floor(ability.ValueSourceFixed))
		if v < 0 {
			v = 0
		}
		return v
	case game.ValueSourceRoll:
		if rollOutcome == nil {
			return 0
		}
		v := int(math.Floor(*rollOutcome))
		if v < 0 {
			v = 0
		}
		return v
	}
	return 0
}

// AdjustedEffectValue applies the type-advantage rule to a resolved
// value. It returns the adjusted value and whether the bonus applied.
func AdjustedEffectValue(value int, effect game.EffectID, actor, target game.CardType) (int, bool) {
	if advantageApplies(effect, actor, target) {
		return withAdvantage(value), true
	}
	return value, false
}
