package engine

import (
	"math"

	"dueldice/internal/game"
)

// typeBeats is the fixed cyclic advantage chart:
// Fire beats Nature beats Arcane beats Water beats Fire.
var typeBeats = map[game.CardType]game.CardType{
	game.TypeFire:   game.TypeNature,
	game.TypeNature: game.TypeArcane,
	game.TypeArcane: game.TypeWater,
	game.TypeWater:  game.TypeFire,
}

// TypeBeats reports whether attacker's type has chart advantage over the
// defender's type.
func TypeBeats(attacker, defender game.CardType) bool {
	return typeBeats[attacker] == defender
}

// withAdvantage applies the 1.5x bonus, rounded up.
func withAdvantage(v int) int {
	return int(math.Ceil(float64(v) * 1.5))
}

// advantageApplies decides whether an effect gets the 1.5x bonus.
// Damage uses the chart; heal, retaliation bonus and life steal use
// same-type synergy between the acting card and its target instead.
func advantageApplies(effect game.EffectID, actor, target game.CardType) bool {
	switch effect {
	case game.EffectDamageEnemy:
		return TypeBeats(actor, target)
	case game.EffectHealTarget, game.EffectRetaliationBonus, game.EffectLifeSteal:
		return actor == target
	}
	return false
}
