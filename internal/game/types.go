package game

// Phase identifies which half of the turn loop a match is in. Players
// arrange their board and ready up during Decision; all declared attacks
// are rolled and resolved together during Commit.
type Phase string

const (
	PhaseDecision Phase = "decision"
	PhaseCommit   Phase = "commit"
)

// CardType is the elemental type of a catalog card. Spell cards are a
// distinct type: they can never be placed on the board and are cast
// through the spell resolution handshake instead.
type CardType string

const (
	TypeFire   CardType = "fire"
	TypeNature CardType = "nature"
	TypeArcane CardType = "arcane"
	TypeWater  CardType = "water"
	TypeSpell  CardType = "spell"
)

// EffectID names what an ability does when it resolves.
type EffectID string

const (
	EffectNone             EffectID = ""
	EffectDamageEnemy      EffectID = "damage_enemy"
	EffectHealTarget       EffectID = "heal_target"
	EffectRetaliationBonus EffectID = "retaliation_bonus"
	EffectLifeSteal        EffectID = "life_steal"
	EffectDisruption       EffectID = "disruption"
)

// ValueSourceType says where an ability's numeric value comes from.
type ValueSourceType string

const (
	ValueSourceNone  ValueSourceType = ""
	ValueSourceRoll  ValueSourceType = "roll"
	ValueSourceFixed ValueSourceType = "fixed"
)

// BuffID names a timed status an ability can attach.
type BuffID string

const (
	BuffNone      BuffID = ""
	BuffTaunt     BuffID = "taunt"
	BuffSilence   BuffID = "silence"
	BuffPoison    BuffID = "poison"
	BuffFire      BuffID = "fire"
	BuffFrostbite BuffID = "frostbite"
)

// BuffTarget says which card a buff lands on relative to the caster.
type BuffTarget string

const (
	BuffTargetNone     BuffTarget = ""
	BuffTargetSelf     BuffTarget = "self"
	BuffTargetFriendly BuffTarget = "friendly"
	BuffTargetEnemy    BuffTarget = "enemy"
)

// RollType is the stat a submitted die roll feeds.
type RollType string

const (
	RollDamage  RollType = "damage"
	RollSpeed   RollType = "speed"
	RollDefense RollType = "defense"

	// RollEffect is the legacy stat name spell clients submit in place
	// of "damage". Lookups alias it transparently.
	RollEffect RollType = "efct"
)

// TargetSide is relative to the acting player: "player" is their own
// board, "opponent" the enemy board.
type TargetSide string

const (
	SidePlayer   TargetSide = "player"
	SideOpponent TargetSide = "opponent"
)

// Board and resource limits.
const (
	MaxHandSize  = 7
	MaxBoardSize = 3
	MaxUpkeep    = 10
)
