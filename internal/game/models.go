package game

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CatalogCard is a design-data record: name, elemental type, stat dice
// and up to two abilities. Only the name is persisted; every other field
// is populated from the server config (dueldice_config.json), which is
// the source of truth for card design. Mark them with `gorm:"-"` so GORM
// ignores them for schema purposes while keeping them available
// in-memory and in JSON responses.
type CatalogCard struct {
	gorm.Model
	Name           string   `json:"name" gorm:"uniqueIndex"`
	CardType       CardType `json:"card_type" gorm:"-"`
	BaseHealth     int      `json:"base_health" gorm:"-"`
	DamageDieSides int      `json:"damage_die_sides" gorm:"-"`
	SpeedDieSides  int      `json:"speed_die_sides" gorm:"-"`
	DefenseDieSides int     `json:"defense_die_sides" gorm:"-"`
	Ability1       Ability  `json:"ability1" gorm:"-"`
	Ability2       Ability  `json:"ability2" gorm:"-"`
}

// TableName overrides the default GORM table name so the persisted
// table is `catalog_cards`.
func (CatalogCard) TableName() string { return "catalog_cards" }

// AbilityAt returns the ability at index 0 or 1, or nil when the index
// is out of range.
func (c *CatalogCard) AbilityAt(idx int) *Ability {
	switch idx {
	case 0:
		return &c.Ability1
	case 1:
		return &c.Ability2
	}
	return nil
}

// Ability describes one of a card's two abilities: the effect it applies,
// where its numeric value comes from, and an optional timed buff.
type Ability struct {
	Name            string          `json:"name" gorm:"-"`
	EffectID        EffectID        `json:"effect_id" gorm:"-"`
	ValueSourceType ValueSourceType `json:"value_source_type" gorm:"-"`
	ValueSourceFixed float64        `json:"value_source_fixed" gorm:"-"`
	ValueSourceStat RollType        `json:"value_source_stat" gorm:"-"`
	// EnemyValueSourceStat names which of the opponent's rolled stats a
	// disruption effect reduces. Only meaningful for EffectDisruption.
	EnemyValueSourceStat RollType `json:"enemy_value_source_stat" gorm:"-"`
	BuffID        BuffID     `json:"buff_id" gorm:"-"`
	BuffTarget    BuffTarget `json:"buff_target" gorm:"-"`
	DurationTurns int        `json:"duration_turns" gorm:"-"`
}

// CardInstance is one dealt copy of a catalog card inside a match.
type CardInstance struct {
	ID      string      `json:"id"`
	Color   string      `json:"color"`
	Catalog CatalogCard `json:"catalog_card"`
	Health  int         `json:"health"`

	// Board placement. SlotIndex is only meaningful while the card is on
	// the board. SummonedTurn records the turn the card was placed; a
	// card may not attack while SummonedTurn >= the current turn.
	SlotIndex    int  `json:"slot_index"`
	SummonedTurn int  `json:"summoned_turn"`

	// Per-turn attack declaration, cleared every Decision entry.
	AttackCommitted      bool       `json:"attack_committed"`
	TargetSide           TargetSide `json:"target_side"`
	TargetSlotIndex      int        `json:"target_slot_index"`
	SelectedAbilityIndex int        `json:"selected_ability_index"`

	// Timed statuses. Taunt and silence are plain timers; poison, fire
	// and frostbite stack, with the timer refreshed on each application.
	TauntTurnsRemaining     int `json:"taunt_turns_remaining"`
	SilenceTurnsRemaining   int `json:"silence_turns_remaining"`
	PoisonTurnsRemaining    int `json:"poison_turns_remaining"`
	PoisonStacks            int `json:"poison_stacks"`
	FireTurnsRemaining      int `json:"fire_turns_remaining"`
	FireStacks              int `json:"fire_stacks"`
	FrostbiteTurnsRemaining int `json:"frostbite_turns_remaining"`
	FrostbiteStacks         int `json:"frostbite_stacks"`

	// RetaliationBonus accumulates within a single Commit phase and is
	// zeroed on every Commit→Decision transition.
	RetaliationBonus int `json:"retaliation_bonus"`
}

// Taunting reports whether the card currently forces enemy attacks onto
// itself.
func (c *CardInstance) Taunting() bool { return c.TauntTurnsRemaining > 0 }

// Silenced reports whether the card's queued attack is suppressed.
func (c *CardInstance) Silenced() bool { return c.SilenceTurnsRemaining > 0 }

// PlayerState holds one player's card zones. Hand, board and discard
// together with the deck always contain exactly the set of cards ever
// dealt to the player.
type PlayerState struct {
	Hand    []*CardInstance `json:"hand"`
	Board   []*CardInstance `json:"board"`
	Deck    []*CardInstance `json:"deck"`
	Discard []*CardInstance `json:"discard"`
}

// BoardCardAt returns the board card occupying the given slot, or nil.
func (ps *PlayerState) BoardCardAt(slot int) *CardInstance {
	for _, c := range ps.Board {
		if c.SlotIndex == slot {
			return c
		}
	}
	return nil
}

// RemoveFromBoard moves a defeated card from the board to the discard
// pile. It is a no-op when the card is not on the board.
func (ps *PlayerState) RemoveFromBoard(card *CardInstance) {
	for i, c := range ps.Board {
		if c.ID == card.ID {
			ps.Board = append(ps.Board[:i], ps.Board[i+1:]...)
			ps.Discard = append(ps.Discard, card)
			return
		}
	}
}

// Attack is a declared intent: which board slot attacks which target
// with which ability. The id is the composite
// attackerId:slotIndex:targetSide:targetSlotIndex.
type Attack struct {
	ID                string     `json:"id"`
	AttackerID        string     `json:"attacker_id"`
	AttackerSlotIndex int        `json:"attacker_slot_index"`
	TargetSide        TargetSide `json:"target_side"`
	// TargetSlotIndex is the slot the attack is currently bound to; an
	// eager taunt redirect rewrites it mid-pass.
	TargetSlotIndex int `json:"target_slot_index"`
	// DeclaredTargetSlotIndex is the slot the player originally chose
	// and never changes after declaration.
	DeclaredTargetSlotIndex int `json:"declared_target_slot_index"`
	SelectedAbilityIndex    int `json:"selected_ability_index"`
}

// AttackID builds the composite attack identifier.
func AttackID(attackerID string, slot int, side TargetSide, targetSlot int) string {
	return fmt.Sprintf("%s:%d:%s:%d", attackerID, slot, side, targetSlot)
}

// RollPayload is the opaque result reported by the client-side dice
// simulator. The server trusts it verbatim: Outcome is consumed as the
// rolled value and Frames is carried through for replay only.
type RollPayload struct {
	Outcome float64           `json:"outcome"`
	Frames  []json.RawMessage `json:"frames"`
}

// CommitRollEntry records one submitted stat roll for one pending
// attack. SubmittedAt is wall-clock and used only for ordering
// tie-breaks.
type CommitRollEntry struct {
	AttackID    string      `json:"attack_id"`
	AttackerID  string      `json:"attacker_id"`
	RollType    RollType    `json:"roll_type"`
	Sides       int         `json:"sides"`
	Roll        RollPayload `json:"roll"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

// RollKey is the lookup key for a recorded roll (attackId:statName).
func RollKey(attackID string, stat RollType) string {
	return attackID + ":" + string(stat)
}

// RetaliationResult captures the counter-damage a defender dealt back to
// its attacker during one execution step.
type RetaliationResult struct {
	DefenderSlotIndex int  `json:"defender_slot_index"`
	BaseDamage        int  `json:"base_damage"`
	RetaliationBonus  int  `json:"retaliation_bonus"`
	DefenseRoll       int  `json:"defense_roll"`
	AppliedDamage     int  `json:"applied_damage"`
	DefenseRemaining  int  `json:"defense_remaining"`
	AttackerDefeated  bool `json:"attacker_defeated"`
}

// CommitExecution is one entry of the commit execution log. Clients
// render the duel strictly from these records.
type CommitExecution struct {
	AttackID string   `json:"attack_id"`
	Executed bool     `json:"executed"`
	Reason   string   `json:"reason,omitempty"`
	EffectID EffectID `json:"effect_id"`

	// Final target after taunt redirection, relative to the attacker.
	// DeclaredTargetSlotIndex keeps the player's original choice so a
	// redirect stays visible in the log.
	TargetSide              TargetSide `json:"target_side"`
	TargetSlotIndex         int        `json:"target_slot_index"`
	DeclaredTargetSlotIndex int        `json:"declared_target_slot_index"`
	Redirected              bool       `json:"redirected"`

	ResolvedValue  int  `json:"resolved_value"`
	TypeAdvantage  bool `json:"type_advantage"`
	AppliedDamage  int  `json:"applied_damage"`
	AppliedHealing int  `json:"applied_healing"`
	TargetDefeated bool `json:"target_defeated"`

	BuffID      BuffID `json:"buff_id,omitempty"`
	BuffApplied bool   `json:"buff_applied"`

	LifeStealHealing    int `json:"life_steal_healing,omitempty"`
	LifeStealNetHealing int `json:"life_steal_net_healing,omitempty"`

	DisruptedStat            RollType `json:"disrupted_stat,omitempty"`
	DisruptedAttackID        string   `json:"disrupted_attack_id,omitempty"`
	DisruptionFallbackDamage int      `json:"disruption_fallback_damage,omitempty"`

	Retaliation *RetaliationResult `json:"retaliation,omitempty"`
}

// SpellResolution tracks the three-step spell handshake
// (start → roll → complete). CompletedAt is nil while in flight; at most
// one in-flight resolution exists per match.
type SpellResolution struct {
	ID                   string       `json:"id"`
	CasterID             string       `json:"caster_id"`
	CardID               string       `json:"card_id"`
	CardSnapshot         CardInstance `json:"card_snapshot"`
	SelectedAbilityIndex int          `json:"selected_ability_index"`
	TargetSide           TargetSide   `json:"target_side"`
	TargetSlotIndex      int          `json:"target_slot_index"`

	RollType     RollType     `json:"roll_type"`
	DieSides     int          `json:"die_sides"`
	RequiresRoll bool         `json:"requires_roll"`
	RollOutcome  *float64     `json:"roll_outcome"`
	RollData     *RollPayload `json:"roll_data,omitempty"`

	EffectID        EffectID `json:"effect_id"`
	ResolvedValue   int      `json:"resolved_value"`
	ResolvedDamage  int      `json:"resolved_damage"`
	ResolvedHealing int      `json:"resolved_healing"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Pending reports whether the spell is still in flight.
func (s *SpellResolution) Pending() bool { return s != nil && s.CompletedAt == nil }

// PlayerProfile is the persisted per-player aggregate record. Matches
// themselves live only in memory; the profile row is what survives a
// restart.
type PlayerProfile struct {
	gorm.Model
	PlayerID      string `json:"player_id" gorm:"uniqueIndex"`
	MatchesPlayed int    `json:"matches_played"`
	LastSeenAt    time.Time `json:"last_seen_at"`
}

// TableName overrides the default GORM table name.
func (PlayerProfile) TableName() string { return "player_profiles" }

// MatchEvent is a human-readable record of something that happened at a
// phase boundary (DOT ticks, draws, spell completions, transitions).
type MatchEvent struct {
	Turn      int       `json:"turn"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Match is one duel between exactly two players. All mutation happens
// under the owning store's per-match lock.
type Match struct {
	ID             string    `json:"id"`
	Players        [2]string `json:"players"`
	TurnNumber     int       `json:"turn_number"`
	Upkeep         int       `json:"upkeep"`
	Phase          Phase     `json:"phase"`
	PhaseStartedAt time.Time `json:"phase_started_at"`
	CreatedAt      time.Time `json:"created_at"`

	ReadyPlayers map[string]bool         `json:"ready_players"`
	PlayerStates map[string]*PlayerState `json:"player_states"`

	// Attacks declared during Decision, per player, in declaration order.
	DeclaredAttacks map[string][]*Attack `json:"declared_attacks"`

	// Commit-phase bookkeeping, reset on every Decision→Commit entry.
	PendingCommitAttacks     map[string][]*Attack        `json:"pending_commit_attacks"`
	CommitRolls              map[string]CommitRollEntry  `json:"commit_rolls"`
	CommitOrder              []string                    `json:"commit_order"`
	CommitExecutions         map[string]*CommitExecution `json:"commit_executions"`
	CommitCompleted          map[string]bool             `json:"commit_completed"`
	CommitAnimationCompleted map[string]bool             `json:"commit_animation_completed"`
	CommitAllRolledAt        *time.Time                  `json:"commit_all_rolled_at"`

	ActiveSpell    *SpellResolution           `json:"active_spell"`
	LastDrawnCards map[string][]*CardInstance `json:"last_drawn_cards"`
	Events         []MatchEvent               `json:"events"`
}

// HasPlayer reports whether the given id belongs to this match.
func (m *Match) HasPlayer(playerID string) bool {
	return m.Players[0] == playerID || m.Players[1] == playerID
}

// OpponentOf returns the other player's id.
func (m *Match) OpponentOf(playerID string) string {
	if m.Players[0] == playerID {
		return m.Players[1]
	}
	return m.Players[0]
}

// StateFor returns the zones owned by the given player.
func (m *Match) StateFor(playerID string) *PlayerState {
	return m.PlayerStates[playerID]
}

// SpellPending reports whether an unresolved spell blocks ready/sync/roll
// calls for both players.
func (m *Match) SpellPending() bool { return m.ActiveSpell.Pending() }

// AddEvent appends a match event stamped with the current turn.
func (m *Match) AddEvent(msg string) {
	m.Events = append(m.Events, MatchEvent{Turn: m.TurnNumber, Message: msg, CreatedAt: time.Now()})
}

// OwnerOfBoardCard returns the id of the player whose board holds the
// card, or the empty string.
func (m *Match) OwnerOfBoardCard(card *CardInstance) string {
	for _, pid := range m.Players {
		for _, c := range m.PlayerStates[pid].Board {
			if c.ID == card.ID {
				return pid
			}
		}
	}
	return ""
}
