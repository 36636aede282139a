package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dueldice/internal/game"
)

type abilityEntry struct {
	Name                 string  `json:"name"`
	EffectID             string  `json:"effect_id"`
	ValueSourceType      string  `json:"value_source_type"`
	ValueSourceFixed     float64 `json:"value_source_fixed"`
	ValueSourceStat      string  `json:"value_source_stat"`
	EnemyValueSourceStat string  `json:"enemy_value_source_stat"`
	BuffID               string  `json:"buff_id"`
	BuffTarget           string  `json:"buff_target"`
	DurationTurns        int     `json:"duration_turns"`
}

type cardEntry struct {
	Name            string        `json:"name"`
	CardType        string        `json:"card_type"`
	BaseHealth      int           `json:"base_health"`
	DamageDieSides  int           `json:"damage_die_sides"`
	SpeedDieSides   int           `json:"speed_die_sides"`
	DefenseDieSides int           `json:"defense_die_sides"`
	Ability1        *abilityEntry `json:"ability1"`
	Ability2        *abilityEntry `json:"ability2"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	Server   *struct {
		Address string `json:"address"`
		DBPath  string `json:"db_path"`
	} `json:"server"`
	DeckSize         int `json:"deck_size"`
	StartingHandSize int `json:"starting_hand_size"`
}

// LoadedConfig contains the card catalog to seed and server settings.
type LoadedConfig struct {
	Cards            []game.CatalogCard
	ServerAddress    string
	DBPath           string
	DeckSize         int
	StartingHandSize int
}

var validCardTypes = map[string]game.CardType{
	string(game.TypeFire):   game.TypeFire,
	string(game.TypeNature): game.TypeNature,
	string(game.TypeArcane): game.TypeArcane,
	string(game.TypeWater):  game.TypeWater,
	string(game.TypeSpell):  game.TypeSpell,
}

var validEffects = map[string]game.EffectID{
	string(game.EffectDamageEnemy):      game.EffectDamageEnemy,
	string(game.EffectHealTarget):       game.EffectHealTarget,
	string(game.EffectRetaliationBonus): game.EffectRetaliationBonus,
	string(game.EffectLifeSteal):        game.EffectLifeSteal,
	string(game.EffectDisruption):       game.EffectDisruption,
}

var validBuffs = map[string]game.BuffID{
	string(game.BuffTaunt):     game.BuffTaunt,
	string(game.BuffSilence):   game.BuffSilence,
	string(game.BuffPoison):    game.BuffPoison,
	string(game.BuffFire):      game.BuffFire,
	string(game.BuffFrostbite): game.BuffFrostbite,
}

var validStats = map[string]game.RollType{
	string(game.RollDamage):  game.RollDamage,
	string(game.RollSpeed):   game.RollSpeed,
	string(game.RollDefense): game.RollDefense,
	string(game.RollEffect):  game.RollEffect,
}

// LoadConfig reads the configuration file at path and returns the card
// catalog and server settings. It requires the key `card_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.CardList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide 'card_list' array)", path)
	}

	out := make([]game.CatalogCard, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		card, err := parseCard(e)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		ln := strings.ToLower(strings.TrimSpace(card.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card name '%s'", path, card.Name)
		}
		nameSet[ln] = struct{}{}
		out = append(out, card)
	}

	addr := ":8080"
	dbPath := ""
	if rc.Server != nil {
		if rc.Server.Address != "" {
			addr = rc.Server.Address
		}
		dbPath = rc.Server.DBPath
	}

	return &LoadedConfig{
		Cards:            out,
		ServerAddress:    addr,
		DBPath:           dbPath,
		DeckSize:         rc.DeckSize,
		StartingHandSize: rc.StartingHandSize,
	}, nil
}

func parseCard(e cardEntry) (game.CatalogCard, error) {
	var c game.CatalogCard
	if e.Name == "" {
		return c, fmt.Errorf("card entry missing 'name'")
	}
	ct, ok := validCardTypes[e.CardType]
	if !ok {
		return c, fmt.Errorf("card '%s': unknown card_type '%s'", e.Name, e.CardType)
	}
	if ct != game.TypeSpell && e.BaseHealth <= 0 {
		return c, fmt.Errorf("card '%s': base_health must be positive", e.Name)
	}
	if e.DamageDieSides <= 0 || e.SpeedDieSides <= 0 || e.DefenseDieSides <= 0 {
		return c, fmt.Errorf("card '%s': die sides must be positive", e.Name)
	}
	c = game.CatalogCard{
		Name:            e.Name,
		CardType:        ct,
		BaseHealth:      e.BaseHealth,
		DamageDieSides:  e.DamageDieSides,
		SpeedDieSides:   e.SpeedDieSides,
		DefenseDieSides: e.DefenseDieSides,
	}
	if e.Ability1 == nil {
		return c, fmt.Errorf("card '%s': ability1 is required", e.Name)
	}
	a1, err := parseAbility(e.Name, *e.Ability1)
	if err != nil {
		return c, err
	}
	c.Ability1 = a1
	if e.Ability2 != nil {
		a2, err := parseAbility(e.Name, *e.Ability2)
		if err != nil {
			return c, err
		}
		c.Ability2 = a2
	}
	return c, nil
}

func parseAbility(cardName string, e abilityEntry) (game.Ability, error) {
	var a game.Ability
	effect := game.EffectNone
	if e.EffectID != "" && e.EffectID != "none" {
		var ok bool
		effect, ok = validEffects[e.EffectID]
		if !ok {
			return a, fmt.Errorf("card '%s': unknown effect_id '%s'", cardName, e.EffectID)
		}
	}
	// A pure-buff ability carries no effect and no value source; it
	// must attach a buff to do anything at all.
	if effect == game.EffectNone && e.BuffID == "" {
		return a, fmt.Errorf("card '%s': ability needs an effect_id or a buff_id", cardName)
	}
	a = game.Ability{Name: e.Name, EffectID: effect, DurationTurns: e.DurationTurns}

	switch e.ValueSourceType {
	case "", "none":
		a.ValueSourceType = game.ValueSourceNone
	case string(game.ValueSourceRoll):
		a.ValueSourceType = game.ValueSourceRoll
		stat, ok := validStats[e.ValueSourceStat]
		if !ok {
			return a, fmt.Errorf("card '%s': unknown value_source_stat '%s'", cardName, e.ValueSourceStat)
		}
		a.ValueSourceStat = stat
	case string(game.ValueSourceFixed):
		a.ValueSourceType = game.ValueSourceFixed
		if e.ValueSourceFixed <= 0 {
			return a, fmt.Errorf("card '%s': value_source_fixed must be positive", cardName)
		}
		a.ValueSourceFixed = e.ValueSourceFixed
	default:
		return a, fmt.Errorf("card '%s': unknown value_source_type '%s'", cardName, e.ValueSourceType)
	}

	if effect == game.EffectDisruption {
		stat, ok := validStats[e.EnemyValueSourceStat]
		if !ok {
			return a, fmt.Errorf("card '%s': disruption requires a valid enemy_value_source_stat", cardName)
		}
		a.EnemyValueSourceStat = stat
	}

	if e.BuffID != "" {
		buff, ok := validBuffs[e.BuffID]
		if !ok {
			return a, fmt.Errorf("card '%s': unknown buff_id '%s'", cardName, e.BuffID)
		}
		a.BuffID = buff
		switch e.BuffTarget {
		case string(game.BuffTargetSelf):
			a.BuffTarget = game.BuffTargetSelf
		case string(game.BuffTargetFriendly):
			a.BuffTarget = game.BuffTargetFriendly
		case string(game.BuffTargetEnemy):
			a.BuffTarget = game.BuffTargetEnemy
		default:
			return a, fmt.Errorf("card '%s': buff '%s' requires a valid buff_target", cardName, e.BuffID)
		}
		if e.DurationTurns <= 0 {
			return a, fmt.Errorf("card '%s': buff '%s' requires positive duration_turns", cardName, e.BuffID)
		}
	}
	return a, nil
}
