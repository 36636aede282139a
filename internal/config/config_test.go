package config

import (
	"os"
	"path/filepath"
	"testing"

	"dueldice/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dueldice_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `{
  "server": {"address": ":9090"},
  "deck_size": 12,
  "starting_hand_size": 3,
  "card_list": [
    {
      "name": "Cinder Imp",
      "card_type": "fire",
      "base_health": 8,
      "damage_die_sides": 6,
      "speed_die_sides": 8,
      "defense_die_sides": 4,
      "ability1": {
        "name": "Scorch",
        "effect_id": "damage_enemy",
        "value_source_type": "roll",
        "value_source_stat": "damage"
      },
      "ability2": {
        "name": "Kindle",
        "effect_id": "damage_enemy",
        "value_source_type": "fixed",
        "value_source_fixed": 2,
        "buff_id": "fire",
        "buff_target": "enemy",
        "duration_turns": 2
      }
    },
    {
      "name": "Winter Scroll",
      "card_type": "spell",
      "damage_die_sides": 4,
      "speed_die_sides": 6,
      "defense_die_sides": 6,
      "ability1": {
        "name": "Freeze",
        "effect_id": "disruption",
        "value_source_type": "roll",
        "value_source_stat": "efct",
        "enemy_value_source_stat": "speed"
      }
    }
  ]
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.DeckSize != 12 || cfg.StartingHandSize != 3 {
		t.Fatalf("unexpected server settings: %+v", cfg)
	}
	if len(cfg.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cfg.Cards))
	}
	imp := cfg.Cards[0]
	if imp.CardType != game.TypeFire || imp.BaseHealth != 8 || imp.DamageDieSides != 6 {
		t.Fatalf("unexpected card: %+v", imp)
	}
	if imp.Ability1.ValueSourceType != game.ValueSourceRoll || imp.Ability1.ValueSourceStat != game.RollDamage {
		t.Fatalf("unexpected ability1: %+v", imp.Ability1)
	}
	if imp.Ability2.BuffID != game.BuffFire || imp.Ability2.DurationTurns != 2 {
		t.Fatalf("unexpected ability2: %+v", imp.Ability2)
	}
	scroll := cfg.Cards[1]
	if scroll.CardType != game.TypeSpell {
		t.Fatalf("expected spell card, got %+v", scroll)
	}
	if scroll.Ability1.EnemyValueSourceStat != game.RollSpeed {
		t.Fatalf("expected disruption stat carried, got %+v", scroll.Ability1)
	}
}

func TestLoadConfig_DefaultsAddress(t *testing.T) {
	body := `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
		"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
		"ability1": {"name": "S", "effect_id": "damage_enemy", "value_source_type": "roll", "value_source_stat": "damage"}}]}`
	cfg, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %s", cfg.ServerAddress)
	}
}

func TestLoadConfig_PureBuffAbility(t *testing.T) {
	body := `{"card_list": [{"name": "Sentinel", "card_type": "water", "base_health": 12,
		"damage_die_sides": 4, "speed_die_sides": 4, "defense_die_sides": 8,
		"ability1": {"name": "Stand Guard", "buff_id": "taunt", "buff_target": "self", "duration_turns": 2}}]}`
	cfg, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cfg.Cards[0].Ability1
	if a.EffectID != game.EffectNone || a.ValueSourceType != game.ValueSourceNone {
		t.Fatalf("expected no effect and no value source, got %+v", a)
	}
	if a.BuffID != game.BuffTaunt || a.BuffTarget != game.BuffTargetSelf || a.DurationTurns != 2 {
		t.Fatalf("unexpected buff: %+v", a)
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing file key", `{}`},
		{"empty list", `{"card_list": []}`},
		{"missing name", `{"card_list": [{"card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
		{"unknown type", `{"card_list": [{"name": "A", "card_type": "shadow", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
		{"zero die sides", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 0, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
		{"unknown effect", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "obliterate", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
		{"no effect and no buff", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"name": "Idle", "effect_id": "none"}}]}`},
		{"missing ability", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6}]}`},
		{"buff without target", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1,
				"buff_id": "taunt", "duration_turns": 2}}]}`},
		{"buff without duration", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1,
				"buff_id": "taunt", "buff_target": "self"}}]}`},
		{"disruption without stat", `{"card_list": [{"name": "A", "card_type": "fire", "base_health": 5,
			"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
			"ability1": {"effect_id": "disruption", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
		{"duplicate names", `{"card_list": [
			{"name": "A", "card_type": "fire", "base_health": 5,
				"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
				"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1}},
			{"name": "a", "card_type": "water", "base_health": 5,
				"damage_die_sides": 6, "speed_die_sides": 6, "defense_die_sides": 6,
				"ability1": {"effect_id": "damage_enemy", "value_source_type": "fixed", "value_source_fixed": 1}}]}`},
	}
	for _, c := range cases {
		if _, err := LoadConfig(writeConfig(t, c.body)); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}
