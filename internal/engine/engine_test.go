package engine

import (
	"testing"
	"time"

	"dueldice/internal/game"
)

func testCatalog(name string, ctype game.CardType, ability1, ability2 game.Ability) game.CatalogCard {
	return game.CatalogCard{
		Name:            name,
		CardType:        ctype,
		BaseHealth:      10,
		DamageDieSides:  6,
		SpeedDieSides:   6,
		DefenseDieSides: 6,
		Ability1:        ability1,
		Ability2:        ability2,
	}
}

func damageAbility() game.Ability {
	return game.Ability{Name: "Strike", EffectID: game.EffectDamageEnemy, ValueSourceType: game.ValueSourceRoll, ValueSourceStat: game.RollDamage}
}

func boardCard(id string, cat game.CatalogCard, slot, health int) *game.CardInstance {
	return &game.CardInstance{ID: id, Catalog: cat, Health: health, SlotIndex: slot, SummonedTurn: 0}
}

func newTestMatch(p1Board, p2Board []*game.CardInstance) *game.Match {
	return &game.Match{
		ID:         "m1",
		Players:    [2]string{"p1", "p2"},
		TurnNumber: 2,
		Upkeep:     2,
		Phase:      game.PhaseCommit,
		PlayerStates: map[string]*game.PlayerState{
			"p1": {Board: p1Board},
			"p2": {Board: p2Board},
		},
		ReadyPlayers:             map[string]bool{},
		DeclaredAttacks:          map[string][]*game.Attack{},
		PendingCommitAttacks:     map[string][]*game.Attack{},
		CommitRolls:              map[string]game.CommitRollEntry{},
		CommitExecutions:         map[string]*game.CommitExecution{},
		CommitCompleted:          map[string]bool{},
		CommitAnimationCompleted: map[string]bool{},
		LastDrawnCards:           map[string][]*game.CardInstance{},
	}
}

func declare(m *game.Match, playerID string, slot int, targetSlot int, abilityIdx int) *game.Attack {
	a := &game.Attack{
		ID:                      game.AttackID(playerID, slot, game.SideOpponent, targetSlot),
		AttackerID:              playerID,
		AttackerSlotIndex:       slot,
		TargetSide:              game.SideOpponent,
		TargetSlotIndex:         targetSlot,
		DeclaredTargetSlotIndex: targetSlot,
		SelectedAbilityIndex:    abilityIdx,
	}
	m.PendingCommitAttacks[playerID] = append(m.PendingCommitAttacks[playerID], a)
	return a
}

func setRoll(m *game.Match, attackID string, stat game.RollType, outcome float64, at time.Time) {
	m.CommitRolls[game.RollKey(attackID, stat)] = game.CommitRollEntry{
		AttackID:    attackID,
		RollType:    stat,
		Roll:        game.RollPayload{Outcome: outcome},
		SubmittedAt: at,
	}
}

func TestOrderedCommitAttacks_SpeedAndTieBreaks(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	m := newTestMatch(
		[]*game.CardInstance{boardCard("a", cat, 0, 10), boardCard("b", cat, 1, 10)},
		[]*game.CardInstance{boardCard("c", cat, 0, 10)},
	)
	base := time.Now()
	a1 := declare(m, "p1", 0, 0, 0)
	a2 := declare(m, "p1", 1, 0, 0)
	a3 := declare(m, "p2", 0, 0, 0)

	setRoll(m, a1.ID, game.RollSpeed, 3, base)
	setRoll(m, a2.ID, game.RollSpeed, 5, base.Add(time.Second))
	// Same speed as a2 but submitted earlier: a3 wins the tie.
	setRoll(m, a3.ID, game.RollSpeed, 5, base)

	order := OrderedCommitAttacks(m)
	if len(order) != 3 {
		t.Fatalf("expected 3 ordered attacks, got %d", len(order))
	}
	if order[0].ID != a3.ID || order[1].ID != a2.ID || order[2].ID != a1.ID {
		t.Fatalf("unexpected order: %s, %s, %s", order[0].ID, order[1].ID, order[2].ID)
	}

	// Deterministic: same inputs give the same order every time.
	for i := 0; i < 5; i++ {
		again := OrderedCommitAttacks(m)
		for j := range again {
			if again[j].ID != order[j].ID {
				t.Fatalf("ordering not deterministic at position %d", j)
			}
		}
	}
}

func TestOrderedCommitAttacks_FrostbiteReducesInitiative(t *testing.T) {
	cat := testCatalog("C", game.TypeWater, damageAbility(), game.Ability{})
	frosted := boardCard("a", cat, 0, 10)
	frosted.FrostbiteStacks = 3
	frosted.FrostbiteTurnsRemaining = 2
	m := newTestMatch(
		[]*game.CardInstance{frosted},
		[]*game.CardInstance{boardCard("b", cat, 0, 10)},
	)
	base := time.Now()
	a1 := declare(m, "p1", 0, 0, 0)
	a2 := declare(m, "p2", 0, 0, 0)
	setRoll(m, a1.ID, game.RollSpeed, 6, base)
	setRoll(m, a2.ID, game.RollSpeed, 4, base)

	// 6 - 3 stacks = 3 effective, so the unfrosted 4 goes first.
	order := OrderedCommitAttacks(m)
	if order[0].ID != a2.ID {
		t.Fatalf("expected frostbitten attacker to lose initiative, got %s first", order[0].ID)
	}
}

func TestApplyCommitEffects_DamageAndTypeAdvantage(t *testing.T) {
	fire := testCatalog("Fire", game.TypeFire, damageAbility(), game.Ability{})
	nature := testCatalog("Nature", game.TypeNature, damageAbility(), game.Ability{})
	attacker := boardCard("a", fire, 0, 10)
	target := boardCard("b", nature, 0, 10)
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{target})
	a1 := declare(m, "p1", 0, 0, 0)
	setRoll(m, a1.ID, game.RollSpeed, 4, time.Now())
	setRoll(m, a1.ID, game.RollDamage, 3, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[a1.ID]
	if exec == nil || !exec.Executed {
		t.Fatalf("expected attack to execute")
	}
	if !exec.TypeAdvantage {
		t.Fatalf("expected fire to have advantage over nature")
	}
	// ceil(3 * 1.5) = 5
	if exec.ResolvedValue != 5 || exec.AppliedDamage != 5 {
		t.Fatalf("expected adjusted damage 5, got resolved=%d applied=%d", exec.ResolvedValue, exec.AppliedDamage)
	}
	if target.Health != 5 {
		t.Fatalf("expected target at 5 health, got %d", target.Health)
	}
	if m.CommitAllRolledAt == nil {
		t.Fatalf("expected CommitAllRolledAt to be stamped")
	}
}

func TestApplyCommitEffects_DamageRemovesDefeatedToDiscard(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	target := boardCard("b", cat, 0, 3)
	m := newTestMatch([]*game.CardInstance{boardCard("a", cat, 0, 10)}, []*game.CardInstance{target})
	a1 := declare(m, "p1", 0, 0, 0)
	setRoll(m, a1.ID, game.RollSpeed, 4, time.Now())
	setRoll(m, a1.ID, game.RollDamage, 4, time.Now())

	ApplyCommitEffects(m)

	if !m.CommitExecutions[a1.ID].TargetDefeated {
		t.Fatalf("expected target defeated")
	}
	p2 := m.StateFor("p2")
	if len(p2.Board) != 0 || len(p2.Discard) != 1 || p2.Discard[0].ID != "b" {
		t.Fatalf("expected defeated card moved to discard, board=%d discard=%d", len(p2.Board), len(p2.Discard))
	}
}

func TestApplyCommitEffects_SilenceSuppressesSlowerAttack(t *testing.T) {
	silencerCat := testCatalog("Hex", game.TypeArcane, game.Ability{
		Name: "Hush", EffectID: game.EffectDamageEnemy,
		ValueSourceType: game.ValueSourceFixed, ValueSourceFixed: 1,
		BuffID: game.BuffSilence, BuffTarget: game.BuffTargetEnemy, DurationTurns: 1,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	silencer := boardCard("a", silencerCat, 0, 10)
	victim := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{silencer}, []*game.CardInstance{victim})
	fast := declare(m, "p1", 0, 0, 0)
	slow := declare(m, "p2", 0, 1, 0)
	setRoll(m, fast.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, slow.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, slow.ID, game.RollDamage, 5, time.Now())

	ApplyCommitEffects(m)

	if !m.CommitExecutions[fast.ID].BuffApplied {
		t.Fatalf("expected silence to be applied")
	}
	slowExec := m.CommitExecutions[slow.ID]
	if slowExec.Executed || slowExec.Reason != ReasonSilenced {
		t.Fatalf("expected slower attack suppressed by silence, got executed=%v reason=%q", slowExec.Executed, slowExec.Reason)
	}
	if silencer.Health != 10 {
		t.Fatalf("expected silencer untouched, got %d", silencer.Health)
	}
}

func TestApplyCommitEffects_SilenceDoesNotAffectFasterAttack(t *testing.T) {
	silencerCat := testCatalog("Hex", game.TypeArcane, game.Ability{
		Name: "Hush", EffectID: game.EffectDamageEnemy,
		ValueSourceType: game.ValueSourceFixed, ValueSourceFixed: 1,
		BuffID: game.BuffSilence, BuffTarget: game.BuffTargetEnemy, DurationTurns: 1,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	silencer := boardCard("a", silencerCat, 0, 10)
	victim := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{silencer}, []*game.CardInstance{victim})
	slow := declare(m, "p1", 0, 0, 0)
	fast := declare(m, "p2", 0, 0, 0)
	setRoll(m, slow.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, fast.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, fast.ID, game.RollDamage, 4, time.Now())

	ApplyCommitEffects(m)

	fastExec := m.CommitExecutions[fast.ID]
	if !fastExec.Executed {
		t.Fatalf("expected faster attack to execute before being silenced, reason=%q", fastExec.Reason)
	}
	if victim.SilenceTurnsRemaining != 1 {
		t.Fatalf("expected silence applied afterwards, got %d", victim.SilenceTurnsRemaining)
	}
}

func TestApplyCommitEffects_TauntCapturesLaterAttack(t *testing.T) {
	taunterCat := testCatalog("Wall", game.TypeWater, game.Ability{
		Name: "Guard", EffectID: game.EffectRetaliationBonus,
		ValueSourceType: game.ValueSourceFixed, ValueSourceFixed: 2,
		BuffID: game.BuffTaunt, BuffTarget: game.BuffTargetSelf, DurationTurns: 2,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	taunter := boardCard("a", taunterCat, 0, 10)
	squishy := boardCard("b", cat, 1, 4)
	enemy := boardCard("c", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{taunter, squishy}, []*game.CardInstance{enemy})

	tauntAtt := declare(m, "p1", 0, 0, 0)
	aimAtSquishy := declare(m, "p2", 0, 1, 0)
	setRoll(m, tauntAtt.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, aimAtSquishy.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, aimAtSquishy.ID, game.RollDamage, 3, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[aimAtSquishy.ID]
	if !exec.Redirected || exec.TargetSlotIndex != 0 {
		t.Fatalf("expected redirect onto taunter at slot 0, got redirected=%v slot=%d", exec.Redirected, exec.TargetSlotIndex)
	}
	if exec.DeclaredTargetSlotIndex != 1 {
		t.Fatalf("expected the declared slot preserved in the log, got %d", exec.DeclaredTargetSlotIndex)
	}
	if squishy.Health != 4 {
		t.Fatalf("expected original target untouched, got %d", squishy.Health)
	}
	if taunter.Health != 10-3 {
		t.Fatalf("expected taunter to absorb the hit, got %d", taunter.Health)
	}
}

func TestApplyCommitEffects_TauntIgnoredWhenAppliedAfter(t *testing.T) {
	taunterCat := testCatalog("Wall", game.TypeWater, game.Ability{
		Name: "Guard", EffectID: game.EffectRetaliationBonus,
		ValueSourceType: game.ValueSourceFixed, ValueSourceFixed: 2,
		BuffID: game.BuffTaunt, BuffTarget: game.BuffTargetSelf, DurationTurns: 2,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	taunter := boardCard("a", taunterCat, 0, 10)
	squishy := boardCard("b", cat, 1, 8)
	enemy := boardCard("c", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{taunter, squishy}, []*game.CardInstance{enemy})

	tauntAtt := declare(m, "p1", 0, 0, 0)
	aimAtSquishy := declare(m, "p2", 0, 1, 0)
	setRoll(m, tauntAtt.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, aimAtSquishy.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, aimAtSquishy.ID, game.RollDamage, 3, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[aimAtSquishy.ID]
	if exec.Redirected {
		t.Fatalf("attack resolved before taunt landed should not redirect")
	}
	if squishy.Health != 5 {
		t.Fatalf("expected original target hit for 3, got %d", squishy.Health)
	}
}

func TestApplyCommitEffects_Retaliation(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	attacker := boardCard("a", cat, 0, 10)
	defender := boardCard("b", cat, 0, 10)
	defender.RetaliationBonus = 2
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{defender})

	att := declare(m, "p1", 0, 0, 0)
	counter := declare(m, "p2", 0, 0, 0)
	setRoll(m, att.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, att.ID, game.RollDamage, 4, time.Now())
	setRoll(m, att.ID, game.RollDefense, 3, time.Now())
	setRoll(m, counter.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, counter.ID, game.RollDamage, 5, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[att.ID]
	if exec.Retaliation == nil {
		t.Fatalf("expected retaliation against the first strike")
	}
	r := exec.Retaliation
	// base 5 + bonus 2 = 7, defense 3 -> 4 applied, 0 remaining.
	if r.BaseDamage != 5 || r.RetaliationBonus != 2 || r.AppliedDamage != 4 || r.DefenseRemaining != 0 {
		t.Fatalf("unexpected retaliation figures: %+v", r)
	}
	// 10 - 4 retaliation - 5 from the counter's own execution.
	if attacker.Health != 1 {
		t.Fatalf("expected attacker at 1 health after the full pass, got %d", attacker.Health)
	}
}

func TestApplyCommitEffects_RetaliationFullyBlocked(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	attacker := boardCard("a", cat, 0, 10)
	defender := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{defender})

	att := declare(m, "p1", 0, 0, 0)
	counter := declare(m, "p2", 0, 0, 0)
	setRoll(m, att.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, att.ID, game.RollDamage, 2, time.Now())
	setRoll(m, att.ID, game.RollDefense, 6, time.Now())
	setRoll(m, counter.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, counter.ID, game.RollDamage, 4, time.Now())

	ApplyCommitEffects(m)

	r := m.CommitExecutions[att.ID].Retaliation
	if r == nil {
		t.Fatalf("expected retaliation record even when fully blocked")
	}
	if r.AppliedDamage != 0 || r.DefenseRemaining != 2 {
		t.Fatalf("expected blocked retaliation with 2 defense remaining, got %+v", r)
	}
	// Only the counter's own later execution lands: 10 - 4.
	if attacker.Health != 6 {
		t.Fatalf("expected attacker at 6 health, got %d", attacker.Health)
	}
}

func TestApplyCommitEffects_MutualKill(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	attacker := boardCard("a", cat, 0, 3)
	defender := boardCard("b", cat, 0, 3)
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{defender})

	att := declare(m, "p1", 0, 0, 0)
	counter := declare(m, "p2", 0, 0, 0)
	setRoll(m, att.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, att.ID, game.RollDamage, 5, time.Now())
	setRoll(m, counter.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, counter.ID, game.RollDamage, 5, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[att.ID]
	if !exec.TargetDefeated {
		t.Fatalf("expected defender defeated")
	}
	if exec.Retaliation == nil || !exec.Retaliation.AttackerDefeated {
		t.Fatalf("expected mutual kill via retaliation, got %+v", exec.Retaliation)
	}
	if len(m.StateFor("p1").Board) != 0 || len(m.StateFor("p2").Board) != 0 {
		t.Fatalf("expected both boards empty after mutual kill")
	}
	// The defender's own attack then finds its attacker gone.
	counterExec := m.CommitExecutions[counter.ID]
	if counterExec.Executed || counterExec.Reason != ReasonAttackerRemoved {
		t.Fatalf("expected counter attack skipped, got %+v", counterExec)
	}
}

func TestApplyCommitEffects_LifeStealNetHealing(t *testing.T) {
	arcane := testCatalog("Hex", game.TypeArcane, game.Ability{
		Name: "Drain", EffectID: game.EffectLifeSteal,
		ValueSourceType: game.ValueSourceRoll, ValueSourceStat: game.RollDamage,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	attacker := boardCard("a", arcane, 0, 6)
	defender := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{defender})

	att := declare(m, "p1", 0, 0, 0)
	counter := declare(m, "p2", 0, 0, 0)
	setRoll(m, att.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, att.ID, game.RollDamage, 4, time.Now())
	setRoll(m, att.ID, game.RollDefense, 1, time.Now())
	setRoll(m, counter.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, counter.ID, game.RollDamage, 3, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[att.ID]
	if exec.LifeStealHealing != 4 {
		t.Fatalf("expected gross healing 4, got %d", exec.LifeStealHealing)
	}
	// Retaliation: 3 - 1 defense = 2 applied, so net healing is 2.
	if exec.LifeStealNetHealing != 2 {
		t.Fatalf("expected net healing 2, got %d", exec.LifeStealNetHealing)
	}
	// 6 + 4 healed - 2 retaliated - 3 from the counter's own execution.
	if attacker.Health != 5 {
		t.Fatalf("expected attacker at 5 health, got %d", attacker.Health)
	}
	// 10 - 4 life steal - 4 retaliation against the counter.
	if defender.Health != 2 {
		t.Fatalf("expected defender at 2 health, got %d", defender.Health)
	}
}

func TestApplyCommitEffects_DisruptionReducesDamage(t *testing.T) {
	disruptCat := testCatalog("Rift", game.TypeArcane, game.Ability{
		Name: "Unravel", EffectID: game.EffectDisruption,
		ValueSourceType: game.ValueSourceRoll, ValueSourceStat: game.RollDamage,
		EnemyValueSourceStat: game.RollDamage,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	disruptor := boardCard("a", disruptCat, 0, 10)
	enemy := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{disruptor}, []*game.CardInstance{enemy})

	dis := declare(m, "p1", 0, 0, 0)
	att := declare(m, "p2", 0, 0, 0)
	setRoll(m, dis.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, dis.ID, game.RollDamage, 3, time.Now())
	setRoll(m, att.ID, game.RollSpeed, 2, time.Now())
	setRoll(m, att.ID, game.RollDamage, 5, time.Now())

	ApplyCommitEffects(m)

	disExec := m.CommitExecutions[dis.ID]
	if disExec.DisruptedAttackID != att.ID || disExec.DisruptedStat != game.RollDamage {
		t.Fatalf("expected disruption registered against %s, got %+v", att.ID, disExec)
	}
	if disExec.AppliedDamage != 0 {
		t.Fatalf("disruption with a queued target must not deal direct damage")
	}
	// 5 rolled - 3 reduction = 2 damage.
	if disruptor.Health != 8 {
		t.Fatalf("expected disruptor to take 2 damage, got health %d", disruptor.Health)
	}
}

func TestApplyCommitEffects_DisruptionSpeedReordersPass(t *testing.T) {
	disruptCat := testCatalog("Tide", game.TypeWater, game.Ability{
		Name: "Undertow", EffectID: game.EffectDisruption,
		ValueSourceType: game.ValueSourceRoll, ValueSourceStat: game.RollDamage,
		EnemyValueSourceStat: game.RollSpeed,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	disruptor := boardCard("a", disruptCat, 0, 10)
	ally := boardCard("b", cat, 1, 10)
	enemy := boardCard("c", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{disruptor, ally}, []*game.CardInstance{enemy})

	dis := declare(m, "p1", 0, 0, 0)
	allyAtt := declare(m, "p1", 1, 0, 0)
	enemyAtt := declare(m, "p2", 0, 0, 0)
	setRoll(m, dis.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, dis.ID, game.RollDamage, 4, time.Now())
	setRoll(m, allyAtt.ID, game.RollSpeed, 3, time.Now())
	setRoll(m, allyAtt.ID, game.RollDamage, 2, time.Now())
	setRoll(m, enemyAtt.ID, game.RollSpeed, 5, time.Now())
	setRoll(m, enemyAtt.ID, game.RollDamage, 2, time.Now())

	ApplyCommitEffects(m)

	// Enemy rolled 5 but was disrupted for 4: effective 1, so the ally's
	// 3 now goes second and the enemy resolves last.
	want := []string{dis.ID, allyAtt.ID, enemyAtt.ID}
	for i, id := range want {
		if m.CommitOrder[i] != id {
			t.Fatalf("expected order %v, got %v", want, m.CommitOrder)
		}
	}
}

func TestApplyCommitEffects_DisruptionFallbackDamage(t *testing.T) {
	disruptCat := testCatalog("Rift", game.TypeArcane, game.Ability{
		Name: "Unravel", EffectID: game.EffectDisruption,
		ValueSourceType: game.ValueSourceRoll, ValueSourceStat: game.RollDamage,
		EnemyValueSourceStat: game.RollDamage,
	}, game.Ability{})
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})

	disruptor := boardCard("a", disruptCat, 0, 10)
	idle := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{disruptor}, []*game.CardInstance{idle})

	dis := declare(m, "p1", 0, 0, 0)
	setRoll(m, dis.ID, game.RollSpeed, 6, time.Now())
	setRoll(m, dis.ID, game.RollDamage, 3, time.Now())

	ApplyCommitEffects(m)

	exec := m.CommitExecutions[dis.ID]
	if exec.DisruptionFallbackDamage != 3 || exec.AppliedDamage != 3 {
		t.Fatalf("expected fallback damage 3, got %+v", exec)
	}
	if idle.Health != 7 {
		t.Fatalf("expected idle target at 7 health, got %d", idle.Health)
	}
}

func TestApplyCommitEffects_EfctRollKeyAlias(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	attacker := boardCard("a", cat, 0, 10)
	target := boardCard("b", cat, 0, 10)
	m := newTestMatch([]*game.CardInstance{attacker}, []*game.CardInstance{target})
	att := declare(m, "p1", 0, 0, 0)
	setRoll(m, att.ID, game.RollSpeed, 4, time.Now())
	// Damage submitted under the legacy "efct" key.
	setRoll(m, att.ID, game.RollEffect, 3, time.Now())

	ApplyCommitEffects(m)

	if m.CommitExecutions[att.ID].AppliedDamage != 3 {
		t.Fatalf("expected efct roll to resolve as damage, got %+v", m.CommitExecutions[att.ID])
	}
}

func TestEnterCommitPhase_SnapshotsDeclaredAttacks(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	m := newTestMatch([]*game.CardInstance{boardCard("a", cat, 0, 10)}, []*game.CardInstance{boardCard("b", cat, 0, 10)})
	m.Phase = game.PhaseDecision
	declared := &game.Attack{ID: game.AttackID("p1", 0, game.SideOpponent, 0), AttackerID: "p1", TargetSide: game.SideOpponent}
	m.DeclaredAttacks["p1"] = []*game.Attack{declared}

	EnterCommitPhase(m)

	if m.Phase != game.PhaseCommit {
		t.Fatalf("expected commit phase")
	}
	pending := m.PendingCommitAttacks["p1"]
	if len(pending) != 1 || pending[0] == declared {
		t.Fatalf("expected a deep copy of declared attacks")
	}
	if m.CommitAllRolledAt != nil || len(m.CommitRolls) != 0 {
		t.Fatalf("expected commit bookkeeping reset")
	}
}

func TestAdvanceToDecision_UpkeepCapAndCounters(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	m := newTestMatch([]*game.CardInstance{boardCard("a", cat, 0, 10)}, nil)
	m.TurnNumber = 10
	m.Upkeep = game.MaxUpkeep

	AdvanceToDecision(m)

	if m.TurnNumber != 11 {
		t.Fatalf("expected turn 11, got %d", m.TurnNumber)
	}
	if m.Upkeep != game.MaxUpkeep {
		t.Fatalf("upkeep must cap at %d, got %d", game.MaxUpkeep, m.Upkeep)
	}
	if m.Phase != game.PhaseDecision {
		t.Fatalf("expected decision phase")
	}
}

func TestAdvanceToDecision_DotTicksAndStackClearing(t *testing.T) {
	cat := testCatalog("C", game.TypeNature, damageAbility(), game.Ability{})
	card := boardCard("a", cat, 0, 10)
	card.PoisonStacks = 2
	card.PoisonTurnsRemaining = 1
	card.FireStacks = 1
	card.FireTurnsRemaining = 2
	card.FrostbiteStacks = 2
	card.FrostbiteTurnsRemaining = 1
	card.RetaliationBonus = 5
	m := newTestMatch([]*game.CardInstance{card}, nil)

	AdvanceToDecision(m)

	// One point per active type regardless of stack counts.
	if card.Health != 8 {
		t.Fatalf("expected 2 total dot damage, got health %d", card.Health)
	}
	if card.PoisonStacks != 0 || card.PoisonTurnsRemaining != 0 {
		t.Fatalf("expected poison cleared when timer expired, got stacks=%d turns=%d", card.PoisonStacks, card.PoisonTurnsRemaining)
	}
	if card.FireStacks != 1 || card.FireTurnsRemaining != 1 {
		t.Fatalf("expected fire still active, got stacks=%d turns=%d", card.FireStacks, card.FireTurnsRemaining)
	}
	if card.FrostbiteStacks != 0 || card.FrostbiteTurnsRemaining != 0 {
		t.Fatalf("expected frostbite decayed and cleared, got stacks=%d turns=%d", card.FrostbiteStacks, card.FrostbiteTurnsRemaining)
	}
	if card.RetaliationBonus != 0 {
		t.Fatalf("expected retaliation bonus reset, got %d", card.RetaliationBonus)
	}
}

func TestAdvanceToDecision_DotDeathGoesToDiscard(t *testing.T) {
	cat := testCatalog("C", game.TypeNature, damageAbility(), game.Ability{})
	card := boardCard("a", cat, 0, 1)
	card.PoisonStacks = 1
	card.PoisonTurnsRemaining = 2
	m := newTestMatch([]*game.CardInstance{card}, nil)

	AdvanceToDecision(m)

	ps := m.StateFor("p1")
	if len(ps.Board) != 0 || len(ps.Discard) != 1 {
		t.Fatalf("expected dot death to move card to discard, board=%d discard=%d", len(ps.Board), len(ps.Discard))
	}
}

func TestAdvanceToDecision_DrawsUpToHandCap(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	m := newTestMatch(nil, nil)
	ps := m.StateFor("p1")
	ps.Deck = []*game.CardInstance{boardCard("d1", cat, 0, 10), boardCard("d2", cat, 0, 10)}
	full := m.StateFor("p2")
	for i := 0; i < game.MaxHandSize; i++ {
		full.Hand = append(full.Hand, boardCard("h", cat, 0, 10))
	}
	full.Deck = []*game.CardInstance{boardCard("d3", cat, 0, 10)}

	AdvanceToDecision(m)

	if len(ps.Hand) != 1 || len(ps.Deck) != 1 {
		t.Fatalf("expected one card drawn, hand=%d deck=%d", len(ps.Hand), len(ps.Deck))
	}
	if len(m.LastDrawnCards["p1"]) != 1 || m.LastDrawnCards["p1"][0].ID != "d1" {
		t.Fatalf("expected drawn card recorded")
	}
	if len(full.Hand) != game.MaxHandSize || len(full.Deck) != 1 {
		t.Fatalf("full hand must not draw, hand=%d deck=%d", len(full.Hand), len(full.Deck))
	}
}

func TestCurrentTauntTarget_HighestHealthThenLowestSlot(t *testing.T) {
	cat := testCatalog("C", game.TypeFire, damageAbility(), game.Ability{})
	a := boardCard("a", cat, 0, 5)
	b := boardCard("b", cat, 1, 8)
	c := boardCard("c", cat, 2, 8)
	a.TauntTurnsRemaining = 1
	b.TauntTurnsRemaining = 1
	c.TauntTurnsRemaining = 1

	got := CurrentTauntTarget([]*game.CardInstance{a, b, c})
	if got == nil || got.ID != "b" {
		t.Fatalf("expected highest health with lowest slot to win, got %v", got)
	}
	if CurrentTauntTarget([]*game.CardInstance{boardCard("x", cat, 0, 5)}) != nil {
		t.Fatalf("expected nil when nothing taunts")
	}
}

func TestTypeBeatsChart(t *testing.T) {
	cases := []struct {
		a, d game.CardType
		want bool
	}{
		{game.TypeFire, game.TypeNature, true},
		{game.TypeNature, game.TypeArcane, true},
		{game.TypeArcane, game.TypeWater, true},
		{game.TypeWater, game.TypeFire, true},
		{game.TypeNature, game.TypeFire, false},
		{game.TypeFire, game.TypeFire, false},
	}
	for _, c := range cases {
		if TypeBeats(c.a, c.d) != c.want {
			t.Fatalf("TypeBeats(%s, %s) != %v", c.a, c.d, c.want)
		}
	}
}
