package scenario

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"
)

const progression = `local scene = Scenario.new("progression")
scene:card({id = "get-back-up", domain = "valor", level = 1})
scene:card({id = "forceful-push", domain = "valor", level = 2})
scene:card({id = "bare-bones", data = {domain = "valor", level = 1}})

scene:character({
  id = "c1",
  name = "Marlowe",
  class = "guardian",
  hp = 7,
  evasion = 9,
  domains = {"valor"},
  cards = {"get-back-up"},
  traits = {agility = 1, strength = 2},
  experiences = {{name = "Blacksmith", value = 2}, {name = "Sailor", value = 2}},
  items = {
    {id = "inv-armor", name = "Leather Armor", kind = "armor", base_score = 3, base_thresholds = "6/13"},
    {id = "inv-sword", name = "Broadsword", kind = "weapon", damage = "d8", location = "primary_weapon"},
  },
})
scene:equip("inv-armor", "armor")
scene:expect({level = 1, armor_score = 3, major = 6, severe = 13, primary_damage = "1d8"})

-- Level 2 opens tier 2.
scene:level_up({
  advancements = {"increase_traits", "increase_experience"},
  traits = {"agility", "strength"},
  experiences = {"Blacksmith", 2},
  domain_card = "forceful-push",
  experience_name = "Duelist",
})
scene:expect({
  level = 2,
  proficiency = 2,
  primary_damage = "2d8",
  traits = {agility = 2, strength = 3},
  experiences = {Blacksmith = 3, Sailor = 3, Duelist = 2},
  marked = {"agility", "strength"},
  cards = {"get-back-up", "forceful-push"},
  history = 1,
})

-- Marked traits cannot be raised again in the same tier.
scene:level_up({
  advancements = {"increase_traits", "add_hp"},
  traits = {"agility", "finesse"},
  domain_card = "bare-bones",
  expect_error = "LEVELUP_TRAIT_MARKED",
})

scene:level_up({advancements = {"add_hp", "increase_evasion"}, domain_card = "bare-bones"})
scene:expect({level = 3, hp_max = 8, evasion = 10})

scene:delevel(2, {confirm = false, expect_error = "LEVELUP_DELEVEL_NOT_CONFIRMED"})
scene:delevel(1)
scene:expect({
  level = 1,
  hp_max = 7,
  evasion = 9,
  proficiency = 1,
  experience_count = 2,
  traits = {agility = 1, strength = 2},
  marked = {},
  cards = {"get-back-up"},
  history = 0,
})

return scene
`

func runFixture(t *testing.T, content string, cfg Config) error {
	t.Helper()
	path := writeScenarioFixture(t, content)
	return RunFile(context.Background(), cfg, path)
}

func TestRunFileProgression(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "game.db")
	if err := runFixture(t, progression, cfg); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
}

func TestRunFileThrowawayStore(t *testing.T) {
	if err := runFixture(t, progression, DefaultConfig()); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
}

const failingExpectation = `local scene = Scenario.new("wrong")
scene:character({id = "c1", name = "Marlowe", hp = 7})
scene:expect({level = 4, hp_max = 7})
return scene
`

func TestStrictAssertionsFail(t *testing.T) {
	err := runFixture(t, failingExpectation, DefaultConfig())
	if err == nil {
		t.Fatal("expected assertion failure")
	}
	if !strings.Contains(err.Error(), "step 2 (expect): level = 1, want 4") {
		t.Fatalf("error = %v", err)
	}
}

func TestLogOnlyAssertionsContinue(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Assertions = AssertionLogOnly
	cfg.Logger = log.New(&buf, "", 0)

	if err := runFixture(t, failingExpectation, cfg); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if !strings.Contains(buf.String(), "expectation failed: level = 1, want 4") {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestExpectWithoutCharacterFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assertions = AssertionLogOnly
	err := runFixture(t, `local scene = Scenario.new("empty")
scene:expect({level = 1})
return scene
`, cfg)
	if err == nil || !strings.Contains(err.Error(), "expect requires an active character") {
		t.Fatalf("error = %v", err)
	}
}

func TestLevelUpExpectedErrorMissing(t *testing.T) {
	err := runFixture(t, `local scene = Scenario.new("unexpected")
scene:card({id = "forceful-push", domain = "valor", level = 2})
scene:character({id = "c1", name = "Marlowe", domains = {"valor"}})
scene:level_up({advancements = {"add_hp", "add_stress"}, domain_card = "forceful-push", expect_error = "LEVELUP_SLOT_BUDGET"})
return scene
`, DefaultConfig())
	if err == nil || !strings.Contains(err.Error(), "level-up validated, want LEVELUP_SLOT_BUDGET") {
		t.Fatalf("error = %v", err)
	}
}

func TestReadHelpers(t *testing.T) {
	args := map[string]any{
		"name":   "Marlowe",
		"level":  3,
		"ratio":  1.5,
		"flag":   "yes",
		"list":   []any{" a ", "", 3, "b"},
		"traits": map[string]any{"agility": 2, "bad": "x"},
	}
	if got := requiredString(args, "name"); got != "Marlowe" {
		t.Fatalf("requiredString = %q", got)
	}
	if got, ok := readInt(args, "ratio"); !ok || got != 1 {
		t.Fatalf("readInt(ratio) = %d, %v", got, ok)
	}
	if got := optionalInt(args, "missing", 7); got != 7 {
		t.Fatalf("optionalInt fallback = %d", got)
	}
	if !optionalBool(args, "flag", false) {
		t.Fatal("optionalBool(yes) = false")
	}
	if got := readStringSlice(args, "list"); strings.Join(got, ",") != "a,b" {
		t.Fatalf("readStringSlice = %v", got)
	}
	if got := readIntMap(args, "traits"); len(got) != 1 || got["agility"] != 2 {
		t.Fatalf("readIntMap = %v", got)
	}
	if got := stringValue(3); got != "3" {
		t.Fatalf("stringValue(3) = %q", got)
	}
}
