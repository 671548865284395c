package levelup

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
)

func TestSessionFullFlow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(testCharacter(1), testPool())

	if s.Step() != StepTierPreview {
		t.Fatalf("step = %s, want %s", s.Step(), StepTierPreview)
	}
	if a := s.Achievements(); len(a) != 1 || a[0].Tier != 2 || a[0].ClearsMarks {
		t.Fatalf("achievements = %+v", a)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("next from tier preview: %v", err)
	}

	s.SetAdvancements(IncreaseTraits, AddHP)
	want := []Step{StepTierPreview, StepAdvancementSelection, StepConfiguration, StepThresholdPreview, StepDomainCardSelection, StepCommit}
	if got := s.Steps(); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %v, want %v", got, want)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("next from advancements: %v", err)
	}
	if s.Step() != StepConfiguration {
		t.Fatalf("step = %s, want configuration", s.Step())
	}
	if err := s.Next(); !errors.Is(err, ErrSessionNotReady) {
		t.Fatalf("next without traits = %v, want ErrSessionNotReady", err)
	}

	s.SetTraits(daggerheart.TraitAgility, daggerheart.TraitKnowledge)
	s.SetNewExperienceName("Fast Learner")
	if err := s.Next(); err != nil {
		t.Fatalf("next from configuration: %v", err)
	}
	if got := s.ThresholdPreview(); got != (daggerheart.DamageThresholds{Minor: 1, Major: 2, Severe: 3}) {
		t.Fatalf("threshold preview = %+v", got)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("next from threshold preview: %v", err)
	}
	if s.CanProceed() {
		t.Fatal("card selection should require a card")
	}
	s.SetDomainCard("forceful-push")
	if err := s.Next(); err != nil {
		t.Fatalf("next from card selection: %v", err)
	}

	result, err := s.Commit(now)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	c := result.Character
	if c.Level != 2 {
		t.Fatalf("level = %d, want 2", c.Level)
	}
	if c.Traits.Agility != 1 || c.Traits.Knowledge != 1 {
		t.Fatalf("traits = %+v", c.Traits)
	}
	if !c.MarkedTraits[daggerheart.TraitAgility] || !c.MarkedTraits[daggerheart.TraitKnowledge] {
		t.Fatalf("marked = %v", c.MarkedTraits)
	}
	if len(c.Experiences) != 3 || c.Experiences[2] != (daggerheart.Experience{Name: "Fast Learner", Value: 2}) {
		t.Fatalf("experiences = %+v", c.Experiences)
	}
	if c.Proficiency != 2 {
		t.Fatalf("proficiency = %d, want 2", c.Proficiency)
	}
	if c.Vitals.HPMax != 8 {
		t.Fatalf("hp max = %d, want 8", c.Vitals.HPMax)
	}
	if c.Thresholds != (daggerheart.DamageThresholds{Minor: 1, Major: 2, Severe: 4}) {
		t.Fatalf("thresholds = %+v", c.Thresholds)
	}
	if !reflect.DeepEqual(c.DomainCardIDs, []string{"get-back-up", "forceful-push"}) {
		t.Fatalf("cards = %v", c.DomainCardIDs)
	}
	record, ok := c.History[2]
	if !ok || !reflect.DeepEqual(record, result.Record) {
		t.Fatalf("history[2] = %+v", c.History)
	}
	if record.HPSlots != 1 || len(record.Achievements) != 1 || !record.CommittedAt.Equal(now) {
		t.Fatalf("record = %+v", record)
	}

	if _, err := s.Commit(now); !errors.Is(err, ErrSessionCommitted) {
		t.Fatalf("second commit = %v, want ErrSessionCommitted", err)
	}
	if s.Back() {
		t.Fatal("back after commit")
	}
}

func TestSessionSkipsConfigurationAndKeepsSelections(t *testing.T) {
	s := NewSession(testCharacter(1), testPool())
	if s.Back() {
		t.Fatal("back from first step")
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	s.SetAdvancements(AddHP, AddStress)
	for _, step := range s.Steps() {
		if step == StepConfiguration {
			t.Fatal("configuration should be skipped")
		}
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepThresholdPreview {
		t.Fatalf("step = %s, want threshold preview", s.Step())
	}
	if !s.Back() || s.Step() != StepAdvancementSelection {
		t.Fatalf("back landed on %s", s.Step())
	}
	if got := s.Transaction().Advancements; !reflect.DeepEqual(got, []string{AddHP, AddStress}) {
		t.Fatalf("advancements = %v", got)
	}
}

func TestSessionCommitRequiresCommitStep(t *testing.T) {
	s := NewSession(testCharacter(1), testPool())
	if _, err := s.Commit(time.Now()); !errors.Is(err, ErrSessionNotReady) {
		t.Fatalf("commit = %v, want ErrSessionNotReady", err)
	}
}

func TestSessionAvailableDomainCards(t *testing.T) {
	s := NewSession(testCharacter(1), testPool())
	if got := len(s.AvailableDomainCards()); got != 4 {
		t.Fatalf("cards at level 2 = %d, want 4", got)
	}

	s = NewSession(testCharacter(4), testPool())
	s.SetAdvancements(Multiclass)
	s.SetMulticlass("wizard", "arcana")
	if got := len(s.AvailableDomainCards()); got != 6 {
		t.Fatalf("cards with multiclass = %d, want 6", got)
	}
}

func TestApplyRejectsInvalidTransaction(t *testing.T) {
	_, err := Apply(testCharacter(1), testPool(), Transaction{NewLevel: 2, Advancements: []string{AddHP}}, time.Now())
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("apply = %v, want ErrInvalidTransaction", err)
	}
}

func TestApplyMulticlassAndSubclass(t *testing.T) {
	c := testCharacter(4)
	result, err := Apply(c, testPool(), Transaction{
		NewLevel:          5,
		Advancements:      []string{Multiclass},
		MulticlassClassID: "wizard",
		MulticlassDomain:  "arcana",
		DomainCardID:      "rune-ward",
	}, time.Now())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if result.Character.Multiclass == nil || result.Character.Multiclass.Domain != "arcana" {
		t.Fatalf("multiclass = %+v", result.Character.Multiclass)
	}
	if len(result.Record.Achievements) != 1 || !result.Record.Achievements[0].MarksCleared {
		t.Fatalf("achievements = %+v", result.Record.Achievements)
	}

	next, err := Apply(result.Character, testPool(), Transaction{
		NewLevel:     6,
		Advancements: []string{SubclassCard, AddHP},
		DomainCardID: "bare-bones",
	}, time.Now())
	if err == nil {
		t.Fatalf("subclass after multiclass in tier should fail, got %+v", next.Record)
	}
}

func TestApplyGrantsAchievementsForSkippedLevels(t *testing.T) {
	c := testCharacter(4)
	c.MarkedTraits = map[string]bool{daggerheart.TraitAgility: true}

	result, err := Apply(c, testPool(), Transaction{
		NewLevel:     6,
		Advancements: []string{AddHP, AddStress},
		DomainCardID: "bare-bones",
	}, time.Now())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := result.Character
	if got.Proficiency != 2 {
		t.Fatalf("proficiency = %d, want 2", got.Proficiency)
	}
	if len(got.Experiences) != 3 || got.Experiences[2] != (daggerheart.Experience{Name: DefaultExperienceName, Value: 2}) {
		t.Fatalf("experiences = %+v", got.Experiences)
	}
	if len(got.MarkedTraits) != 0 {
		t.Fatalf("marked = %v, want none", got.MarkedTraits)
	}
	if len(result.Record.Achievements) != 1 || result.Record.Achievements[0].Level != 5 {
		t.Fatalf("achievements = %+v", result.Record.Achievements)
	}
}

func TestApplyAcrossTwoTierBoundaries(t *testing.T) {
	start := testCharacter(4)
	result, err := Apply(start, testPool(), Transaction{
		NewLevel:          9,
		Advancements:      []string{IncreaseProficiency},
		DomainCardID:      "bare-bones",
		NewExperienceName: "Sellsword",
	}, time.Now())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := result.Character
	if got.Proficiency != 4 {
		t.Fatalf("proficiency = %d, want 4", got.Proficiency)
	}
	names := []string{}
	for _, exp := range got.Experiences[2:] {
		names = append(names, exp.Name)
	}
	if !reflect.DeepEqual(names, []string{"Sellsword", DefaultExperienceName}) {
		t.Fatalf("new experiences = %v", names)
	}

	back, err := Delevel(got, 4)
	if err != nil {
		t.Fatalf("delevel: %v", err)
	}
	if back.Proficiency != start.Proficiency {
		t.Fatalf("proficiency after delevel = %d, want %d", back.Proficiency, start.Proficiency)
	}
	if !reflect.DeepEqual(back.Experiences, start.Experiences) {
		t.Fatalf("experiences after delevel = %+v", back.Experiences)
	}
}

func TestAchievementsBetween(t *testing.T) {
	tests := []struct {
		current, next int
		want          []int
	}{
		{1, 2, []int{2}},
		{2, 4, nil},
		{4, 6, []int{5}},
		{1, 10, []int{2, 5, 8}},
	}
	for _, tt := range tests {
		var got []int
		for _, a := range AchievementsBetween(tt.current, tt.next) {
			got = append(got, a.Level)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("AchievementsBetween(%d, %d) = %v, want %v", tt.current, tt.next, got, tt.want)
		}
	}
}
