package daggerheart

import "testing"

func TestTraitsValueAndAdd(t *testing.T) {
	traits := Traits{Agility: 1, Knowledge: -1}

	if got, ok := traits.Value("Agility"); !ok || got != 1 {
		t.Fatalf("Value(Agility) = %d, %v", got, ok)
	}
	if _, ok := traits.Value("luck"); ok {
		t.Fatal("expected unknown trait")
	}

	bumped := traits.Add(TraitKnowledge, 2)
	if bumped.Knowledge != 1 {
		t.Fatalf("knowledge = %d, want 1", bumped.Knowledge)
	}
	if traits.Knowledge != -1 {
		t.Fatal("Add must not mutate the receiver")
	}
	if unchanged := traits.Add("luck", 3); unchanged != traits {
		t.Fatalf("unknown trait changed traits: %+v", unchanged)
	}
}

func TestSubclassStageTransitions(t *testing.T) {
	next, ok := SubclassFoundation.Next()
	if !ok || next != SubclassSpecialization {
		t.Fatalf("foundation next = %s, %v", next, ok)
	}
	next, ok = SubclassSpecialization.Next()
	if !ok || next != SubclassMastery {
		t.Fatalf("specialization next = %s, %v", next, ok)
	}
	if _, ok := SubclassMastery.Next(); ok {
		t.Fatal("mastery has no next stage")
	}
	if got := SubclassMastery.Previous(); got != SubclassSpecialization {
		t.Fatalf("mastery previous = %s", got)
	}
	if got := SubclassFoundation.Previous(); got != SubclassFoundation {
		t.Fatalf("foundation previous = %s", got)
	}
}

func TestCharacterEquipment(t *testing.T) {
	c := Character{Inventory: []InventoryItem{
		{ID: "1", Location: LocationBackpack, Item: Item{Name: "Spare Armor", Kind: ItemKindArmor}},
		{ID: "2", Location: LocationArmor, Item: Item{Name: "Chainmail", Kind: ItemKindArmor}},
		{ID: "3", Location: LocationPrimaryWeapon, Item: Item{Name: "Longsword", Kind: ItemKindWeapon}},
	}}

	if armor := c.EquippedArmor(); armor == nil || armor.Name != "Chainmail" {
		t.Fatalf("armor = %+v", armor)
	}
	if weapon := c.PrimaryWeapon(); weapon == nil || weapon.Name != "Longsword" {
		t.Fatalf("primary = %+v", weapon)
	}
	if weapon := c.SecondaryWeapon(); weapon != nil {
		t.Fatalf("secondary = %+v, want nil", weapon)
	}

	var nilChar *Character
	if nilChar.EquippedArmor() != nil {
		t.Fatal("nil character has no armor")
	}
}

func TestCharacterDomainsAndMulticlass(t *testing.T) {
	c := Character{Domains: []string{"valor"}}
	if c.HasMulticlassed() {
		t.Fatal("expected no multiclass")
	}
	c.History = map[int]AdvancementRecord{5: {Level: 5, Multiclass: &Multiclass{Domain: "arcana"}}}
	if !c.HasMulticlassed() {
		t.Fatal("expected multiclass from history")
	}
	c.Multiclass = &Multiclass{Domain: "arcana"}
	domains := c.AllDomains()
	if len(domains) != 2 || domains[1] != "arcana" {
		t.Fatalf("domains = %v", domains)
	}
	if len(c.Domains) != 1 {
		t.Fatal("AllDomains must not grow the class domains")
	}
}

func TestCharacterClone(t *testing.T) {
	c := Character{
		DomainCardIDs: []string{"a"},
		MarkedTraits:  map[string]bool{TraitAgility: true},
		Modifiers:     map[string][]Modifier{StatEvasion: {{ID: "m1", Value: 1}}},
		Multiclass:    &Multiclass{Domain: "arcana"},
		History:       map[int]AdvancementRecord{2: {Level: 2}},
	}
	clone := c.Clone()
	clone.DomainCardIDs[0] = "b"
	clone.MarkedTraits[TraitAgility] = false
	clone.Modifiers[StatEvasion][0].Value = 9
	clone.Multiclass.Domain = "grace"
	delete(clone.History, 2)

	if c.DomainCardIDs[0] != "a" || !c.MarkedTraits[TraitAgility] || c.Modifiers[StatEvasion][0].Value != 1 {
		t.Fatal("clone aliases original collections")
	}
	if c.Multiclass.Domain != "arcana" || len(c.History) != 1 {
		t.Fatal("clone aliases multiclass or history")
	}
}

func TestDedupeModifiersKeepsFirstSeen(t *testing.T) {
	mods := []Modifier{
		{ID: "a", Name: "first", Value: 1},
		{ID: "b", Name: "other", Value: 2},
		{ID: "a", Name: "second", Value: 5},
	}
	got := DedupeModifiers(mods)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "first" {
		t.Fatalf("kept %q, want first-seen", got[0].Name)
	}
	if empty := DedupeModifiers(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("DedupeModifiers(nil) = %#v, want empty slice", empty)
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		location Location
		equipped bool
		valid    bool
	}{
		{LocationPrimaryWeapon, true, true},
		{LocationSecondaryWeapon, true, true},
		{LocationArmor, true, true},
		{LocationBackpack, false, true},
		{"saddlebag", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.location), func(t *testing.T) {
			if got := tt.location.Equipped(); got != tt.equipped {
				t.Fatalf("Equipped() = %v, want %v", got, tt.equipped)
			}
			if got := tt.location.Valid(); got != tt.valid {
				t.Fatalf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
