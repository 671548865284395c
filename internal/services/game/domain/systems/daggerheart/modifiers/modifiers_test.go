package modifiers

import (
	"testing"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
)

func strPtr(s string) *string { return &s }

func TestExtractEmptyInputs(t *testing.T) {
	if got := Extract(nil, daggerheart.StatEvasion); got == nil || len(got) != 0 {
		t.Fatalf("nil character = %#v, want empty", got)
	}
	if got := Extract(&daggerheart.Character{}, daggerheart.StatEvasion); len(got) != 0 {
		t.Fatalf("empty inventory = %#v, want empty", got)
	}
}

func TestExtractIgnoresBackpack(t *testing.T) {
	c := &daggerheart.Character{Inventory: []daggerheart.InventoryItem{{
		ID:       "inv-1",
		Location: daggerheart.LocationBackpack,
		Item: daggerheart.Item{Name: "Spare Shield", Data: daggerheart.ItemData{
			Modifiers: []daggerheart.ItemModifier{{Target: daggerheart.StatArmorScore, Value: 2}},
			Feature:   "+1 to armor score",
		}},
	}}}
	for _, stat := range daggerheart.StatKeys() {
		if got := Extract(c, stat); len(got) != 0 {
			t.Fatalf("Extract(%s) = %+v, want empty", stat, got)
		}
	}
}

func TestExtractStructuredModifiers(t *testing.T) {
	c := &daggerheart.Character{Inventory: []daggerheart.InventoryItem{{
		ID:       "inv-1",
		Location: daggerheart.LocationArmor,
		Item: daggerheart.Item{Name: "Elundrian Chain", Data: daggerheart.ItemData{
			Modifiers: []daggerheart.ItemModifier{
				{Target: daggerheart.StatEvasion, Value: 1},
				{Target: daggerheart.StatArmorScore, Value: float64(-1)},
				{Target: daggerheart.StatEvasion, Value: "proficiency"},
			},
			// Structured modifiers win over text.
			Feature: "+5 to evasion",
		}},
	}}}

	got := Extract(c, daggerheart.StatEvasion)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Value != 1 || got[0].Name != "Elundrian Chain" || got[0].Source != daggerheart.SourceSystem {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Numeric() || got[1].Raw != "proficiency" || got[1].Value != 0 {
		t.Fatalf("non-numeric value = %+v, want raw passthrough", got[1])
	}
	if got[0].ID == got[1].ID {
		t.Fatal("modifier ids must be unique per entry")
	}

	armor := Extract(c, daggerheart.StatArmorScore)
	if len(armor) != 1 || armor[0].Value != -1 {
		t.Fatalf("armor = %+v", armor)
	}
}

func TestExtractFeatureTextFallback(t *testing.T) {
	tests := []struct {
		name string
		data daggerheart.ItemData
		stat string
		want []int
	}{
		{
			name: "feature with bonus word",
			data: daggerheart.ItemData{Feature: "Sturdy: +1 bonus to Evasion"},
			stat: daggerheart.StatEvasion,
			want: []int{1},
		},
		{
			name: "underscored stat matches spaced text",
			data: daggerheart.ItemData{Feature: "Heavy: -1 to Evasion; +2 to hit points"},
			stat: daggerheart.StatHitPoints,
			want: []int{2},
		},
		{
			name: "feat text overrides feature text",
			data: daggerheart.ItemData{Feature: "Warded", FeatText: strPtr("+1 to stress"), FeatureText: "+3 to stress"},
			stat: daggerheart.StatStress,
			want: []int{1},
		},
		{
			name: "feature text used without feat text",
			data: daggerheart.ItemData{Feature: "Warded", FeatureText: "+3 to stress"},
			stat: daggerheart.StatStress,
			want: []int{3},
		},
		{
			name: "multiple matches",
			data: daggerheart.ItemData{Feature: "+1 to armor score and another +2 to armor_score"},
			stat: daggerheart.StatArmorScore,
			want: []int{1, 2},
		},
		{
			name: "no match",
			data: daggerheart.ItemData{Feature: "Reliable: +1 to attack rolls"},
			stat: daggerheart.StatEvasion,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &daggerheart.Character{Inventory: []daggerheart.InventoryItem{{
				ID:       "inv-1",
				Location: daggerheart.LocationPrimaryWeapon,
				Item:     daggerheart.Item{Name: "Item", Data: tt.data},
			}}}
			got := Extract(c, tt.stat)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, value := range tt.want {
				if got[i].Value != value {
					t.Fatalf("modifier %d = %d, want %d", i, got[i].Value, value)
				}
			}
		})
	}
}

func TestFromHistory(t *testing.T) {
	c := &daggerheart.Character{History: map[int]daggerheart.AdvancementRecord{
		3: {Level: 3, StressSlots: 1},
		2: {Level: 2, HPSlots: 1, EvasionGained: 1},
		4: {Level: 4, HPSlots: 2},
	}}

	hp := FromHistory(c, daggerheart.StatHitPoints)
	if len(hp) != 2 || hp[0].ID != "level-2-hit_points" || Sum(hp) != 3 {
		t.Fatalf("hp = %+v", hp)
	}
	if got := Sum(FromHistory(c, daggerheart.StatStress)); got != 1 {
		t.Fatalf("stress = %d, want 1", got)
	}
	if got := Sum(FromHistory(c, daggerheart.StatEvasion)); got != 1 {
		t.Fatalf("evasion = %d, want 1", got)
	}
	if got := FromHistory(c, daggerheart.StatArmorScore); len(got) != 0 {
		t.Fatalf("armor = %+v, want empty", got)
	}
}

func TestSystemAndUser(t *testing.T) {
	c := &daggerheart.Character{
		Inventory: []daggerheart.InventoryItem{{
			ID:       "inv-1",
			Location: daggerheart.LocationArmor,
			Item: daggerheart.Item{Name: "Plate", Data: daggerheart.ItemData{
				Modifiers: []daggerheart.ItemModifier{{Target: daggerheart.StatHitPoints, Value: 1}},
			}},
		}},
		History: map[int]daggerheart.AdvancementRecord{2: {Level: 2, HPSlots: 1}},
		Modifiers: map[string][]daggerheart.Modifier{
			daggerheart.StatHitPoints: {
				{ID: "u1", Name: "Blessing", Value: 2, Source: daggerheart.SourceUser},
				{ID: "u1", Name: "Duplicate", Value: 9, Source: daggerheart.SourceUser},
			},
		},
	}
	if got := Sum(System(c, daggerheart.StatHitPoints)); got != 2 {
		t.Fatalf("system sum = %d, want 2", got)
	}
	user := User(c, daggerheart.StatHitPoints)
	if len(user) != 1 || user[0].Name != "Blessing" {
		t.Fatalf("user = %+v", user)
	}
	if got := User(nil, daggerheart.StatHitPoints); len(got) != 0 {
		t.Fatalf("nil user = %+v", got)
	}
}
