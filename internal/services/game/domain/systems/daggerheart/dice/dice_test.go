package dice

import (
	"reflect"
	"testing"
)

func TestParseDiceNotation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Notation
	}{
		{"multiple dice with modifier", "2d6+1d4+3", Notation{Dice: []string{"2d6", "1d4"}, Modifier: 3}},
		{"bare die", "d8+2", Notation{Dice: []string{"1d8"}, Modifier: 2}},
		{"whitespace", " 2d6 + 1 ", Notation{Dice: []string{"2d6"}, Modifier: 1}},
		{"empty", "", Notation{Dice: []string{}}},
		{"upper case", "2D10+4", Notation{Dice: []string{"2d10"}, Modifier: 4}},
		{"damage type short", "d10+3 phy", Notation{Dice: []string{"1d10"}, Modifier: 3}},
		{"damage type long", "1d12 Magic", Notation{Dice: []string{"1d12"}}},
		{"modifiers accumulate", "1d6+2+3", Notation{Dice: []string{"1d6"}, Modifier: 5}},
		{"negative modifier", "1d6+-1", Notation{Dice: []string{"1d6"}, Modifier: -1}},
		{"subtracted modifier", "1d8-1", Notation{Dice: []string{"1d8"}, Modifier: -1}},
		{"subtraction between terms", "2d6-1+1d4", Notation{Dice: []string{"2d6", "1d4"}, Modifier: -1}},
		{"garbage ignored", "1d6+lots", Notation{Dice: []string{"1d6"}}},
		{"modifier only", "4", Notation{Dice: []string{}, Modifier: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDiceNotation(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseDiceNotation(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDiceNotationIsIdempotent(t *testing.T) {
	for _, input := range []string{"2d6+1d4+3", "d8", "1d6+-2", "1d8-1", "3d12", "5", " d20 + 1 mag"} {
		first := ParseDiceNotation(input)
		second := ParseDiceNotation(first.String())
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%q: reparse = %+v, want %+v", input, second, first)
		}
	}
}

func TestNotationTerms(t *testing.T) {
	got := ParseDiceNotation("d8+2d6+1").Terms()
	want := []Term{{Count: 1, Sides: 8}, {Count: 2, Sides: 6}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Terms() = %+v, want %+v", got, want)
	}
}

func TestParseDamageString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"d8 + 2 phy", "1d8+2"},
		{"2d6", "2d6"},
		{"", ""},
		{"special", "special"},
		{"3", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDamageString(tt.input); got != tt.want {
				t.Fatalf("ParseDamageString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalculateWeaponDamage(t *testing.T) {
	tests := []struct {
		base       string
		multiplier int
		want       string
	}{
		{"d8", 2, "2d8"},
		{"2d6+3", 3, "6d6+3"},
		{"d8+d6", 2, "2d8+2d6"},
		{"", 2, ""},
		{"1d10+2 phy", 1, "1d10+2"},
		{"d4", 0, "1d4"},
		{"flat", 3, "flat"},
		{"1d8-1", 2, "2d8-1"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := CalculateWeaponDamage(tt.base, tt.multiplier); got != tt.want {
				t.Fatalf("CalculateWeaponDamage(%q, %d) = %q, want %q", tt.base, tt.multiplier, got, tt.want)
			}
		})
	}
}
