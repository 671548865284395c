package daggerheart

// Stat keys modifiers can target.
const (
	StatArmorScore       = "armor_score"
	StatHitPoints        = "hit_points"
	StatStress           = "stress"
	StatEvasion          = "evasion"
	StatDamageThresholds = "damage_thresholds"
)

// StatKeys returns every stat key modifiers can target.
func StatKeys() []string {
	return []string{StatArmorScore, StatHitPoints, StatStress, StatEvasion, StatDamageThresholds}
}

// ModifierSource tells derived bonuses from manually entered ones.
type ModifierSource string

const (
	SourceSystem ModifierSource = "system"
	SourceUser   ModifierSource = "user"
)

// Modifier is a signed bonus applied to one stat.
//
// Raw carries a non-numeric content value as-is; such modifiers have Value 0
// and add nothing to sums.
type Modifier struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Value  int            `json:"value"`
	Raw    string         `json:"raw,omitempty"`
	Source ModifierSource `json:"source"`
}

// Numeric reports whether the modifier carries an integer value.
func (m Modifier) Numeric() bool {
	return m.Raw == ""
}

// DedupeModifiers drops modifiers whose id was already seen, keeping the first.
func DedupeModifiers(mods []Modifier) []Modifier {
	if len(mods) == 0 {
		return []Modifier{}
	}
	seen := make(map[string]bool, len(mods))
	out := make([]Modifier, 0, len(mods))
	for _, mod := range mods {
		if seen[mod.ID] {
			continue
		}
		seen[mod.ID] = true
		out = append(out, mod)
	}
	return out
}
