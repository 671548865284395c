// Package stats derives armor score, damage thresholds, vital maxima and
// evasion from a character's equipment and modifiers.
package stats

import (
	"strconv"
	"strings"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/modifiers"
)

// ArmorScore returns the armor base score plus all modifiers, capped at 12.
// No floor is applied. Missing armor or a non-numeric base score counts as 0.
func ArmorScore(armor *daggerheart.Item, system, user []daggerheart.Modifier) int {
	base := 0
	if armor != nil {
		base = atoi(armor.Data.BaseScore)
	}
	total := base + modifiers.Sum(system) + modifiers.Sum(user)
	if total > daggerheart.ArmorScoreCap {
		return daggerheart.ArmorScoreCap
	}
	return total
}

// DamageThresholds returns {1, level, level*2}, or the armor's "major/severe"
// thresholds when well formed, with mods added to major and severe.
func DamageThresholds(level int, armor *daggerheart.Item, mods []daggerheart.Modifier) daggerheart.DamageThresholds {
	out := daggerheart.DamageThresholds{Minor: 1, Major: level, Severe: level * 2}
	if armor != nil {
		if major, severe, ok := parseThresholds(armor.Data.BaseThresholds); ok {
			out.Major, out.Severe = major, severe
		}
	}
	bonus := modifiers.Sum(mods)
	out.Major += bonus
	out.Severe += bonus
	return out
}

func parseThresholds(raw string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	severe, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return major, severe, true
}

// MaxHP returns the class base HP plus modifiers, never below 1.
func MaxHP(classBase int, system, user []daggerheart.Modifier) int {
	return max(1, classBase+modifiers.Sum(system)+modifiers.Sum(user))
}

// MaxStress returns 6 plus modifiers, never below 1.
func MaxStress(system, user []daggerheart.Modifier) int {
	return max(1, daggerheart.StressMaxBase+modifiers.Sum(system)+modifiers.Sum(user))
}

// Evasion returns the class evasion plus modifiers.
func Evasion(base int, system, user []daggerheart.Modifier) int {
	return base + modifiers.Sum(system) + modifiers.Sum(user)
}

// VitalKind names a clamped resource track.
type VitalKind string

const (
	VitalHitPoints  VitalKind = "hit_points"
	VitalStress     VitalKind = "stress"
	VitalArmorSlots VitalKind = "armor_slots"
	VitalHope       VitalKind = "hope"
)

// ClampVitalValue bounds value to [0, max]. The rule is the same for every
// kind; a max of 0 or less forces 0.
func ClampVitalValue(_ VitalKind, value, maximum int) int {
	return max(0, min(value, maximum))
}

func atoi(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
