// Package modifiers gathers the system modifiers a character's equipment and
// advancement history grant to a stat.
package modifiers

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
)

// Extract returns the system modifiers equipped items grant to stat.
//
// Structured item modifiers win; items without any fall back to scanning
// their feature text for "+N to <stat>" phrases. Items in the backpack are
// ignored. The result is never nil.
func Extract(c *daggerheart.Character, stat string) []daggerheart.Modifier {
	out := []daggerheart.Modifier{}
	if c == nil || len(c.Inventory) == 0 {
		return out
	}
	for _, entry := range c.Inventory {
		if !entry.Location.Equipped() {
			continue
		}
		if len(entry.Item.Data.Modifiers) > 0 {
			out = append(out, structured(entry, stat)...)
			continue
		}
		out = append(out, fromText(entry, stat)...)
	}
	return out
}

func structured(entry daggerheart.InventoryItem, stat string) []daggerheart.Modifier {
	var out []daggerheart.Modifier
	for i, mod := range entry.Item.Data.Modifiers {
		if mod.Target != stat {
			continue
		}
		value, raw := coerce(mod.Value)
		out = append(out, daggerheart.Modifier{
			ID:     fmt.Sprintf("%s-%s-%d", itemKey(entry), stat, i),
			Name:   entry.Item.Name,
			Value:  value,
			Raw:    raw,
			Source: daggerheart.SourceSystem,
		})
	}
	return out
}

func fromText(entry daggerheart.InventoryItem, stat string) []daggerheart.Modifier {
	pattern := statPattern(stat)
	if pattern == nil {
		return nil
	}
	var out []daggerheart.Modifier
	for i, match := range pattern.FindAllStringSubmatch(FeatureText(entry.Item.Data), -1) {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		out = append(out, daggerheart.Modifier{
			ID:     fmt.Sprintf("%s-%s-text-%d", itemKey(entry), stat, i),
			Name:   entry.Item.Name,
			Value:  value,
			Source: daggerheart.SourceSystem,
		})
	}
	return out
}

// FeatureText is the text scanned for bonuses: the feature followed by the
// feat text, or the feature text when no feat text is present.
func FeatureText(data daggerheart.ItemData) string {
	extra := data.FeatureText
	if data.FeatText != nil {
		extra = *data.FeatText
	}
	return strings.TrimSpace(data.Feature + " " + extra)
}

// statPattern matches "+1 to evasion" or "-2 bonus to hit points" where the
// stat words may be separated by spaces or underscores.
func statPattern(stat string) *regexp.Regexp {
	words := strings.FieldsFunc(stat, func(r rune) bool { return r == '_' || r == ' ' })
	if len(words) == 0 {
		return nil
	}
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return regexp.MustCompile(`(?i)([+-]\d+)\s+(?:bonus\s+)?to\s+` + strings.Join(words, `[\s_]+`) + `\b`)
}

func itemKey(entry daggerheart.InventoryItem) string {
	if entry.ID != "" {
		return entry.ID
	}
	return entry.Item.ID
}

// coerce converts integral content values. Anything else is passed through
// as raw text with a zero value.
func coerce(value any) (int, string) {
	switch v := value.(type) {
	case int:
		return v, ""
	case int32:
		return int(v), ""
	case int64:
		return int(v), ""
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), ""
		}
	case nil:
		return 0, "null"
	}
	return 0, fmt.Sprint(value)
}

// FromHistory returns the system modifiers granted by committed advancement
// records: HP slots, stress slots and evasion. Records are read in level order.
func FromHistory(c *daggerheart.Character, stat string) []daggerheart.Modifier {
	out := []daggerheart.Modifier{}
	if c == nil || len(c.History) == 0 {
		return out
	}
	levels := make([]int, 0, len(c.History))
	for level := range c.History {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		record := c.History[level]
		var value int
		switch stat {
		case daggerheart.StatHitPoints:
			value = record.HPSlots
		case daggerheart.StatStress:
			value = record.StressSlots
		case daggerheart.StatEvasion:
			value = record.EvasionGained
		}
		if value == 0 {
			continue
		}
		out = append(out, daggerheart.Modifier{
			ID:     fmt.Sprintf("level-%d-%s", level, stat),
			Name:   fmt.Sprintf("Level %d advancement", level),
			Value:  value,
			Source: daggerheart.SourceSystem,
		})
	}
	return out
}

// System returns equipment and history modifiers for stat, deduplicated.
func System(c *daggerheart.Character, stat string) []daggerheart.Modifier {
	return daggerheart.DedupeModifiers(append(Extract(c, stat), FromHistory(c, stat)...))
}

// User returns the manually entered modifiers for stat, deduplicated.
func User(c *daggerheart.Character, stat string) []daggerheart.Modifier {
	if c == nil {
		return []daggerheart.Modifier{}
	}
	return daggerheart.DedupeModifiers(c.Modifiers[stat])
}

// Sum adds the numeric modifier values. Raw values contribute nothing.
func Sum(mods []daggerheart.Modifier) int {
	total := 0
	for _, mod := range mods {
		total += mod.Value
	}
	return total
}
