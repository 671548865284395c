package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/levelup"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/stats"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func hasCode(errs []levelup.ValidationError, code apperrors.Code) bool {
	for _, err := range errs {
		if err.Code == code {
			return true
		}
	}
	return false
}

func codes(errs []levelup.ValidationError) string {
	if len(errs) == 0 {
		return "none"
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, string(err.Code))
	}
	return strings.Join(out, ",")
}

// inventoryItem builds an inventory entry from a Lua item table. Item rules
// fields sit at the top level of the table.
func inventoryItem(index int, args map[string]any) daggerheart.InventoryItem {
	name := optionalString(args, "name", "Item")
	entry := daggerheart.InventoryItem{
		ID:       optionalString(args, "id", "item-"+strconv.Itoa(index+1)),
		Location: daggerheart.Location(optionalString(args, "location", string(daggerheart.LocationBackpack))),
		Item: daggerheart.Item{
			ID:   optionalString(args, "item_id", ""),
			Name: name,
			Kind: optionalString(args, "kind", daggerheart.ItemKindLoot),
			Data: daggerheart.ItemData{
				Feature:        optionalString(args, "feature", ""),
				BaseScore:      stringValue(args["base_score"]),
				BaseThresholds: optionalString(args, "base_thresholds", ""),
				Damage:         optionalString(args, "damage", ""),
				Trait:          optionalString(args, "trait", ""),
				Range:          optionalString(args, "range", ""),
			},
		},
	}
	for _, mod := range readTables(args, "modifiers") {
		entry.Item.Data.Modifiers = append(entry.Item.Data.Modifiers, daggerheart.ItemModifier{
			Target: optionalString(mod, "target", ""),
			Value:  mod["value"],
		})
	}
	return entry
}

// experienceIndices resolves experience selections given as names or as
// 1-based Lua positions.
func experienceIndices(c daggerheart.Character, value any) ([]int, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, nil
	}
	out := make([]int, 0, len(list))
	for _, entry := range list {
		switch typed := entry.(type) {
		case int:
			out = append(out, typed-1)
		case string:
			index := -1
			for i, exp := range c.Experiences {
				if strings.EqualFold(exp.Name, typed) {
					index = i
					break
				}
			}
			if index < 0 {
				return nil, fmt.Errorf("unknown experience %q", typed)
			}
			out = append(out, index)
		default:
			return nil, fmt.Errorf("experience selection %v must be a name or position", entry)
		}
	}
	return out, nil
}

// expectation checks one expect key against the character. Keys absent from
// the expect table pass.
type expectation struct {
	compare func(args map[string]any) string
}

func intExpectation(key string, got int) expectation {
	return expectation{compare: func(args map[string]any) string {
		want, ok := readInt(args, key)
		if !ok || want == got {
			return ""
		}
		return fmt.Sprintf("%s = %d, want %d", key, got, want)
	}}
}

func stringExpectation(key string, got string) expectation {
	return expectation{compare: func(args map[string]any) string {
		want, ok := args[key].(string)
		if !ok || want == got {
			return ""
		}
		return fmt.Sprintf("%s = %q, want %q", key, got, want)
	}}
}

// setExpectation compares order-insensitively.
func setExpectation(key string, got []string) expectation {
	return expectation{compare: func(args map[string]any) string {
		if _, ok := args[key]; !ok {
			return ""
		}
		want := readStringSlice(args, key)
		a := append([]string(nil), got...)
		b := append([]string(nil), want...)
		sort.Strings(a)
		sort.Strings(b)
		if strings.Join(a, ",") == strings.Join(b, ",") {
			return ""
		}
		return fmt.Sprintf("%s = %v, want %v", key, a, b)
	}}
}

func mapExpectation(key string, got map[string]int) expectation {
	return expectation{compare: func(args map[string]any) string {
		var failures []string
		for name, want := range readIntMap(args, key) {
			if value, ok := got[strings.ToLower(name)]; !ok || value != want {
				failures = append(failures, fmt.Sprintf("%s.%s = %d, want %d", key, name, value, want))
			}
		}
		sort.Strings(failures)
		return strings.Join(failures, "; ")
	}}
}

func expectations(c daggerheart.Character) []expectation {
	marked := make([]string, 0, len(c.MarkedTraits))
	for trait, isMarked := range c.MarkedTraits {
		if isMarked {
			marked = append(marked, trait)
		}
	}
	experiences := make(map[string]int, len(c.Experiences))
	for _, exp := range c.Experiences {
		experiences[strings.ToLower(exp.Name)] = exp.Value
	}
	multiclass := ""
	if c.Multiclass != nil {
		multiclass = c.Multiclass.Domain
	}
	weapons := stats.WeaponDamage(c)

	return []expectation{
		intExpectation("level", c.Level),
		intExpectation("hp_max", c.Vitals.HPMax),
		intExpectation("stress_max", c.Vitals.StressMax),
		intExpectation("evasion", c.Evasion),
		intExpectation("proficiency", c.Proficiency),
		intExpectation("armor_score", c.Vitals.ArmorScore),
		intExpectation("armor_slots_max", c.Vitals.ArmorSlotsMax),
		intExpectation("major", c.Thresholds.Major),
		intExpectation("severe", c.Thresholds.Severe),
		intExpectation("hope", c.Hope),
		intExpectation("experience_count", len(c.Experiences)),
		intExpectation("history", len(c.History)),
		stringExpectation("subclass_stage", string(c.SubclassStage)),
		stringExpectation("multiclass_domain", multiclass),
		stringExpectation("primary_damage", weapons.Primary),
		stringExpectation("secondary_damage", weapons.Secondary),
		setExpectation("cards", c.DomainCardIDs),
		setExpectation("marked", marked),
		mapExpectation("traits", c.Traits.Map()),
		mapExpectation("experiences", experiences),
	}
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		lower := strings.ToLower(strings.TrimSpace(typed))
		if lower == "true" || lower == "yes" || lower == "1" {
			return true
		}
		if lower == "false" || lower == "no" || lower == "0" {
			return false
		}
	}
	return fallback
}

// stringValue renders numbers as text so scripts may write base_score = 3.
func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	}
	return ""
}

func readStringSlice(args map[string]any, key string) []string {
	value, ok := args[key]
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	results := make([]string, 0, len(list))
	for _, entry := range list {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func readIntMap(args map[string]any, key string) map[string]int {
	table, ok := args[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(table))
	for name := range table {
		if value, ok := readInt(table, name); ok {
			out[name] = value
		}
	}
	return out
}

func readTables(args map[string]any, key string) []map[string]any {
	list, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if table, ok := entry.(map[string]any); ok {
			out = append(out, table)
		}
	}
	return out
}
