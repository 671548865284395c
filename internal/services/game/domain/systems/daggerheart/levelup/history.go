package levelup

import (
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/stats"
)

// TrimHistory returns a copy of history holding only records at or below
// level.
func TrimHistory(history map[int]daggerheart.AdvancementRecord, level int) map[int]daggerheart.AdvancementRecord {
	out := make(map[int]daggerheart.AdvancementRecord, len(history))
	for l, record := range history {
		if l <= level {
			out[l] = record
		}
	}
	return out
}

// Delevel reduces c to level. Records above level are removed and the state
// they stored directly on the character is reverted, newest first; derived
// stats are then recomputed so slot and evasion bonuses fall away with their
// records. Confirmation is the caller's concern.
func Delevel(c daggerheart.Character, level int) (daggerheart.Character, error) {
	if level < daggerheart.LevelMin || level >= c.Level {
		return daggerheart.Character{}, apperrors.WithMetadata(
			apperrors.CodeLevelUpDelevelInvalid,
			fmt.Sprintf("cannot de-level from %d to %d", c.Level, level),
			map[string]string{"Level": strconv.Itoa(level), "CurrentLevel": strconv.Itoa(c.Level)},
		)
	}

	out := c.Clone()
	var removed []int
	for l := range out.History {
		if l > level {
			removed = append(removed, l)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))

	rebuildMarks := false
	for _, l := range removed {
		record := out.History[l]
		revert(&out, record)
		for _, achievement := range record.Achievements {
			if achievement.MarksCleared {
				rebuildMarks = true
			}
		}
	}

	out.History = TrimHistory(out.History, level)
	out.Level = level
	if rebuildMarks {
		out.MarkedTraits = marksSince(out.History, lastMarkClear(level))
	}
	return stats.Recompute(out), nil
}

func revert(c *daggerheart.Character, record daggerheart.AdvancementRecord) {
	if c.MarkedTraits == nil {
		c.MarkedTraits = map[string]bool{}
	}
	for _, trait := range record.TraitIncrements {
		c.Traits = c.Traits.Add(trait, -1)
		delete(c.MarkedTraits, trait)
	}
	for _, index := range record.ExperienceIncrements {
		if index >= 0 && index < len(c.Experiences) {
			c.Experiences[index].Value--
		}
	}
	// Newest achievement first so earlier experience indices stay valid.
	gained := record.ProficiencyGained
	for i := len(record.Achievements) - 1; i >= 0; i-- {
		a := record.Achievements[i]
		if a.ExperienceIndex >= 0 && a.ExperienceIndex < len(c.Experiences) {
			c.Experiences = append(c.Experiences[:a.ExperienceIndex], c.Experiences[a.ExperienceIndex+1:]...)
		}
		gained += a.ProficiencyGained
	}
	if gained > 0 {
		c.Proficiency = max(daggerheart.ProficiencyDefault, c.Proficiency-gained)
	}

	for _, id := range record.DomainCards {
		c.DomainCardIDs = removeCard(c.DomainCardIDs, id)
	}
	if record.Exchange != nil && record.Exchange.Removed != "" {
		c.DomainCardIDs = append(c.DomainCardIDs, record.Exchange.Removed)
	}
	if record.Multiclass != nil {
		c.Multiclass = nil
	}
	for i := 0; i < count(record.Advancements, SubclassCard); i++ {
		c.SubclassStage = c.SubclassStage.Previous()
	}
}

// marksSince returns the traits increased at or after level from.
func marksSince(history map[int]daggerheart.AdvancementRecord, from int) map[string]bool {
	marks := map[string]bool{}
	for l, record := range history {
		if l < from {
			continue
		}
		for _, trait := range record.TraitIncrements {
			marks[trait] = true
		}
	}
	return marks
}
