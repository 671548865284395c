package daggerheart

import "time"

// CardExchange records a domain card traded for a new one.
type CardExchange struct {
	Removed string `json:"removed"`
	Added   string `json:"added"`
}

// TierAchievement records the automatic bonuses of a tier-boundary level.
type TierAchievement struct {
	Level             int        `json:"level"`
	Experience        Experience `json:"experience"`
	ExperienceIndex   int        `json:"experience_index"`
	ProficiencyGained int        `json:"proficiency_gained"`
	MarksCleared      bool       `json:"marks_cleared"`
}

// AdvancementRecord is the immutable result of one level-up, stored under
// its level in the character history.
type AdvancementRecord struct {
	Level                int               `json:"level"`
	Advancements         []string          `json:"advancements"`
	TraitIncrements      []string          `json:"trait_increments,omitempty"`
	ExperienceIncrements []int             `json:"experience_increments,omitempty"`
	HPSlots              int               `json:"hp_slots,omitempty"`
	StressSlots          int               `json:"stress_slots,omitempty"`
	EvasionGained        int               `json:"evasion_gained,omitempty"`
	ProficiencyGained    int               `json:"proficiency_gained,omitempty"`
	DomainCards          []string          `json:"domain_cards,omitempty"`
	Exchange             *CardExchange     `json:"exchange,omitempty"`
	Multiclass           *Multiclass       `json:"multiclass,omitempty"`
	SubclassAdvanced     bool              `json:"subclass_advanced,omitempty"`
	Achievements         []TierAchievement `json:"achievements,omitempty"`
	CommittedAt          time.Time         `json:"committed_at"`
}
