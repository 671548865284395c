package levelup

// Tier achievement bonuses.
const (
	AchievementExperienceValue = 2
	AchievementProficiency     = 1
	DefaultExperienceName      = "New Experience"
)

// TierForLevel maps a level to its tier: 1 | 2-4 | 5-7 | 8-10.
func TierForLevel(level int) int {
	switch {
	case level <= 1:
		return 1
	case level <= 4:
		return 2
	case level <= 7:
		return 3
	default:
		return 4
	}
}

// IsTierAchievementLevel reports whether level opens a new tier.
func IsTierAchievementLevel(level int) bool {
	return level == 2 || level == 5 || level == 8
}

// ClearsMarks reports whether reaching level clears marked traits.
func ClearsMarks(level int) bool {
	return level == 5 || level == 8
}

// Achievement is the automatic bonus granted on entering a tier.
type Achievement struct {
	Level           int  `json:"level"`
	Tier            int  `json:"tier"`
	ExperienceValue int  `json:"experience_value"`
	Proficiency     int  `json:"proficiency"`
	ClearsMarks     bool `json:"clears_marks"`
}

// AchievementFor returns the tier achievement granted at level, if any.
func AchievementFor(level int) (Achievement, bool) {
	if !IsTierAchievementLevel(level) {
		return Achievement{}, false
	}
	return Achievement{
		Level:           level,
		Tier:            TierForLevel(level),
		ExperienceValue: AchievementExperienceValue,
		Proficiency:     AchievementProficiency,
		ClearsMarks:     ClearsMarks(level),
	}, true
}

// AchievementsBetween returns the tier achievements of every level after
// current up to and including next, in level order. A level-up that skips
// levels still crosses each boundary it passes.
func AchievementsBetween(current, next int) []Achievement {
	var out []Achievement
	for level := max(current+1, 1); level <= next; level++ {
		if achievement, ok := AchievementFor(level); ok {
			out = append(out, achievement)
		}
	}
	return out
}

// clearsMarksBetween reports whether any level after current up to next
// clears marked traits.
func clearsMarksBetween(current, next int) bool {
	for _, achievement := range AchievementsBetween(current, next) {
		if achievement.ClearsMarks {
			return true
		}
	}
	return false
}

// lastMarkClear returns the most recent level at or below level that cleared
// marked traits, or 0.
func lastMarkClear(level int) int {
	switch {
	case level >= 8:
		return 8
	case level >= 5:
		return 5
	}
	return 0
}
