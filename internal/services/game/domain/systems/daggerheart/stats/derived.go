package stats

import (
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/dice"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/modifiers"
)

// CalculateDerivedStats recomputes armor score, thresholds, HP and stress
// maxima for the character's current equipment and level, then pulls current
// vitals and hope down into their new bounds. User modifiers are keyed by
// stat; damage thresholds read only the user list. The input is not mutated.
func CalculateDerivedStats(
	c daggerheart.Character,
	armorMods, hpMods, stressMods []daggerheart.Modifier,
	userMods map[string][]daggerheart.Modifier,
) daggerheart.Character {
	out := c
	armor := c.EquippedArmor()

	armorScore := ArmorScore(armor, armorMods, userMods[daggerheart.StatArmorScore])
	out.Vitals.ArmorScore = armorScore
	out.Vitals.ArmorSlotsMax = max(0, armorScore)
	out.Vitals.HPMax = MaxHP(c.ClassBaseHP, hpMods, userMods[daggerheart.StatHitPoints])
	out.Vitals.StressMax = MaxStress(stressMods, userMods[daggerheart.StatStress])
	out.Thresholds = DamageThresholds(c.Level, armor, userMods[daggerheart.StatDamageThresholds])

	out.Vitals.HP = ClampVitalValue(VitalHitPoints, c.Vitals.HP, out.Vitals.HPMax)
	out.Vitals.Stress = ClampVitalValue(VitalStress, c.Vitals.Stress, out.Vitals.StressMax)
	out.Vitals.ArmorSlots = ClampVitalValue(VitalArmorSlots, c.Vitals.ArmorSlots, out.Vitals.ArmorSlotsMax)
	out.Hope = ClampVitalValue(VitalHope, c.Hope, daggerheart.HopeMax)
	return out
}

// Recompute gathers system and user modifiers for every stat and applies
// CalculateDerivedStats and evasion. Call it after any equipment, modifier
// or history change.
func Recompute(c daggerheart.Character) daggerheart.Character {
	user := make(map[string][]daggerheart.Modifier, len(daggerheart.StatKeys()))
	for _, stat := range daggerheart.StatKeys() {
		user[stat] = modifiers.User(&c, stat)
	}
	user[daggerheart.StatDamageThresholds] = append(
		modifiers.System(&c, daggerheart.StatDamageThresholds),
		user[daggerheart.StatDamageThresholds]...,
	)

	out := CalculateDerivedStats(c,
		modifiers.System(&c, daggerheart.StatArmorScore),
		modifiers.System(&c, daggerheart.StatHitPoints),
		modifiers.System(&c, daggerheart.StatStress),
		user,
	)
	out.Evasion = Evasion(c.ClassEvasion, modifiers.System(&c, daggerheart.StatEvasion), user[daggerheart.StatEvasion])
	return out
}

// Weapons holds proficiency-scaled damage for the equipped weapons.
type Weapons struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// WeaponDamage scales equipped weapon damage dice by proficiency.
func WeaponDamage(c daggerheart.Character) Weapons {
	var out Weapons
	if weapon := c.PrimaryWeapon(); weapon != nil {
		out.Primary = dice.CalculateWeaponDamage(weapon.Data.Damage, c.Proficiency)
	}
	if weapon := c.SecondaryWeapon(); weapon != nil {
		out.Secondary = dice.CalculateWeaponDamage(weapon.Data.Damage, c.Proficiency)
	}
	return out
}
