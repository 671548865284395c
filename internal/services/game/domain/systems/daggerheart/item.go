package daggerheart

// Location is where an inventory item sits.
type Location string

const (
	LocationPrimaryWeapon   Location = "primary_weapon"
	LocationSecondaryWeapon Location = "secondary_weapon"
	LocationArmor           Location = "armor"
	LocationBackpack        Location = "backpack"
)

// Equipped reports whether the location is an equipment slot.
func (l Location) Equipped() bool {
	switch l {
	case LocationPrimaryWeapon, LocationSecondaryWeapon, LocationArmor:
		return true
	}
	return false
}

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l.Equipped() || l == LocationBackpack
}

// Item kinds.
const (
	ItemKindWeapon = "weapon"
	ItemKindArmor  = "armor"
	ItemKindLoot   = "loot"
)

// InventoryItem places an item in the character's inventory.
type InventoryItem struct {
	ID       string   `json:"id"`
	Location Location `json:"location"`
	Item     Item     `json:"item"`
}

// Item is an equippable or carried item.
type Item struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind string   `json:"kind,omitempty"`
	Data ItemData `json:"data"`
}

// ItemData is the rules payload of an item. Base score, thresholds and damage
// are kept as the raw strings the content carries.
type ItemData struct {
	Feature        string         `json:"feature,omitempty"`
	FeatureText    string         `json:"feature_text,omitempty"`
	FeatText       *string        `json:"feat_text,omitempty"`
	Modifiers      []ItemModifier `json:"modifiers,omitempty"`
	BaseScore      string         `json:"base_score,omitempty"`
	BaseThresholds string         `json:"base_thresholds,omitempty"`
	Damage         string         `json:"damage,omitempty"`
	Trait          string         `json:"trait,omitempty"`
	Range          string         `json:"range,omitempty"`
}

// ItemModifier is a structured bonus an item grants to a stat. Value is
// usually an integer but content may carry anything.
type ItemModifier struct {
	Target string `json:"target"`
	Value  any    `json:"value"`
}
