package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/dice"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/stats"
)

// ParseDiceInput represents the MCP tool input for dice parsing.
type ParseDiceInput struct {
	Notation string `json:"notation" jsonschema:"dice expression such as 2d6+1d4+3 phy"`
}

// ParseDiceResult represents the MCP tool output for dice parsing.
type ParseDiceResult struct {
	Dice       []string    `json:"dice" jsonschema:"normalized NdM terms"`
	Terms      []dice.Term `json:"terms" jsonschema:"die counts and sides"`
	Modifier   int         `json:"modifier" jsonschema:"flat modifier"`
	Normalized string      `json:"normalized" jsonschema:"normalized expression"`
}

// WeaponDamageInput represents the MCP tool input for weapon damage.
type WeaponDamageInput struct {
	Damage      string `json:"damage" jsonschema:"weapon damage dice such as d8+2"`
	Proficiency int    `json:"proficiency" jsonschema:"proficiency multiplier (values below 1 count as 1)"`
}

// WeaponDamageResult represents the MCP tool output for weapon damage.
type WeaponDamageResult struct {
	Damage string `json:"damage" jsonschema:"scaled damage expression"`
}

// DeriveStatsInput represents the MCP tool input for derived stats.
type DeriveStatsInput struct {
	Character CharacterInput `json:"character" jsonschema:"character sheet"`
}

// DeriveStatsResult represents the MCP tool output for derived stats.
type DeriveStatsResult struct {
	ArmorScore    int                          `json:"armor_score" jsonschema:"armor score, capped at 12"`
	ArmorSlotsMax int                          `json:"armor_slots_max" jsonschema:"maximum armor slots"`
	HPMax         int                          `json:"hp_max" jsonschema:"maximum hit points"`
	StressMax     int                          `json:"stress_max" jsonschema:"maximum stress"`
	Evasion       int                          `json:"evasion" jsonschema:"evasion"`
	Thresholds    daggerheart.DamageThresholds `json:"thresholds" jsonschema:"damage thresholds"`
	Vitals        daggerheart.Vitals           `json:"vitals" jsonschema:"vitals clamped to the new maxima"`
	Hope          int                          `json:"hope" jsonschema:"hope clamped to its range"`
	Weapons       stats.Weapons                `json:"weapons" jsonschema:"proficiency-scaled weapon damage"`
}

// ParseDiceTool defines the MCP tool schema for dice parsing.
func ParseDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_dice",
		Description: "Parses a damage dice expression into normalized terms",
	}
}

// WeaponDamageTool defines the MCP tool schema for weapon damage.
func WeaponDamageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "weapon_damage",
		Description: "Scales weapon damage dice by proficiency",
	}
}

// DeriveStatsTool defines the MCP tool schema for derived stats.
func DeriveStatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "derive_stats",
		Description: "Recomputes armor, thresholds, vitals, evasion and weapon damage for a character",
	}
}

// ParseDiceHandler parses a dice expression.
func ParseDiceHandler() mcp.ToolHandlerFor[ParseDiceInput, ParseDiceResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ParseDiceInput) (*mcp.CallToolResult, ParseDiceResult, error) {
		if strings.TrimSpace(input.Notation) == "" {
			return nil, ParseDiceResult{}, fmt.Errorf("notation is required")
		}
		parsed := dice.ParseDiceNotation(input.Notation)
		return &mcp.CallToolResult{}, ParseDiceResult{
			Dice:       parsed.Dice,
			Terms:      parsed.Terms(),
			Modifier:   parsed.Modifier,
			Normalized: dice.ParseDamageString(input.Notation),
		}, nil
	}
}

// WeaponDamageHandler scales weapon damage by proficiency.
func WeaponDamageHandler() mcp.ToolHandlerFor[WeaponDamageInput, WeaponDamageResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input WeaponDamageInput) (*mcp.CallToolResult, WeaponDamageResult, error) {
		if strings.TrimSpace(input.Damage) == "" {
			return nil, WeaponDamageResult{}, fmt.Errorf("damage is required")
		}
		return &mcp.CallToolResult{}, WeaponDamageResult{
			Damage: dice.CalculateWeaponDamage(input.Damage, input.Proficiency),
		}, nil
	}
}

// DeriveStatsHandler recomputes derived stats for the given character.
func DeriveStatsHandler() mcp.ToolHandlerFor[DeriveStatsInput, DeriveStatsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DeriveStatsInput) (*mcp.CallToolResult, DeriveStatsResult, error) {
		if input.Character.ClassBaseHP < 1 {
			return nil, DeriveStatsResult{}, fmt.Errorf("class_base_hp must be at least 1")
		}
		c := stats.Recompute(input.Character.Character())
		return &mcp.CallToolResult{}, DeriveStatsResult{
			ArmorScore:    c.Vitals.ArmorScore,
			ArmorSlotsMax: c.Vitals.ArmorSlotsMax,
			HPMax:         c.Vitals.HPMax,
			StressMax:     c.Vitals.StressMax,
			Evasion:       c.Evasion,
			Thresholds:    c.Thresholds,
			Vitals:        c.Vitals,
			Hope:          c.Hope,
			Weapons:       stats.WeaponDamage(c),
		}, nil
	}
}
