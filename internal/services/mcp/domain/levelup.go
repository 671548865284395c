package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/levelup"
)

// CardSource lists the domain card catalog.
type CardSource interface {
	ListDomainCards(ctx context.Context) ([]cards.Card, error)
}

// ValidateLevelUpInput represents the MCP tool input for level-up validation.
type ValidateLevelUpInput struct {
	Character   CharacterInput      `json:"character" jsonschema:"character before the level-up"`
	Transaction levelup.Transaction `json:"transaction" jsonschema:"level-up selections"`
	Locale      string              `json:"locale,omitempty" jsonschema:"locale for messages (en-US or pt-BR)"`
}

// LevelUpIssue is one validation error with its localized message.
type LevelUpIssue struct {
	Field     string `json:"field" jsonschema:"input the error belongs to"`
	Code      string `json:"code" jsonschema:"stable error code"`
	Message   string `json:"message" jsonschema:"localized message"`
	Technical string `json:"technical" jsonschema:"untranslated message"`
}

// ValidateLevelUpResult represents the MCP tool output for level-up validation.
type ValidateLevelUpResult struct {
	Valid        bool                  `json:"valid" jsonschema:"whether the level-up can be committed"`
	Issues       []LevelUpIssue        `json:"issues" jsonschema:"validation errors"`
	ByField      map[string][]string   `json:"by_field" jsonschema:"messages grouped by field"`
	Achievements []levelup.Achievement `json:"achievements,omitempty" jsonschema:"tier achievements crossed on the way to the new level"`
	Available    []cards.Card          `json:"available_cards" jsonschema:"domain cards selectable at the new level"`
	Catalog      []levelup.Option      `json:"catalog" jsonschema:"advancement catalog"`
}

// ValidateLevelUpTool defines the MCP tool schema for level-up validation.
func ValidateLevelUpTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "validate_level_up",
		Description: "Validates level-up selections against a character and the card catalog",
	}
}

// ValidateLevelUpHandler validates a level-up transaction without applying it.
func ValidateLevelUpHandler(source CardSource) mcp.ToolHandlerFor[ValidateLevelUpInput, ValidateLevelUpResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateLevelUpInput) (*mcp.CallToolResult, ValidateLevelUpResult, error) {
		pool, err := loadCards(ctx, source)
		if err != nil {
			return nil, ValidateLevelUpResult{}, err
		}

		c := input.Character.Character()
		tx := input.Transaction
		if tx.NewLevel == 0 {
			tx.NewLevel = c.Level + 1
		}
		errs := levelup.ValidateCompleteLevelUp(&c, pool, tx)

		result := ValidateLevelUpResult{
			Valid:        levelup.IsLevelUpValid(errs),
			Issues:       make([]LevelUpIssue, 0, len(errs)),
			ByField:      levelup.GroupErrorsByField(errs),
			Achievements: levelup.AchievementsBetween(c.Level, tx.NewLevel),
			Available:    cards.FilterCardsByDomainAndLevel(pool, levelup.EligibleDomains(&c, tx), tx.NewLevel),
			Catalog:      levelup.DefaultCatalog(),
		}
		for _, e := range errs {
			result.Issues = append(result.Issues, LevelUpIssue{
				Field:     e.Field,
				Code:      string(e.Code),
				Message:   e.Localize(input.Locale),
				Technical: e.Message,
			})
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// QueryCardsInput represents the MCP tool input for card queries.
type QueryCardsInput struct {
	Filter  string   `json:"filter,omitempty" jsonschema:"AIP-160 filter such as domain = \"blade\" AND level <= 3"`
	Domains []string `json:"domains,omitempty" jsonschema:"restrict to these domains"`
	Level   int      `json:"level,omitempty" jsonschema:"restrict to cards at or below this level; requires domains"`
}

// QueryCardsResult represents the MCP tool output for card queries.
type QueryCardsResult struct {
	Cards []cards.Card `json:"cards" jsonschema:"matching domain cards"`
}

// QueryCardsTool defines the MCP tool schema for card queries.
func QueryCardsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "query_cards",
		Description: "Lists domain cards matching a filter, domains and level",
	}
}

// QueryCardsHandler filters the card catalog.
func QueryCardsHandler(source CardSource) mcp.ToolHandlerFor[QueryCardsInput, QueryCardsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryCardsInput) (*mcp.CallToolResult, QueryCardsResult, error) {
		pool, err := loadCards(ctx, source)
		if err != nil {
			return nil, QueryCardsResult{}, err
		}
		if len(input.Domains) > 0 {
			level := input.Level
			if level <= 0 {
				level = 10
			}
			pool = cards.FilterCardsByDomainAndLevel(pool, input.Domains, level)
		}
		matched, err := cards.Query(pool, input.Filter)
		if err != nil {
			return nil, QueryCardsResult{}, fmt.Errorf("query cards: %w", err)
		}
		return &mcp.CallToolResult{}, QueryCardsResult{Cards: matched}, nil
	}
}

func loadCards(ctx context.Context, source CardSource) ([]cards.Card, error) {
	if source == nil {
		return nil, nil
	}
	pool, err := source.ListDomainCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load card catalog: %w", err)
	}
	return pool, nil
}
