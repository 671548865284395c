package scenario

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/platform/id"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/levelup"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "card":
		return r.runCardStep(ctx, step)
	case "character":
		return r.runCharacterStep(ctx, state, step)
	case "load":
		return r.runLoadStep(ctx, state, step)
	case "equip":
		return r.runEquipStep(ctx, state, step)
	case "modifiers":
		return r.runModifiersStep(ctx, state, step)
	case "level_up":
		return r.runLevelUpStep(ctx, state, step)
	case "delevel":
		return r.runDelevelStep(ctx, state, step)
	case "expect":
		return r.runExpectStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runCardStep(ctx context.Context, step Step) error {
	card := cards.Normalize(cards.Record(step.Args))
	if card.ID == "" {
		return r.failf("card id is required")
	}
	if err := r.store.PutDomainCard(ctx, card); err != nil {
		return fmt.Errorf("put card %s: %w", card.ID, err)
	}
	return nil
}

func (r *Runner) runCharacterStep(ctx context.Context, state *scenarioState, step Step) error {
	args := step.Args
	charID := requiredString(args, "id")
	if charID == "" {
		generated, err := id.NewID()
		if err != nil {
			return fmt.Errorf("generate character id: %w", err)
		}
		charID = generated
	}

	c := daggerheart.NewCharacter(
		charID,
		requiredString(args, "name"),
		optionalString(args, "class", "guardian"),
		optionalInt(args, "hp", 6),
		optionalInt(args, "evasion", daggerheart.EvasionDefault),
		readStringSlice(args, "domains")...,
	)
	c.DomainCardIDs = readStringSlice(args, "cards")
	c.Hope = optionalInt(args, "hope", c.Hope)
	for trait, value := range readIntMap(args, "traits") {
		if !daggerheart.IsTrait(trait) {
			return r.failf("unknown trait %q", trait)
		}
		c.Traits = c.Traits.Add(trait, value)
	}
	for _, entry := range readTables(args, "experiences") {
		c.Experiences = append(c.Experiences, daggerheart.Experience{
			Name:  optionalString(entry, "name", "Experience"),
			Value: optionalInt(entry, "value", 2),
		})
	}
	for i, entry := range readTables(args, "items") {
		c.Inventory = append(c.Inventory, inventoryItem(i, entry))
	}

	if err := r.service.CreateCharacter(ctx, state.app, c); err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	return nil
}

func (r *Runner) runLoadStep(ctx context.Context, state *scenarioState, step Step) error {
	charID := requiredString(step.Args, "id")
	if charID == "" {
		return r.failf("load requires a character id")
	}
	if err := r.service.LoadCharacter(ctx, state.app, charID); err != nil {
		return fmt.Errorf("load character: %w", err)
	}
	return nil
}

func (r *Runner) runEquipStep(ctx context.Context, state *scenarioState, step Step) error {
	item := requiredString(step.Args, "item")
	location := daggerheart.Location(optionalString(step.Args, "location", string(daggerheart.LocationBackpack)))
	if _, err := r.service.Equip(ctx, state.app, item, location); err != nil {
		return fmt.Errorf("equip %s: %w", item, err)
	}
	return nil
}

func (r *Runner) runModifiersStep(ctx context.Context, state *scenarioState, step Step) error {
	stat := requiredString(step.Args, "stat")
	var mods []daggerheart.Modifier
	for _, entry := range readTables(step.Args, "list") {
		mods = append(mods, daggerheart.Modifier{
			ID:    optionalString(entry, "id", ""),
			Name:  optionalString(entry, "name", "Modifier"),
			Value: optionalInt(entry, "value", 0),
		})
	}
	if _, err := r.service.SetUserModifiers(ctx, state.app, stat, mods); err != nil {
		return fmt.Errorf("set %s modifiers: %w", stat, err)
	}
	return nil
}

// runLevelUpStep walks a session through every step with the selections in
// args. With expect_error set, the step passes only when validation reports
// that code.
func (r *Runner) runLevelUpStep(ctx context.Context, state *scenarioState, step Step) error {
	args := step.Args
	session, err := r.service.StartLevelUp(ctx, state.app)
	if err != nil {
		return fmt.Errorf("start level-up: %w", err)
	}
	c := session.Character()

	session.SetAdvancements(readStringSlice(args, "advancements")...)
	session.SetTraits(readStringSlice(args, "traits")...)
	indices, err := experienceIndices(c, args["experiences"])
	if err != nil {
		r.service.CancelLevelUp(state.app)
		return r.failf("%v", err)
	}
	session.SetExperiences(indices...)
	session.SetDomainCard(optionalString(args, "domain_card", ""))
	session.SetBonusDomainCards(readStringSlice(args, "bonus_cards")...)
	if exchange := optionalString(args, "exchange", ""); exchange != "" {
		session.SetExchange(true, exchange)
	}
	if multiclass, ok := args["multiclass"].(map[string]any); ok {
		session.SetMulticlass(optionalString(multiclass, "class", ""), optionalString(multiclass, "domain", ""))
	}
	session.SetNewExperienceName(optionalString(args, "experience_name", ""))

	want := apperrors.Code(optionalString(args, "expect_error", ""))
	for session.Step() != levelup.StepCommit {
		if err := session.Next(); err != nil {
			r.service.CancelLevelUp(state.app)
			if want != "" {
				if hasCode(session.Errors(), want) {
					return nil
				}
				return r.assertf("level-up errors = %s, want %s", codes(session.Errors()), want)
			}
			return r.assertf("level-up blocked at %s: %v", session.Step(), err)
		}
	}
	if want != "" {
		r.service.CancelLevelUp(state.app)
		return r.assertf("level-up validated, want %s", want)
	}

	result, err := r.service.CommitLevelUp(ctx, state.app)
	if err != nil {
		return fmt.Errorf("commit level-up: %w", err)
	}
	r.logf("level-up committed: %s now level %d", result.Character.Name, result.Character.Level)
	return nil
}

func (r *Runner) runDelevelStep(ctx context.Context, state *scenarioState, step Step) error {
	level := optionalInt(step.Args, "level", 0)
	confirmed := optionalBool(step.Args, "confirm", true)
	want := apperrors.Code(optionalString(step.Args, "expect_error", ""))

	_, err := r.service.Delevel(ctx, state.app, level, confirmed)
	if want != "" {
		if got := apperrors.CodeOf(err); got != want {
			return r.assertf("de-level error = %s, want %s", got, want)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("de-level to %d: %w", level, err)
	}
	return nil
}

func (r *Runner) runExpectStep(state *scenarioState, step Step) error {
	c, ok := state.app.Character()
	if !ok {
		return r.failf("expect requires an active character")
	}
	var failures []string
	for _, check := range expectations(c) {
		if err := check.compare(step.Args); err != "" {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return r.assertf("%s", strings.Join(failures, "; "))
	}
	return nil
}
