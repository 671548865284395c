package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/advancement/internal/platform/id"
	platformotel "github.com/louisbranch/advancement/internal/platform/otel"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/levelup"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/stats"
	"github.com/louisbranch/advancement/internal/services/game/storage"
)

const tracerName = "github.com/louisbranch/advancement/internal/services/game/app"

// Service runs character operations against a store.
type Service struct {
	store       storage.Store
	logger      *log.Logger
	tracer      trace.Tracer
	now         func() time.Time
	idGenerator func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the commit clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a service over store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		logger:      log.New(io.Discard, "", 0),
		tracer:      platformotel.Tracer(tracerName),
		now:         time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) span(ctx context.Context, name string, characterID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("character.id", characterID)))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// CreateCharacter validates, recomputes and stores a new character, making it
// active.
func (s *Service) CreateCharacter(ctx context.Context, st *State, c daggerheart.Character) (err error) {
	ctx, span := s.span(ctx, "app.CreateCharacter", c.ID)
	defer func() { finish(span, err) }()

	if err := daggerheart.ValidateCharacter(c); err != nil {
		return err
	}
	c = stats.Recompute(c)
	if err := s.store.PutCharacter(ctx, c); err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	st.SetCharacter(c)
	s.logger.Printf("created character %s (%s)", c.ID, c.Name)
	return nil
}

// LoadCharacter makes a stored character active with derived stats
// recomputed.
func (s *Service) LoadCharacter(ctx context.Context, st *State, characterID string) (err error) {
	ctx, span := s.span(ctx, "app.LoadCharacter", characterID)
	defer func() { finish(span, err) }()

	if st.Session() != nil {
		return ErrSessionInProgress
	}
	c, err := s.store.GetCharacter(ctx, characterID)
	if err != nil {
		return fmt.Errorf("load character %s: %w", characterID, err)
	}
	st.SetCharacter(stats.Recompute(c))
	return nil
}

// StartLevelUp opens a level-up session for the active character using the
// stored card catalog.
func (s *Service) StartLevelUp(ctx context.Context, st *State) (*levelup.Session, error) {
	c, ok := st.Character()
	if !ok {
		return nil, ErrNoActiveCharacter
	}
	if st.Session() != nil {
		return nil, ErrSessionInProgress
	}
	pool, err := s.store.ListDomainCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load card catalog: %w", err)
	}
	session := levelup.NewSession(c, pool)
	st.setSession(session)
	s.logger.Printf("level-up started for %s: %d -> %d", c.ID, c.Level, c.Level+1)
	return session, nil
}

// CancelLevelUp discards the open session without side effects.
func (s *Service) CancelLevelUp(st *State) {
	st.setSession(nil)
}

// CommitLevelUp commits the open session, applies the result to State and
// writes it to the store. A failed write restores the previous character.
// The session is closed either way.
func (s *Service) CommitLevelUp(ctx context.Context, st *State) (result levelup.CommitResult, err error) {
	session := st.Session()
	if session == nil {
		return levelup.CommitResult{}, ErrNoActiveSession
	}
	c := session.Character()
	ctx, span := s.span(ctx, "app.CommitLevelUp", c.ID)
	defer func() { finish(span, err) }()

	result, err = session.Commit(s.now())
	if err != nil {
		return levelup.CommitResult{}, err
	}
	st.setSession(nil)
	span.SetAttributes(attribute.Int("character.level", result.Character.Level))

	err = s.write(ctx, st, result.Character, func(ctx context.Context) error {
		return s.store.CommitLevelUp(ctx, result.Character, result.Record)
	})
	if err != nil {
		s.logger.Printf("level-up of %s rolled back: %v", c.ID, err)
		return levelup.CommitResult{}, fmt.Errorf("commit level-up: %w", err)
	}
	s.logger.Printf("%s reached level %d", c.ID, result.Character.Level)
	return result, nil
}

// Delevel reduces the active character to level. It refuses to run without
// confirmed because the removed history cannot be recovered.
func (s *Service) Delevel(ctx context.Context, st *State, level int, confirmed bool) (out daggerheart.Character, err error) {
	c, ok := st.Character()
	if !ok {
		return daggerheart.Character{}, ErrNoActiveCharacter
	}
	ctx, span := s.span(ctx, "app.Delevel", c.ID)
	defer func() { finish(span, err) }()

	if !confirmed {
		return daggerheart.Character{}, ErrDelevelNotConfirmed
	}
	if st.Session() != nil {
		return daggerheart.Character{}, ErrSessionInProgress
	}
	next, err := levelup.Delevel(c, level)
	if err != nil {
		return daggerheart.Character{}, err
	}
	err = s.write(ctx, st, next, func(ctx context.Context) error {
		return s.store.CommitDelevel(ctx, next)
	})
	if err != nil {
		s.logger.Printf("de-level of %s rolled back: %v", c.ID, err)
		return daggerheart.Character{}, fmt.Errorf("commit de-level: %w", err)
	}
	s.logger.Printf("%s reduced from level %d to %d", c.ID, c.Level, level)
	return next, nil
}

// Equip moves an inventory item to location. An item already in an equipped
// slot is moved to the backpack.
func (s *Service) Equip(ctx context.Context, st *State, inventoryID string, location daggerheart.Location) (daggerheart.Character, error) {
	if !location.Valid() {
		return daggerheart.Character{}, ErrInvalidLocation
	}
	return s.mutate(ctx, st, "app.Equip", func(c *daggerheart.Character) error {
		index := -1
		for i, entry := range c.Inventory {
			if entry.ID == inventoryID {
				index = i
			}
		}
		if index < 0 {
			return ErrUnknownItem
		}
		if location.Equipped() {
			for i := range c.Inventory {
				if i != index && c.Inventory[i].Location == location {
					c.Inventory[i].Location = daggerheart.LocationBackpack
				}
			}
		}
		c.Inventory[index].Location = location
		return nil
	})
}

// SetUserModifiers replaces the manual modifiers for stat. Modifiers without
// an id are assigned one.
func (s *Service) SetUserModifiers(ctx context.Context, st *State, stat string, mods []daggerheart.Modifier) (daggerheart.Character, error) {
	return s.mutate(ctx, st, "app.SetUserModifiers", func(c *daggerheart.Character) error {
		if c.Modifiers == nil {
			c.Modifiers = map[string][]daggerheart.Modifier{}
		}
		replaced := make([]daggerheart.Modifier, 0, len(mods))
		for _, mod := range mods {
			if strings.TrimSpace(mod.ID) == "" {
				modID, err := s.idGenerator()
				if err != nil {
					return fmt.Errorf("generate modifier id: %w", err)
				}
				mod.ID = modID
			}
			mod.Source = daggerheart.SourceUser
			replaced = append(replaced, mod)
		}
		c.Modifiers[stat] = daggerheart.DedupeModifiers(replaced)
		return nil
	})
}

// mutate applies fn to a copy of the active character, recomputes derived
// stats and stores the result optimistically.
func (s *Service) mutate(ctx context.Context, st *State, name string, fn func(*daggerheart.Character) error) (out daggerheart.Character, err error) {
	c, ok := st.Character()
	if !ok {
		return daggerheart.Character{}, ErrNoActiveCharacter
	}
	ctx, span := s.span(ctx, name, c.ID)
	defer func() { finish(span, err) }()

	if err := fn(&c); err != nil {
		return daggerheart.Character{}, err
	}
	next := stats.Recompute(c)
	err = s.write(ctx, st, next, func(ctx context.Context) error {
		return s.store.PutCharacter(ctx, next)
	})
	if err != nil {
		return daggerheart.Character{}, fmt.Errorf("store character: %w", err)
	}
	return next, nil
}

// write installs c in st, marks it pending and runs remote. A failed remote
// restores the previous character.
func (s *Service) write(ctx context.Context, st *State, c daggerheart.Character, remote func(context.Context) error) error {
	local := func() func() {
		restore := st.SetCharacter(c)
		st.setPending(true)
		return restore
	}
	_, err := Optimistic(ctx, local, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, remote(ctx)
	})
	st.setPending(false)
	return err
}
