package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/mcp/domain"
)

type fakeStore struct {
	cards    []cards.Card
	closeErr error
	closed   int
}

func (f *fakeStore) ListDomainCards(context.Context) ([]cards.Card, error) {
	return f.cards, nil
}

func (f *fakeStore) Close() error {
	f.closed++
	return f.closeErr
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

// startSession serves s over an in-memory transport and returns a connected
// client session plus a stop func that cancels and returns the serve error.
func startSession(t *testing.T, s *Server) (*mcp.ClientSession, func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	stop := func() error {
		_ = session.Close()
		cancel()
		select {
		case err := <-serveErr:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("serve did not stop after cancel")
			return nil
		}
	}
	return session, stop
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestServerListsTools(t *testing.T) {
	store := &fakeStore{}
	s, err := New(store)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session, stop := startSession(t, s)

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"derive_stats", "parse_dice", "query_cards", "validate_level_up", "weapon_damage"}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tools = %v, want %v", names, want)
		}
	}

	if err := stop(); err != nil {
		t.Fatalf("serve returned error: %v", err)
	}
	if store.closed != 1 {
		t.Fatalf("store closed %d times, want 1", store.closed)
	}
}

func TestServerCallsTools(t *testing.T) {
	store := &fakeStore{cards: []cards.Card{
		{ID: "get-back-up", Name: "Get Back Up", Domain: "valor", Level: 1},
		{ID: "whirlwind", Name: "Whirlwind", Domain: "blade", Level: 1, RecallCost: 1},
	}}
	s, err := New(store)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session, stop := startSession(t, s)
	defer func() {
		if err := stop(); err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	}()
	ctx := context.Background()

	damage, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "weapon_damage",
		Arguments: map[string]any{"damage": "d10+2", "proficiency": 3},
	})
	if err != nil {
		t.Fatalf("call weapon_damage: %v", err)
	}
	if damage == nil || damage.IsError {
		t.Fatalf("weapon_damage failed: %+v", damage)
	}
	if got := decodeStructuredContent[domain.WeaponDamageResult](t, damage.StructuredContent); got.Damage != "3d10+2" {
		t.Fatalf("damage = %q, want 3d10+2", got.Damage)
	}

	query, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "query_cards",
		Arguments: map[string]any{"filter": "recall_cost > 0"},
	})
	if err != nil {
		t.Fatalf("call query_cards: %v", err)
	}
	if query == nil || query.IsError {
		t.Fatalf("query_cards failed: %+v", query)
	}
	got := decodeStructuredContent[domain.QueryCardsResult](t, query.StructuredContent)
	if len(got.Cards) != 1 || got.Cards[0].ID != "whirlwind" {
		t.Fatalf("cards = %+v", got.Cards)
	}

	failed, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "parse_dice",
		Arguments: map[string]any{"notation": ""},
	})
	if err != nil {
		t.Fatalf("call parse_dice: %v", err)
	}
	if failed == nil || !failed.IsError {
		t.Fatalf("parse_dice with empty notation = %+v, want tool error", failed)
	}
}

func TestServeReportsCloseError(t *testing.T) {
	store := &fakeStore{closeErr: errors.New("locked")}
	s, err := New(store)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	_, stop := startSession(t, s)
	if err := stop(); err == nil {
		t.Fatal("expected close error")
	}
}

func TestServeUnconfigured(t *testing.T) {
	var s *Server
	if err := s.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil server")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close nil server: %v", err)
	}
}
