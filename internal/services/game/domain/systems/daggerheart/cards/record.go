// Package cards normalizes card-like records and answers domain and level
// eligibility questions.
package cards

import (
	"math"
	"strconv"
	"strings"
)

// UnknownName is reported for cards without a name.
const UnknownName = "Unknown Card"

// Record is a loosely shaped card as stored or imported. Fields may sit at
// the top level or under a "data" payload; the payload wins.
type Record map[string]any

func (r Record) lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	if data := payload(r["data"]); data != nil {
		if value, ok := data[key]; ok && value != nil {
			return value, true
		}
	}
	value, ok := r[key]
	return value, ok && value != nil
}

func payload(value any) map[string]any {
	switch data := value.(type) {
	case map[string]any:
		return data
	case Record:
		return data
	}
	return nil
}

func (r Record) str(key string) string {
	value, ok := r.lookup(key)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func (r Record) integer(key string, fallback int) int {
	value, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// ID returns the card id, or "".
func ID(r Record) string { return r.str("id") }

// Name returns the card name, or UnknownName.
func Name(r Record) string {
	if name := r.str("name"); name != "" {
		return name
	}
	return UnknownName
}

// Description returns the card description, or "".
func Description(r Record) string { return r.str("description") }

// Type returns the card type, or "".
func Type(r Record) string { return r.str("type") }

// Domain returns the card domain, or "".
func Domain(r Record) string { return r.str("domain") }

// Level returns the card level, or 1 when absent or non-numeric.
func Level(r Record) int { return r.integer("level", 1) }

// RecallCost returns the card recall cost, or 0.
func RecallCost(r Record) int { return r.integer("recall_cost", 0) }
