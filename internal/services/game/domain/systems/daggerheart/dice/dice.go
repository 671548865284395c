// Package dice parses and rescales damage-die expressions such as "2d6+1d4+3".
//
// Parsing is lenient: segments that are neither a die term nor an integer are
// dropped rather than reported. Rolling is left to callers.
package dice

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dieTerm        = regexp.MustCompile(`^(\d+)?d(\d+)$`)
	damageTypeTags = regexp.MustCompile(`physical|magic|phy|mag`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Notation is a parsed dice expression. Dice holds normalized NdM tokens.
type Notation struct {
	Dice     []string `json:"dice"`
	Modifier int      `json:"modifier"`
}

// Term is one NdM die term.
type Term struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// String renders the dice joined by "+" followed by a non-zero modifier.
func (n Notation) String() string {
	out := strings.Join(n.Dice, "+")
	if n.Modifier == 0 {
		return out
	}
	if out == "" || n.Modifier < 0 {
		return out + strconv.Itoa(n.Modifier)
	}
	return out + "+" + strconv.Itoa(n.Modifier)
}

// Terms returns the die terms as counts and sides.
func (n Notation) Terms() []Term {
	terms := make([]Term, 0, len(n.Dice))
	for _, token := range n.Dice {
		if term, ok := parseTerm(token); ok {
			terms = append(terms, term)
		}
	}
	return terms
}

// ParseDiceNotation parses s into die terms and a flat modifier.
// Damage-type tags (phy, mag, physical, magic) and whitespace are ignored.
// A minus starts a negative segment, so "1d8-1" keeps both the die and -1.
func ParseDiceNotation(s string) Notation {
	out := Notation{Dice: []string{}}
	for _, segment := range strings.Split(strings.ReplaceAll(normalize(s), "-", "+-"), "+") {
		if segment == "" {
			continue
		}
		if term, ok := parseTerm(segment); ok {
			out.Dice = append(out.Dice, formatTerm(term))
			continue
		}
		if value, err := strconv.Atoi(segment); err == nil {
			out.Modifier += value
		}
	}
	return out
}

// ParseDamageString normalizes a damage string such as "d8 + 2 phy" into
// "1d8+2". Input without any die term is returned unchanged.
func ParseDamageString(s string) string {
	parsed := ParseDiceNotation(s)
	if len(parsed.Dice) == 0 {
		return s
	}
	return parsed.String()
}

// CalculateWeaponDamage multiplies every die count in base by multiplier,
// leaving the flat modifier as-is: ("d8+d6", 2) yields "2d8+2d6".
// Input without a die term is returned unchanged. Multipliers below 1 are
// treated as 1.
func CalculateWeaponDamage(base string, multiplier int) string {
	if multiplier < 1 {
		multiplier = 1
	}
	parsed := ParseDiceNotation(base)
	if len(parsed.Dice) == 0 {
		return base
	}
	scaled := Notation{Dice: make([]string, 0, len(parsed.Dice)), Modifier: parsed.Modifier}
	for _, term := range parsed.Terms() {
		term.Count *= multiplier
		scaled.Dice = append(scaled.Dice, formatTerm(term))
	}
	return scaled.String()
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = whitespace.ReplaceAllString(s, "")
	return damageTypeTags.ReplaceAllString(s, "")
}

func parseTerm(segment string) (Term, bool) {
	match := dieTerm.FindStringSubmatch(segment)
	if match == nil {
		return Term{}, false
	}
	count := 1
	if match[1] != "" {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return Term{}, false
		}
		count = n
	}
	sides, err := strconv.Atoi(match[2])
	if err != nil {
		return Term{}, false
	}
	return Term{Count: count, Sides: sides}, true
}

func formatTerm(term Term) string {
	return strconv.Itoa(term.Count) + "d" + strconv.Itoa(term.Sides)
}
