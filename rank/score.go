package rank

import "strings"

// accessoryKeywords mark listings that are add-ons rather than the product
// itself. A hit only penalizes when the user did not ask for the accessory.
var accessoryKeywords = map[string]struct{}{
	"adapter": {}, "bag": {}, "battery": {}, "bundle": {}, "cable": {},
	"case": {}, "charger": {}, "charging": {}, "controller": {}, "cord": {},
	"cover": {}, "dock": {}, "earbuds": {}, "earphones": {}, "grip": {},
	"headset": {}, "holder": {}, "joystick": {}, "keyboard": {}, "kit": {},
	"mouse": {}, "mount": {}, "pouch": {}, "power": {}, "protector": {},
	"protective": {}, "screen": {}, "shell": {}, "skin": {}, "stand": {},
	"strap": {}, "stylus": {}, "travel": {},
}

// Key is the relevance score of one name against one query. Fields are
// compared in declaration order; higher ExactPhrase/MatchCount/Boost and
// lower Missing/Penalty rank first. Missing is derivable from MatchCount and
// the token count but stays its own slot so tie-break order survives future
// changes to the other slots.
type Key struct {
	ExactPhrase int
	MatchCount  int
	Missing     int
	Boost       int
	Penalty     int
}

// Less orders keys best-first.
func (k Key) Less(other Key) bool {
	if k.ExactPhrase != other.ExactPhrase {
		return k.ExactPhrase > other.ExactPhrase
	}
	if k.MatchCount != other.MatchCount {
		return k.MatchCount > other.MatchCount
	}
	if k.Missing != other.Missing {
		return k.Missing < other.Missing
	}
	if k.Boost != other.Boost {
		return k.Boost > other.Boost
	}
	return k.Penalty < other.Penalty
}

// Score computes the relevance key for a product name. With no query tokens
// every name gets the zero key and ordering falls to later tie-breaks.
func Score(name, query string, tokens []string) Key {
	if len(tokens) == 0 {
		return Key{}
	}
	nameTokens := tokenSet(name)
	match := 0
	for _, tok := range tokens {
		if _, ok := nameTokens[tok]; ok {
			match++
		}
	}
	exact := 0
	if strings.Contains(strings.ToLower(name), strings.ToLower(query)) {
		exact = 1
	}
	return Key{
		ExactPhrase: exact,
		MatchCount:  match,
		Missing:     len(tokens) - match,
		Boost:       consoleBoost(nameTokens, tokens),
		Penalty:     accessoryPenalty(nameTokens, tokens),
	}
}

// consoleBoost disambiguates "switch lite" queries: without it, light-switch
// covers and network-switch accessories crowd out the console itself.
func consoleBoost(nameTokens map[string]struct{}, tokens []string) int {
	if !containsAll(tokens, "switch", "lite") {
		return 0
	}
	for _, word := range []string{"console", "system", "handheld"} {
		if _, ok := nameTokens[word]; ok {
			return 1
		}
	}
	if hasAll(nameTokens, "nintendo", "switch", "lite") {
		return 1
	}
	return 0
}

func accessoryPenalty(nameTokens map[string]struct{}, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	hit := false
	for tok := range nameTokens {
		if _, ok := accessoryKeywords[tok]; !ok {
			continue
		}
		hit = true
		// The user asked for this accessory: no penalty.
		for _, qt := range tokens {
			if qt == tok {
				return 0
			}
		}
	}
	if hit {
		return 1
	}
	return 0
}

func containsAll(tokens []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, tok := range tokens {
			if tok == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasAll(set map[string]struct{}, want ...string) bool {
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
