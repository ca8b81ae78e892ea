package rank

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Nintendo Switch-Lite (Turquoise) 32GB!")
	want := []string{"nintendo", "switch", "lite", "turquoise", "32gb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize: got %v, want %v", got, want)
	}
}

func TestQueryTokens_DropsStopwordsAndShortTokens(t *testing.T) {
	got := QueryTokens("a deal on the Nintendo Switch for sale")
	want := []string{"nintendo", "switch"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("QueryTokens: got %v, want %v", got, want)
	}
}

func TestQueryTokens_AllStopwords(t *testing.T) {
	if got := QueryTokens("a deal for sale"); got != nil {
		t.Fatalf("QueryTokens: expected nil, got %v", got)
	}
}

func TestIsRelevantName(t *testing.T) {
	tests := []struct {
		name    string
		product string
		tokens  []string
		want    bool
	}{
		{"shared token", "USB Light Switch Cover", []string{"nintendo", "switch"}, true},
		{"disjoint tokens", "Garden Hose 50ft", []string{"nintendo", "switch"}, false},
		{"empty query admits everything", "Garden Hose 50ft", nil, true},
		{"empty name rejected", "!!!", []string{"nintendo"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelevantName(tt.product, tt.tokens); got != tt.want {
				t.Fatalf("IsRelevantName(%q, %v) = %v, want %v", tt.product, tt.tokens, got, tt.want)
			}
		})
	}
}

func TestScore_ConsoleBeforeAccessoryBeforeUnrelated(t *testing.T) {
	query := "nintendo switch lite"
	tokens := QueryTokens(query)

	console := Score("Nintendo Switch Lite Console Turquoise", query, tokens)
	accessory := Score("Nintendo Switch Lite Carrying Case", query, tokens)
	unrelated := Score("Light Switch Wall Plate", query, tokens)

	if !console.Less(accessory) {
		t.Fatalf("console %+v should rank before accessory %+v", console, accessory)
	}
	if !accessory.Less(unrelated) {
		t.Fatalf("accessory %+v should rank before unrelated %+v", accessory, unrelated)
	}
}

func TestScore_ExactPhraseWins(t *testing.T) {
	query := "airpods pro"
	tokens := QueryTokens(query)

	exact := Score("Apple AirPods Pro 2nd Generation", query, tokens)
	scattered := Score("Pro grade earhooks compatible with AirPods", query, tokens)

	if !exact.Less(scattered) {
		t.Fatalf("exact phrase %+v should rank before scattered match %+v", exact, scattered)
	}
}

func TestScore_AccessoryQueryIsNotPenalized(t *testing.T) {
	query := "nintendo switch case"
	tokens := QueryTokens(query)

	key := Score("Nintendo Switch Carrying Case", query, tokens)
	if key.Penalty != 0 {
		t.Fatalf("asked for a case, penalty should be 0, got %d", key.Penalty)
	}
}

func TestScore_EmptyTokensGiveZeroKey(t *testing.T) {
	if key := Score("Anything At All", "the", nil); key != (Key{}) {
		t.Fatalf("expected zero key, got %+v", key)
	}
}

func TestScore_MissingTracksMatchCount(t *testing.T) {
	query := "nintendo switch lite"
	tokens := QueryTokens(query)
	key := Score("Nintendo Switch Dock", query, tokens)
	if key.MatchCount != 2 || key.Missing != 1 {
		t.Fatalf("got match=%d missing=%d, want 2/1", key.MatchCount, key.Missing)
	}
}
