package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractDeterministic(t *testing.T) {
	text := "I was anxious and frustrated, overtraded after a loss and felt FOMO."
	first := Extract(text)
	for i := 0; i < 20; i++ {
		if got := Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestExtractTotality(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"nothing matches in this sentence about gardening",
		strings.Repeat("a very long entry with no keywords ", 5000),
		"ünïcode 行情 text",
	}
	for _, text := range cases {
		got := Extract(text)
		if got.Emotions == nil || got.RulesBroken == nil || got.Biases == nil {
			t.Fatalf("Extract(%.20q): nil list in %+v", text, got)
		}
		if strings.TrimSpace(got.Advice) == "" {
			t.Fatalf("Extract(%.20q): empty advice", text)
		}
	}
}

func TestExtractNoMatchesGenericAdvice(t *testing.T) {
	got := Extract("a calm, uneventful day")
	if len(got.Emotions) != 0 || len(got.RulesBroken) != 0 || len(got.Biases) != 0 {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got.Advice != defaultAdvice {
		t.Fatalf("advice=%q want generic default", got.Advice)
	}
}

func TestExtractOvertradingScenario(t *testing.T) {
	got := Extract("I overtraded today and broke my rules after a loss.")

	found := false
	for _, r := range got.RulesBroken {
		if r == "overtrading" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rules_broken=%v, want overtrading", got.RulesBroken)
	}
	if strings.TrimSpace(got.Advice) == "" {
		t.Fatal("advice must not be empty")
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	lower := Extract("i felt fomo and revenge traded")
	upper := Extract("I FELT FOMO AND REVENGE TRADED")
	if !reflect.DeepEqual(lower, upper) {
		t.Fatalf("case changed result: %+v vs %+v", lower, upper)
	}
}

func TestExtractDeduplicatesLabels(t *testing.T) {
	// "afraid" and "scared" both map to fear; the label must appear once.
	got := Extract("I was afraid, truly scared, full of fear.")
	count := 0
	for _, e := range got.Emotions {
		if e == "fear" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("fear appears %d times in %v", count, got.Emotions)
	}
}

func TestExtractTableOrderNotTextOrder(t *testing.T) {
	// Bias trigger mentioned before the rule trigger in the text; output
	// order still follows table declaration, rules before nothing else
	// within their own list.
	got := Extract("pure fomo, then I overtraded and revenge traded")
	wantRules := []string{"overtrading", "revenge trading"}
	if !reflect.DeepEqual(got.RulesBroken, wantRules) {
		t.Fatalf("rules=%v want %v", got.RulesBroken, wantRules)
	}
	if len(got.Biases) == 0 || got.Biases[0] != "FOMO" {
		t.Fatalf("biases=%v", got.Biases)
	}
}
