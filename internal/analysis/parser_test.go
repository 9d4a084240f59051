package analysis

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseBareObject(t *testing.T) {
	raw := `{"emotions":["fear","greed"],"rules_broken":["overtrading"],"biases":[],"advice":"slow down"}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Fields{
		Emotions:    []string{"fear", "greed"},
		RulesBroken: []string{"overtrading"},
		Biases:      []string{},
		Advice:      "slow down",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestParseFencedAndProseWrapped(t *testing.T) {
	bare := `{"emotions":["fear"],"rules_broken":[],"biases":[],"advice":"ok"}`
	variants := []string{
		"```json\n" + bare + "\n```",
		"```\n" + bare + "\n```",
		"Here is the analysis you asked for:\n" + bare + "\nLet me know if you need more.",
	}

	want, err := Parse(bare)
	if err != nil {
		t.Fatalf("Parse bare: %v", err)
	}

	for _, raw := range variants {
		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("wrapped variant parsed differently: got %+v want %+v", got, want)
		}
	}
}

func TestParseMissingKeysDefault(t *testing.T) {
	got, err := Parse(`{"advice":"just this"}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Emotions) != 0 || len(got.RulesBroken) != 0 || len(got.Biases) != 0 {
		t.Fatalf("missing keys should default to empty lists: %+v", got)
	}
	if got.Advice != "just this" {
		t.Fatalf("advice=%q", got.Advice)
	}
}

func TestParseDropsNonStringListElements(t *testing.T) {
	got, err := Parse(`{"emotions":["fear",3,true,{"x":1},"greed"],"advice":"a"}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"fear", "greed"}
	if !reflect.DeepEqual(got.Emotions, want) {
		t.Fatalf("emotions=%v want %v", got.Emotions, want)
	}
}

func TestParseCoercesNonStringAdvice(t *testing.T) {
	got, err := Parse(`{"advice":42}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Advice != "42" {
		t.Fatalf("advice=%q", got.Advice)
	}

	got, err = Parse(`{"advice":null}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Advice != "" {
		t.Fatalf("advice=%q", got.Advice)
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	got, err := Parse(`{"advice":"a","confidence":0.9,"notes":["x"]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Advice != "a" {
		t.Fatalf("advice=%q", got.Advice)
	}
}

func TestParseFailure(t *testing.T) {
	cases := []string{
		"",
		"no json here at all",
		"{ broken json",
		`{"unterminated": "string`,
		"[1,2,3]",
	}
	for _, raw := range cases {
		if _, err := Parse(raw); !errors.Is(err, ErrParse) {
			t.Fatalf("Parse(%q): want ErrParse, got %v", raw, err)
		}
	}
}

func TestParseBracesInsideStrings(t *testing.T) {
	raw := `prefix {"emotions":[],"rules_broken":[],"biases":[],"advice":"use { and } carefully"} suffix`
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Advice != "use { and } carefully" {
		t.Fatalf("advice=%q", got.Advice)
	}
}
