package parser

import (
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		source string
		ops    string
	}{
		{"++>+++<", "++>+++<"},
		{"+[->+<]", "+[->+<]"},
		{"[[[-]]]", "[[[-]]]"},
		{",>", ",>"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			prog, err := Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got := string(prog.Ops()); got != tt.ops {
				t.Errorf("Expected %q, got %q", tt.ops, got)
			}
		})
	}
}

func TestCommentsElided(t *testing.T) {
	source := "set two cells\n++> and three here +++\n<back to start"
	prog, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := string(prog.Ops()); got != "++>+++<" {
		t.Errorf("Expected %q, got %q", "++>+++<", got)
	}
}

func TestUnbalancedBrackets(t *testing.T) {
	for _, source := range []string{"[", "]", "+[->+<", "[]]"} {
		if _, err := Parse(source); err == nil {
			t.Errorf("Expected parse error for %q", source)
		}
	}
}

func TestListing(t *testing.T) {
	prog, err := Parse("+[-]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := strings.Join([]string{
		"+  inc",
		"[",
		"  -  dec",
		"]",
		"",
	}, "\n")
	if got := prog.Listing(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestListingNesting(t *testing.T) {
	prog, err := Parse("[[.]]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	listing := prog.Listing()
	if !strings.Contains(listing, "    .  out") {
		t.Errorf("Expected doubly indented body, got %q", listing)
	}
}
