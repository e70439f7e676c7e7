package ffmetadata

import "testing"

func TestLookup(t *testing.T) {
	lines := []string{
		";FFMETADATA1",
		"album=The Hobbit",
		"title=Riddles in the Dark\r",
		"comment=a=b=c",
		"titlesort=Hobbit",
		"artist=",
	}
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"album", "The Hobbit", true},
		{"title", "Riddles in the Dark", true},
		{"comment", "a=b=c", true},
		{"artist", "", true},
		{"genre", "", false},
		{"titl", "", false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.key, lines)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("Lookup(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLookupReturnsFirstMatch(t *testing.T) {
	got, ok := Lookup("time", []string{"size=1kB", "time=00:00:01.00", "time=00:00:02.00"})
	if !ok || got != "00:00:01.00" {
		t.Fatalf("expected first match, got %q %v", got, ok)
	}
}

func TestLookupTagUnescapesAndSkipsBlank(t *testing.T) {
	lines := []string{`title=Part 1\; The Beginning`, "artist=  "}
	got, ok := LookupTag("title", lines)
	if !ok || got != "Part 1; The Beginning" {
		t.Fatalf("unexpected title %q %v", got, ok)
	}
	if _, ok := LookupTag("artist", lines); ok {
		t.Fatal("expected blank artist to be treated as absent")
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); got != nil {
		t.Fatalf("expected nil for empty output, got %q", got)
	}
	got := SplitLines(";FFMETADATA1\r\nalbum=x\r\n")
	if len(got) != 2 || got[0] != ";FFMETADATA1" || got[1] != "album=x" {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"a=b",
		"semi;colon",
		"#hash",
		`back\slash`,
		"two\nlines",
	}
	for _, value := range values {
		if got := Unescape(Escape(value)); got != value {
			t.Fatalf("round trip of %q gave %q", value, got)
		}
	}
	if got := Escape("a=b;c"); got != `a\=b\;c` {
		t.Fatalf("unexpected escape %q", got)
	}
}

func TestEscapeNormalizesToNFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	if got := Escape(decomposed); got != "Caf\u00e9" {
		t.Fatalf("expected NFC form, got %q", got)
	}
}
