package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minelog/minelog-go/pkg/minelog"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

func TestValidFormats(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"jsonl", true},
		{"pretty", true},
		{"json", false},
		{"xml", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := ValidFormats[tt.format]; got != tt.valid {
				t.Errorf("ValidFormats[%q] = %v, want %v", tt.format, got, tt.valid)
			}
			if err := checkFormat(tt.format); (err == nil) != tt.valid {
				t.Errorf("checkFormat(%q) error = %v", tt.format, err)
			}
		})
	}
}

// playerMatches returns the <player> chat tags found in writeLogs' fixture.
func playerMatches(t *testing.T) ([]minelog.Match, []string) {
	t.Helper()
	s, err := minelog.New(writeLogs(t))
	if err != nil {
		t.Fatal(err)
	}
	pat := minelog.MustCompile([]byte(`<(?P<player>\w+)>`))
	matches, err := s.MatchesAll(context.Background(), pat)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	return matches, pat.SubexpNames()
}

func TestOutputMatch_JSON(t *testing.T) {
	matches, names := playerMatches(t)

	var buf bytes.Buffer
	if err := OutputMatch("jsonl", matches[0], names, &buf); err != nil {
		t.Fatalf("OutputMatch() error = %v", err)
	}

	var decoded matchRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("OutputMatch() produced invalid JSON: %v", err)
	}
	if decoded.Match != "<Steve>" {
		t.Errorf("decoded.Match = %q, want %q", decoded.Match, "<Steve>")
	}
	if decoded.Groups["player"] != "Steve" {
		t.Errorf("decoded.Groups = %v", decoded.Groups)
	}
	if decoded.Date != "2024-01-01" || decoded.Number != 1 {
		t.Errorf("decoded date/number = %q/%d", decoded.Date, decoded.Number)
	}
}

func TestOutputMatch_UnknownFormat(t *testing.T) {
	matches, names := playerMatches(t)
	if err := OutputMatch("xml", matches[0], names, &bytes.Buffer{}); err == nil {
		t.Error("OutputMatch() with unknown format should fail")
	}
}

// TestOutputMatch_Golden tests output formats using golden files.
// Run with -update-golden to update the golden files.
func TestOutputMatch_Golden(t *testing.T) {
	matches, names := playerMatches(t)
	update := *updateGolden || os.Getenv("UPDATE_GOLDEN") == "1"

	for _, format := range []string{"jsonl", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			for _, m := range matches {
				if err := OutputMatch(format, m, names, &buf); err != nil {
					t.Fatalf("OutputMatch() error = %v", err)
				}
			}

			golden := filepath.Join("testdata", "golden", "matches_"+format+".golden")
			if update {
				if err := os.WriteFile(golden, buf.Bytes(), 0o644); err != nil {
					t.Fatalf("failed to write golden file: %v", err)
				}
				t.Logf("updated golden file: %s", golden)
				return
			}

			expected, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("failed to read golden file %s: %v\nRun with -update-golden to create it", golden, err)
			}
			if got, want := buf.String(), string(expected); got != want {
				t.Errorf("output mismatch for %s:\ngot:\n%s\nwant:\n%s", golden, got, want)
			}
		})
	}
}

func TestOutputSource(t *testing.T) {
	archive := minelog.Source{
		Kind:   minelog.KindArchive,
		Path:   "/logs/2024-01-15-3.log.gz",
		Name:   "2024-01-15-3.log.gz",
		Date:   "2024-01-15",
		Number: 3,
	}
	latest := minelog.Source{
		Kind: minelog.KindLatest,
		Path: "/logs/latest.log",
		Name: "latest.log",
	}

	var buf bytes.Buffer
	if err := OutputSource("jsonl", archive, &buf); err != nil {
		t.Fatalf("OutputSource() error = %v", err)
	}
	want := `{"kind":"archive","path":"/logs/2024-01-15-3.log.gz","name":"2024-01-15-3.log.gz","date":"2024-01-15","number":3}` + "\n"
	if buf.String() != want {
		t.Errorf("jsonl = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := OutputSource("pretty", latest, &buf); err != nil {
		t.Fatalf("OutputSource() error = %v", err)
	}
	if buf.String() != "latest  latest.log\n" {
		t.Errorf("pretty = %q", buf.String())
	}

	if err := OutputSource("xml", latest, &buf); err == nil {
		t.Error("OutputSource() with unknown format should fail")
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"Steve", "Steve"},
		{"<Steve>", "<Steve>"},
		{"hi there", `"hi there"`},
		{"a=b", `"a=b"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\logs`, `"C:\\logs"`},
		{"line\nnext", `"line\nnext"`},
		{"tab\there", `"tab\there"`},
		{"cr\r", `"cr\r"`},
		{"bell\a", `"bell\x07"`},
		{"del\x7f", `"del\x7f"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := quoteIfNeeded(tt.in); got != tt.want {
				t.Errorf("quoteIfNeeded(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatGroups(t *testing.T) {
	got := formatGroups(map[string]string{
		"player": "Steve",
		"msg":    "hello world",
		"empty":  "",
	})
	want := `empty="" msg="hello world" player=Steve`
	if got != want {
		t.Errorf("formatGroups() = %s, want %s", got, want)
	}
	if strings.Contains(formatGroups(nil), "=") {
		t.Error("formatGroups(nil) should be empty")
	}
}
