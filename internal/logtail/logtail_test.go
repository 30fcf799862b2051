package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cartly.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"info","msg":"line %d","time":"2025-01-01T12:00:0%dZ"}`, i, i%10))
	}
	path := writeLog(t, lines)

	tests := []struct {
		name      string
		maxLines  int
		wantCount int
		wantFirst string
	}{
		{"zero", 0, 0, ""},
		{"negative", -1, 0, ""},
		{"partial", 5, 5, "line 6"},
		{"exact", 10, 10, "line 1"},
		{"more than exists", 20, 10, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("Read() returned %d entries, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount > 0 {
				if got[0].Message != tt.wantFirst {
					t.Fatalf("first entry = %q, want %q", got[0].Message, tt.wantFirst)
				}
				if got[len(got)-1].Message != "line 10" {
					t.Fatalf("last entry = %q, want line 10", got[len(got)-1].Message)
				}
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	path := writeLog(t, []string{"first", "", "   ", "second"})
	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("Read() = %#v, want first and second", got)
	}
}

func TestParse(t *testing.T) {
	e := Parse(`{"component":"checkout","level":"warning","msg":"checkout failed","time":"2025-03-01T10:04:05Z"}`)
	if e.Component != "checkout" || e.Level != "warning" || e.Message != "checkout failed" {
		t.Fatalf("Parse() = %#v", e)
	}
	if !e.Time.Equal(time.Date(2025, 3, 1, 10, 4, 5, 0, time.UTC)) {
		t.Fatalf("Time = %v", e.Time)
	}
	if got := e.String(); got != "10:04:05 WARNING [checkout] checkout failed" {
		t.Fatalf("String() = %q", got)
	}

	raw := Parse("not json")
	if raw.Message != "not json" || raw.Level != "" {
		t.Fatalf("Parse(raw) = %#v", raw)
	}
	if raw.String() != "not json" {
		t.Fatalf("String() = %q", raw.String())
	}
}
