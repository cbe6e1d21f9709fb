package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/colony/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, end := range []int32{100, 200} {
		stats := WindowStats{
			WindowEndRound: end,
			TotalAnts:      3,
			Teams: []TeamWindowStats{
				{WindowEnd: end, TeamID: 1, Team: "red", Ants: 1},
				{WindowEnd: end, TeamID: 2, Team: "yellow", Ants: 2},
			},
		}
		if err := om.WriteTelemetry(stats); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteMilestone(Milestone{Type: MilestoneFoodExhausted, Round: 200}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		file   string
		lines  int
		header string
	}{
		{"telemetry.csv", 3, "window_end,ants,"},
		{"teams.csv", 5, "window_end,team_id,team,ants,"},
		{"milestones.csv", 2, "type,round,team,description"},
		{"perf.csv", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			text := strings.TrimSpace(string(data))
			if tt.lines == 0 {
				if text != "" {
					t.Errorf("expected empty file, got %q", text)
				}
				return
			}
			lines := strings.Split(text, "\n")
			if len(lines) != tt.lines {
				t.Errorf("%d lines, want %d:\n%s", len(lines), tt.lines, text)
			}
			if !strings.HasPrefix(lines[0], tt.header) {
				t.Errorf("header = %q, want prefix %q", lines[0], tt.header)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
