package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneHiveDestroyed  MilestoneType = "hive_destroyed"
	MilestoneTeamEliminated MilestoneType = "team_eliminated"
	MilestoneFoodExhausted  MilestoneType = "food_exhausted"
	MilestoneForagingSurge  MilestoneType = "foraging_surge"
)

// Milestone represents an automatically detected moment in a run.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Round       int32         `csv:"round"`
	Team        string        `csv:"team"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"round", m.Round,
		"team", m.Team,
		"description", m.Description,
	)
}

// MilestoneDetector detects interesting moments from consecutive stats windows.
type MilestoneDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	surgeMultiplier float64

	// State tracking
	hiveAlive  map[int]bool
	eliminated map[int]bool
	hadFood    bool
}

// NewMilestoneDetector creates a detector with the given history size.
func NewMilestoneDetector(historySize int, surgeMultiplier float64) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3
	}
	if surgeMultiplier <= 1 {
		surgeMultiplier = 2
	}
	return &MilestoneDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		surgeMultiplier: surgeMultiplier,
		hiveAlive:       make(map[int]bool),
		eliminated:      make(map[int]bool),
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone

	for _, t := range stats.Teams {
		if alive, seen := md.hiveAlive[t.TeamID]; seen && alive && !t.HiveAlive {
			milestones = append(milestones, Milestone{
				Type:        MilestoneHiveDestroyed,
				Round:       stats.WindowEndRound,
				Team:        t.Team,
				Description: fmt.Sprintf("Hive of %s destroyed with %d ants left", t.Team, t.Ants),
			})
		}
		md.hiveAlive[t.TeamID] = t.HiveAlive

		if t.Ants == 0 && !t.HiveAlive && !md.eliminated[t.TeamID] {
			md.eliminated[t.TeamID] = true
			milestones = append(milestones, Milestone{
				Type:        MilestoneTeamEliminated,
				Round:       stats.WindowEndRound,
				Team:        t.Team,
				Description: fmt.Sprintf("Team %s has no ants and no hive", t.Team),
			})
		}
	}

	if stats.FoodPiles == 0 && md.hadFood {
		milestones = append(milestones, Milestone{
			Type:        MilestoneFoodExhausted,
			Round:       stats.WindowEndRound,
			Description: "Last food pile consumed",
		})
	}
	md.hadFood = stats.FoodPiles > 0

	if m := md.checkForagingSurge(stats); m != nil {
		milestones = append(milestones, *m)
	}

	md.addToHistory(stats)
	return milestones
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []WindowStats {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

func (md *MilestoneDetector) checkForagingSurge(stats WindowStats) *Milestone {
	history := md.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.TotalDeliveries
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	current := float64(stats.TotalDeliveries)
	if current > avg*md.surgeMultiplier && stats.TotalDeliveries >= 5 {
		return &Milestone{
			Type:        MilestoneForagingSurge,
			Round:       stats.WindowEndRound,
			Description: fmt.Sprintf("%d deliveries is %.1fx average (%.1f)", stats.TotalDeliveries, current/avg, avg),
		}
	}
	return nil
}

// Reset forgets tracked state, e.g. after the grid is reset.
func (md *MilestoneDetector) Reset() {
	md.historyIdx = 0
	md.historyFull = false
	md.hadFood = false
	clear(md.hiveAlive)
	clear(md.eliminated)
}
