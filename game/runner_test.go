package game

import (
	"context"
	"testing"
	"time"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/config"
)

func waitForSnapshot(t *testing.T, r *Runner, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap, ok := r.Export(); ok && cond(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for snapshot")
	return Snapshot{}
}

func newTestRunner(t *testing.T) (*Runner, *Game) {
	t.Helper()
	opts := quietOptions()
	opts.Speed = 2
	g := New(12, 12, opts, 9)
	g.AddTeam("red", red, 3)
	return NewRunner(g, 1, 8), g
}

func TestRunnerPublishesAdvancingFrames(t *testing.T) {
	r, _ := newTestRunner(t)
	if _, ok := r.Export(); ok {
		t.Fatal("snapshot available before start")
	}
	r.Start(context.Background())
	defer r.Stop()

	first := waitForSnapshot(t, r, func(Snapshot) bool { return true })
	waitForSnapshot(t, r, func(s Snapshot) bool { return s.Frame > first.Frame })
}

func TestRunnerAppliesPlacements(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Start(context.Background())
	defer r.Stop()

	at := components.Coord{X: 3, Y: 7}
	if !r.Put(Placement{Kind: components.KindDirt, At: at}) {
		t.Fatal("placement queue rejected a request")
	}
	waitForSnapshot(t, r, func(s Snapshot) bool { return s.At(at) == components.DirtColor })

	info, ok := r.Inspect(at)
	if !ok || info.Kind != components.KindDirt {
		t.Errorf("Inspect(%v) = %v, %v; want dirt", at, info.Kind, ok)
	}
}

func TestRunnerOptionsLatestWins(t *testing.T) {
	r, g := newTestRunner(t)
	o := r.Options()
	o.Rage = 3
	r.SetOptions(o)
	o.Rage = 7
	r.SetOptions(o)

	if got := r.Options().Rage; got != 7 {
		t.Errorf("Options().Rage = %d, want 7", got)
	}
	if got := len(r.options); got != 1 {
		t.Errorf("pending option updates = %d, want 1", got)
	}

	r.Start(context.Background())
	waitForSnapshot(t, r, func(s Snapshot) bool { return s.Frame > 0 })
	r.Stop()

	// The loop has exited, so the game is ours again.
	if got := g.Options().Rage; got != 7 {
		t.Errorf("applied rage = %d, want 7", got)
	}
}

func TestRunnerReset(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Start(context.Background())
	defer r.Stop()

	waitForSnapshot(t, r, func(s Snapshot) bool { return s.Frame > 5 })
	r.Reset()
	want := config.Cfg().Setup.Teams
	snap := waitForSnapshot(t, r, func(s Snapshot) bool { return len(s.Teams) == len(want) })
	for i, ts := range snap.Teams {
		if ts.Team.Name != want[i].Name {
			t.Errorf("team %d = %s, want %s", i, ts.Team.Name, want[i].Name)
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not exit after cancel")
	}
	if _, ok := r.Inspect(components.Coord{}); ok {
		t.Error("Inspect answered after the loop exited")
	}
	r.Stop()
	r.Stop()
}

func TestRunnerStopWithoutStart(t *testing.T) {
	r, _ := newTestRunner(t)
	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a runner that never started")
	}
}
