package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseDiffusion)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDecide)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseDiffusion]; !ok {
		t.Error("expected diffusion phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseDecide]; !ok {
		t.Error("expected decide phase to be tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v above max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseApply)
		pc.EndTick()
	}

	if pc.filled != 5 {
		t.Errorf("window should hold 5 samples, got %d", pc.filled)
	}
	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Error("expected positive timing after the window filled")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseEvaporation)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRelease)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseRelease] <= stats.PhasePct[PhaseEvaporation] {
		t.Errorf("expected release (%v%%) > evaporation (%v%%)",
			stats.PhasePct[PhaseRelease], stats.PhasePct[PhaseEvaporation])
	}

	row := stats.ToCSV(100)
	if row.WindowEnd != 100 || row.ReleasePct != stats.PhasePct[PhaseRelease] {
		t.Errorf("unexpected CSV row %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}
