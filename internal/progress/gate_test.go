package progress

import "testing"

func TestGateWithholdsUntilAllReported(t *testing.T) {
	gate := NewGate([]string{"matching", "quiz"}, 70)

	combined, emitted := gate.Report("matching", 100)
	if emitted || combined != nil {
		t.Error("Gate must withhold after a single activity reports")
	}

	combined, emitted = gate.Report("quiz", 80)
	if !emitted || combined == nil {
		t.Fatal("Gate must emit once every activity has reported")
	}
	if combined.Score != 90 {
		t.Errorf("Expected combined score 90, got %d", combined.Score)
	}
	if !combined.Passed {
		t.Error("Both activities passed, combined must pass")
	}
}

func TestGateEmitsOnce(t *testing.T) {
	gate := NewGate([]string{"quiz"}, 70)

	_, emitted := gate.Report("quiz", 75)
	if !emitted {
		t.Fatal("Single-activity gate must emit on first report")
	}
}

func TestGateCombinedFailsWhenOneActivityFails(t *testing.T) {
	gate := NewGate([]string{"matching", "quiz"}, 70)

	gate.Report("matching", 100)
	combined, emitted := gate.Report("quiz", 50)
	if !emitted {
		t.Fatal("Expected emission after both reports")
	}
	// Average 75 clears the threshold but the failed quiz vetoes the pass.
	if combined.Score != 75 {
		t.Errorf("Expected combined 75, got %d", combined.Score)
	}
	if combined.Passed {
		t.Error("A failed activity must veto the combined pass")
	}
}

func TestGateRetryResetsSingleActivity(t *testing.T) {
	gate := NewGate([]string{"matching", "quiz"}, 70)

	gate.Report("matching", 60)
	gate.Report("quiz", 80)

	gate.Retry("matching")

	statuses := gate.Statuses()
	if statuses[0].Reported {
		t.Error("Retried activity must return to pending")
	}
	if !statuses[1].Reported || statuses[1].Score != 80 {
		t.Error("Retry must not touch the other activity")
	}

	// A fresh report on the retried activity completes the set again.
	combined, emitted := gate.Report("matching", 90)
	if !emitted {
		t.Fatal("Expected a fresh emission after retry and re-report")
	}
	if combined.Score != 85 {
		t.Errorf("Expected combined 85, got %d", combined.Score)
	}
	if !combined.Passed {
		t.Error("Expected combined pass after the retry improved the score")
	}
}

func TestGateReReportRearmsEmission(t *testing.T) {
	gate := NewGate([]string{"matching", "quiz"}, 70)

	gate.Report("matching", 40)
	first, _ := gate.Report("quiz", 40)
	if first.Passed {
		t.Error("Failing scores must not pass")
	}

	combined, emitted := gate.Report("matching", 100)
	if !emitted {
		t.Fatal("Improving one activity must re-emit a combined score")
	}
	if combined.Score != 70 {
		t.Errorf("Expected combined 70, got %d", combined.Score)
	}
	if combined.Passed {
		t.Error("Quiz at 40 still vetoes the pass")
	}
}

func TestGateUnknownActivityIsNoOp(t *testing.T) {
	gate := NewGate([]string{"quiz"}, 70)

	combined, emitted := gate.Report("crossword", 100)
	if emitted || combined != nil {
		t.Error("Unknown activity must earn nothing")
	}
	gate.Retry("crossword") // must not panic

	if _, emitted := gate.Report("quiz", 90); !emitted {
		t.Error("Known activity still completes the set")
	}
}

func TestGateNoActivitiesNeverEmits(t *testing.T) {
	gate := NewGate(nil, 70)

	combined, emitted := gate.Report("quiz", 100)
	if emitted || combined != nil {
		t.Error("A gate with no configured activities never emits")
	}
}
