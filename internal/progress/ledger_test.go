package progress

import "testing"

func TestLedgerRecordIsIdempotent(t *testing.T) {
	ledger := NewLedger(nil)

	if !ledger.Record("audio-greetings-01") {
		t.Error("First record of a key must return true")
	}
	if ledger.Record("audio-greetings-01") {
		t.Error("Second record of the same key must return false")
	}
	if ledger.UniqueCount() != 1 {
		t.Errorf("Expected unique count 1 after duplicate record, got %d", ledger.UniqueCount())
	}
}

func TestLedgerHas(t *testing.T) {
	ledger := NewLedger(nil)

	if ledger.Has("audio-numbers-03") {
		t.Error("Unrecorded key must not be present")
	}
	ledger.Record("audio-numbers-03")
	if !ledger.Has("audio-numbers-03") {
		t.Error("Recorded key must be present")
	}
}

func TestLedgerSeededPriorKeys(t *testing.T) {
	ledger := NewLedger([]string{"audio-a", "audio-b"})

	if !ledger.Has("audio-a") {
		t.Error("Seeded key must count as already credited")
	}
	if ledger.Record("audio-a") {
		t.Error("Recording a seeded key must not credit again")
	}
	if ledger.UniqueCount() != 0 {
		t.Errorf("Seeded keys must not count toward the session, got %d", ledger.UniqueCount())
	}
	if ledger.PriorCount() != 2 {
		t.Errorf("Expected 2 prior keys, got %d", ledger.PriorCount())
	}

	ledger.Record("audio-c")
	if ledger.UniqueCount() != 1 {
		t.Errorf("Expected 1 session key, got %d", ledger.UniqueCount())
	}
	if len(ledger.AllKeys()) != 3 {
		t.Errorf("Expected 3 keys combined, got %d", len(ledger.AllKeys()))
	}
}
