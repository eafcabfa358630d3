package model

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{"complete": COMPLETE, " Incomplete ": INCOMPLETE} {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}
	if _, err := ParseStatus("pending"); err == nil {
		t.Errorf("Expected error for unknown status")
	}
}

func TestStatusToggle(t *testing.T) {
	if COMPLETE.Toggle() != INCOMPLETE || INCOMPLETE.Toggle() != COMPLETE {
		t.Errorf("Toggle should flip complete and incomplete")
	}
}

func TestFilter(t *testing.T) {
	done := Task{Name: "a", Status: COMPLETE, CreatedAt: time.Now()}
	todo := Task{Name: "b", Status: INCOMPLETE, CreatedAt: time.Now()}

	if !FilterAll.Matches(done) || !FilterAll.Matches(todo) {
		t.Errorf("all should match every task")
	}
	if !FilterComplete.Matches(done) || FilterComplete.Matches(todo) {
		t.Errorf("complete filter mismatch")
	}
	if FilterIncomplete.Matches(done) || !FilterIncomplete.Matches(todo) {
		t.Errorf("incomplete filter mismatch")
	}

	f, err := ParseFilter("")
	if err != nil || f != FilterAll {
		t.Errorf("Expected empty filter to parse as all, got %q (%v)", f, err)
	}
	if _, err := ParseFilter("overdue"); err == nil {
		t.Errorf("Expected error for unknown filter")
	}

	if FilterAll.Next() != FilterIncomplete || FilterComplete.Next() != FilterAll {
		t.Errorf("Next should cycle all, incomplete, complete")
	}
}
