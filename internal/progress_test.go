package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestRunSteps_AllSucceed(t *testing.T) {
	var order []string
	err := RunSteps([]ProgressStep{
		{Message: "first", Fn: func() error { order = append(order, "first"); return nil }},
		{Message: "second", Fn: func() error { order = append(order, "second"); return nil }},
	})
	if err != nil {
		t.Fatalf("RunSteps() error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("steps ran as %v, want [first second]", order)
	}
}

func TestRunSteps_AbortsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	var ranLast bool
	err := RunSteps([]ProgressStep{
		{Message: "load events", Fn: func() error { return boom }},
		{Message: "never reached", Fn: func() error { ranLast = true; return nil }},
	})
	if err == nil {
		t.Fatal("RunSteps() error = nil, want failure")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap the step failure", err)
	}
	if !strings.Contains(err.Error(), "load events") {
		t.Errorf("error %q does not name the failing step", err)
	}
	if ranLast {
		t.Error("step after the failure still ran")
	}
}

func TestRunSteps_Empty(t *testing.T) {
	if err := RunSteps(nil); err != nil {
		t.Errorf("RunSteps(nil) error: %v", err)
	}
}
