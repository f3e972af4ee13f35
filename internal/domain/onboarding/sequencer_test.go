package onboarding

import (
	"errors"
	"testing"
)

func TestResume_ClampsStoredPointer(t *testing.T) {
	cases := []struct {
		stored Step
		want   Step
	}{
		{stored: 0, want: StepProfile},
		{stored: -3, want: StepProfile},
		{stored: StepPricing, want: StepPricing},
		{stored: 9, want: StepBanking},
	}
	for _, tc := range cases {
		got := Resume(CreatorProfile{OnboardingStep: tc.stored})
		if got.Current != tc.want || got.Furthest != tc.want {
			t.Fatalf("stored=%d: got current=%d furthest=%d, want %d", tc.stored, got.Current, got.Furthest, tc.want)
		}
	}
}

func TestSequencer_AdvanceIsMonotonic(t *testing.T) {
	seq := Resume(CreatorProfile{OnboardingStep: StepProfile})
	prev := seq.Furthest
	for i := 0; i < 5; i++ {
		next, err := seq.Advance()
		if err != nil {
			t.Fatalf("advance from %d: %v", seq.Current, err)
		}
		if next.Current != seq.Current+1 {
			t.Fatalf("expected current %d, got %d", seq.Current+1, next.Current)
		}
		if next.Furthest < prev {
			t.Fatalf("furthest decreased from %d to %d", prev, next.Furthest)
		}
		prev = next.Furthest
		seq = next
	}

	if seq.Current != StepBanking {
		t.Fatalf("expected to reach banking, got %s", seq.Current)
	}
	if _, err := seq.Advance(); !errors.Is(err, ErrFinalStep) {
		t.Fatalf("expected ErrFinalStep, got %v", err)
	}
}

func TestSequencer_RetreatKeepsFurthest(t *testing.T) {
	seq := Resume(CreatorProfile{OnboardingStep: StepPricing})

	back, err := seq.Retreat()
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if back.Current != StepPortfolio {
		t.Fatalf("expected portfolio, got %s", back.Current)
	}
	if back.Furthest != StepPricing {
		t.Fatalf("retreat must not lower furthest, got %s", back.Furthest)
	}

	first := Sequencer{Current: StepProfile, Furthest: StepProfile}
	if _, err := first.Retreat(); !errors.Is(err, ErrFirstStep) {
		t.Fatalf("expected ErrFirstStep, got %v", err)
	}
}

func TestSequencer_At(t *testing.T) {
	seq := Resume(CreatorProfile{OnboardingStep: StepPortfolio})

	if _, err := seq.At(StepPricing); !errors.Is(err, ErrStepNotReached) {
		t.Fatalf("expected ErrStepNotReached, got %v", err)
	}
	if _, err := seq.At(7); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	at, err := seq.At(StepProfile)
	if err != nil {
		t.Fatalf("at profile: %v", err)
	}
	if at.Current != StepProfile || at.Furthest != StepPortfolio {
		t.Fatalf("unexpected sequencer %+v", at)
	}
}

func TestSequencer_Complete(t *testing.T) {
	seq := Sequencer{Current: StepAvailability, Furthest: StepBanking}
	if _, err := seq.Complete(); !errors.Is(err, ErrNotFinalStep) {
		t.Fatalf("expected ErrNotFinalStep, got %v", err)
	}

	seq.Current = StepBanking
	done, err := seq.Complete()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed {
		t.Fatalf("expected completed")
	}
	if _, err := done.Complete(); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted on second complete, got %v", err)
	}
	if _, err := done.Advance(); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted on advance after completion, got %v", err)
	}
}

func TestStepString(t *testing.T) {
	if StepBanking.String() != "banking" {
		t.Fatalf("unexpected name %s", StepBanking.String())
	}
	if Step(0).String() != "step(0)" {
		t.Fatalf("unexpected name %s", Step(0).String())
	}
}
