package onboarding

import "fmt"

// Sequencer is the linear six step wizard. Current is the step being
// viewed, Furthest the persisted pointer. Retreat only moves Current.
type Sequencer struct {
	Current   Step
	Furthest  Step
	Completed bool
}

func Resume(profile CreatorProfile) Sequencer {
	step := ClampStep(int(profile.OnboardingStep))
	return Sequencer{
		Current:   step,
		Furthest:  step,
		Completed: profile.OnboardingCompleted,
	}
}

// At positions the view on from, which must already have been reached.
func (s Sequencer) At(from Step) (Sequencer, error) {
	if !from.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidStep, int(from))
	}
	if from > s.Furthest {
		return s, fmt.Errorf("%w: at %d, furthest %d", ErrStepNotReached, int(from), int(s.Furthest))
	}
	s.Current = from
	return s, nil
}

func (s Sequencer) Advance() (Sequencer, error) {
	if s.Completed {
		return s, ErrCompleted
	}
	if s.Current >= LastStep {
		return s, ErrFinalStep
	}
	s.Current++
	if s.Current > s.Furthest {
		s.Furthest = s.Current
	}
	return s, nil
}

func (s Sequencer) Retreat() (Sequencer, error) {
	if s.Completed {
		return s, ErrCompleted
	}
	if s.Current <= FirstStep {
		return s, ErrFirstStep
	}
	s.Current--
	return s, nil
}

func (s Sequencer) Complete() (Sequencer, error) {
	if s.Completed {
		return s, ErrCompleted
	}
	if s.Current != LastStep {
		return s, ErrNotFinalStep
	}
	s.Completed = true
	return s, nil
}
