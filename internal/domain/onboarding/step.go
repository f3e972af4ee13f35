package onboarding

import (
	"errors"
	"fmt"
)

type Step int

const (
	StepProfile Step = iota + 1
	StepSpecialization
	StepPortfolio
	StepPricing
	StepAvailability
	StepBanking
)

const (
	FirstStep = StepProfile
	LastStep  = StepBanking
)

var (
	ErrInvalidStep    = errors.New("invalid onboarding step")
	ErrStepNotReached = errors.New("onboarding step not reached yet")
	ErrFirstStep      = errors.New("already at the first onboarding step")
	ErrFinalStep      = errors.New("already at the final onboarding step")
	ErrNotFinalStep   = errors.New("onboarding can only be completed from the final step")
	ErrCompleted      = errors.New("onboarding already completed")
)

var stepNames = map[Step]string{
	StepProfile:        "profile",
	StepSpecialization: "specialization",
	StepPortfolio:      "portfolio",
	StepPricing:        "pricing",
	StepAvailability:   "availability",
	StepBanking:        "banking",
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ClampStep maps a stored pointer onto the valid range. Missing or zero
// pointers resume at the first step.
func ClampStep(v int) Step {
	if v < int(FirstStep) {
		return FirstStep
	}
	if v > int(LastStep) {
		return LastStep
	}
	return Step(v)
}

func ParseStep(v int) (Step, error) {
	s := Step(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStep, v)
	}
	return s, nil
}
