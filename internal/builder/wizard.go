package builder

import (
	"fmt"
	"sync"
)

// Step names one screen of the multi-step builder.
type Step string

const (
	StepIntroduction Step = "introduction"
	StepOverview     Step = "overview"
	StepSkills       Step = "skills"
	StepExperience   Step = "experience"
	StepProjects     Step = "projects"
)

// stepOrder is the logical ordering; the wizard is cyclic, not terminal, so
// any step can be revisited.
var stepOrder = []Step{StepIntroduction, StepOverview, StepSkills, StepExperience, StepProjects}

func ValidStep(s Step) bool {
	for _, step := range stepOrder {
		if step == s {
			return true
		}
	}
	return false
}

// StepValidator checks the step's slice of the shared profile. A nil
// validator means the step never gates.
type StepValidator func() FieldErrors

// Wizard coordinates which editor is visible. Next gates on the current
// step's validation; Back never does. Jump gates only when StrictJumps is
// set, otherwise the step indicator stays a free shortcut like the original
// behavior.
type Wizard struct {
	mu          sync.Mutex
	current     Step
	validators  map[Step]StepValidator
	strictJumps bool
	errors      FieldErrors
}

type WizardConfig struct {
	StrictJumps bool
}

func NewWizard(cfg WizardConfig, validators map[Step]StepValidator) *Wizard {
	return &Wizard{
		current:     StepIntroduction,
		validators:  validators,
		strictJumps: cfg.StrictJumps,
		errors:      FieldErrors{},
	}
}

func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Errors returns the field errors produced by the last refused transition.
func (w *Wizard) Errors() FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := FieldErrors{}
	for k, v := range w.errors {
		errs[k] = v
	}
	return errs
}

func (w *Wizard) validateLocked() FieldErrors {
	if v := w.validators[w.current]; v != nil {
		return v()
	}
	return FieldErrors{}
}

// Next advances to the logically next step after the current step's
// validation passes. A refused transition leaves the state unchanged and
// records the errors. From the last step Next is a no-op: the wizard
// concludes, it does not wrap around.
func (w *Wizard) Next() (Step, FieldErrors) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if errs := w.validateLocked(); !errs.Ok() {
		w.errors = errs
		return w.current, errs
	}
	w.errors = FieldErrors{}

	for i, s := range stepOrder {
		if s == w.current && i < len(stepOrder)-1 {
			w.current = stepOrder[i+1]
			break
		}
	}
	return w.current, nil
}

// Back moves to the logically previous step without validating; the first
// step has no back transition.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, s := range stepOrder {
		if s == w.current && i > 0 {
			w.current = stepOrder[i-1]
			break
		}
	}
	w.errors = FieldErrors{}
	return w.current
}

// Jump moves directly to any step. With StrictJumps the current step must
// validate first, closing the indicator shortcut's validation bypass.
func (w *Wizard) Jump(to Step) (Step, FieldErrors, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !ValidStep(to) {
		return w.current, nil, fmt.Errorf("unknown step %q", to)
	}
	if w.strictJumps {
		if errs := w.validateLocked(); !errs.Ok() {
			w.errors = errs
			return w.current, errs, nil
		}
	}
	w.errors = FieldErrors{}
	w.current = to
	return w.current, nil, nil
}
