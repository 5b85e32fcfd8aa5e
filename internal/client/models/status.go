package models

import "fmt"

// Phase is the lifecycle phase of a profile-update attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SubmissionStatus is what the view layer renders: a phase plus the
// user-facing message of a terminal phase.
type SubmissionStatus struct {
	Phase   Phase
	Message string
}

func Idle() SubmissionStatus {
	return SubmissionStatus{Phase: PhaseIdle}
}

func Submitting() SubmissionStatus {
	return SubmissionStatus{Phase: PhaseSubmitting}
}

func Succeeded(msg string) SubmissionStatus {
	return SubmissionStatus{Phase: PhaseSucceeded, Message: msg}
}

func Failed(msg string) SubmissionStatus {
	return SubmissionStatus{Phase: PhaseFailed, Message: msg}
}

// InProgress reports whether a network call is outstanding.
func (s SubmissionStatus) InProgress() bool {
	return s.Phase == PhaseSubmitting
}

// Terminal reports whether the status is Succeeded or Failed.
func (s SubmissionStatus) Terminal() bool {
	return s.Phase == PhaseSucceeded || s.Phase == PhaseFailed
}

func (s SubmissionStatus) String() string {
	if s.Message == "" {
		return s.Phase.String()
	}
	return fmt.Sprintf("%s: %s", s.Phase, s.Message)
}
