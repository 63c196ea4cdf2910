package model

// Step names the stage of a user's in-progress conversation flow.
type Step string

const (
	// StepNone is the implicit initial state; a user with no stored
	// state behaves exactly as one at StepNone.
	StepNone                Step = ""
	StepExpectingNavigation Step = "EXPECTING_NAVIGATION"
	StepExpectingReport1    Step = "EXPECTING_REPORT_STEP1"
	StepExpectingReport2    Step = "EXPECTING_REPORT_STEP2"
	StepExpectingOther      Step = "EXPECTING_OTHER"
)

// ConversationState is the per-user dialogue state. Report holds the
// issue description captured during the report flow and is only set
// while Step is StepExpectingReport2.
type ConversationState struct {
	Step   Step
	Report string
}
