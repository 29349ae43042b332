package domain

// SessionState is the snapshot of a wizard session.
type SessionState struct {
	Data        AnswerData `json:"data"`
	CurrentStep int        `json:"currentStep"`
	IsComplete  bool       `json:"isComplete"`

	// PropositionEdited is set once the user writes ValueProposition directly.
	// While set, dependency changes no longer recompute the proposition.
	PropositionEdited bool `json:"propositionEdited"`
}

// NewState creates the initial session: empty answers on the first step.
func NewState() SessionState {
	return SessionState{
		Data:        NewAnswerData(),
		CurrentStep: FirstStep,
	}
}

// Clone returns a deep copy of the state.
func (s SessionState) Clone() SessionState {
	s.Data = s.Data.Clone()
	return s
}

// ClampStep bounds n to [FirstStep, LastStep].
func ClampStep(n int) int {
	if n < FirstStep {
		return FirstStep
	}
	if n > LastStep {
		return LastStep
	}
	return n
}
