package spacedrep

// TransitionKind identifies an observable stage change.
type TransitionKind string

const (
	TransitionDowngrade TransitionKind = "downgrade"
	TransitionMastery   TransitionKind = "mastery"
)

// Transition describes a stage change the presentation layer must surface
// before moving to the next question.
type Transition struct {
	Kind TransitionKind
	Key  string
	From int
	To   int
}

// IsDowngrade reports whether the transition lowered the word's stage.
func (t *Transition) IsDowngrade() bool {
	return t != nil && t.Kind == TransitionDowngrade
}

// IsMastery reports whether the transition marks first mastery.
func (t *Transition) IsMastery() bool {
	return t != nil && t.Kind == TransitionMastery
}
