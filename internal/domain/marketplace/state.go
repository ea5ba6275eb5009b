package marketplace

// State is the lifecycle state shared by marketplaces and items. Deleted is
// terminal and is always written together with deleted_at.
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
	StateDeleted  State = "deleted"
)

func (s State) IsActive() bool { return s == StateActive }

func (s State) IsDeleted() bool { return s == StateDeleted }

func (s State) Valid() bool {
	switch s {
	case StateActive, StateInactive, StateDeleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateActive:
		return next == StateInactive || next == StateDeleted
	case StateInactive:
		return next == StateActive || next == StateDeleted
	default:
		return false
	}
}
