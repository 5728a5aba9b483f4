package client

type MutationState int

const (
	Pending MutationState = iota
	Committed
	Reverted
	Resynced
)

func (s MutationState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case Reverted:
		return "reverted"
	case Resynced:
		return "resynced"
	default:
		return "unknown"
	}
}

type MutationKind string

const (
	MutationAdd     MutationKind = "add"
	MutationRemove  MutationKind = "remove"
	MutationReorder MutationKind = "reorder"
	MutationUpdate  MutationKind = "update"
)

// Mutation tracks one optimistic change. Err is the server failure that
// caused a revert or resync.
type Mutation struct {
	Kind     MutationKind
	TargetID string
	State    MutationState
	Err      error
}

func (m *Mutation) settle(err error, onFailure MutationState) *Mutation {
	if err != nil {
		m.State = onFailure
		m.Err = err
		return m
	}
	m.State = Committed
	return m
}
