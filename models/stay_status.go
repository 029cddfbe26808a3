package models

// StayStatus represents the current state of a stay in its lifecycle.
type StayStatus string

const (
	StayStatusBooked     StayStatus = "booked"
	StayStatusCheckedIn  StayStatus = "checked_in"
	StayStatusCheckedOut StayStatus = "checked_out"
	StayStatusCancelled  StayStatus = "cancelled"
	StayStatusNoShow     StayStatus = "no_show"
)

// validStayTransitions defines the state machine for stay lifecycle
// transitions. checked_out, cancelled and no_show are terminal.
var validStayTransitions = map[StayStatus][]StayStatus{
	StayStatusBooked:     {StayStatusCheckedIn, StayStatusCancelled, StayStatusNoShow},
	StayStatusCheckedIn:  {StayStatusCheckedOut, StayStatusNoShow},
	StayStatusCheckedOut: {},
	StayStatusCancelled:  {},
	StayStatusNoShow:     {},
}

// IsValid returns true if the status is a recognized stay status.
func (s StayStatus) IsValid() bool {
	_, exists := validStayTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s StayStatus) CanTransitionTo(target StayStatus) bool {
	allowed, exists := validStayTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s StayStatus) IsTerminal() bool {
	allowed, exists := validStayTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// IsActive reports whether the stay still occupies its room/bed for
// availability purposes.
func (s StayStatus) IsActive() bool {
	return s == StayStatusBooked || s == StayStatusCheckedIn
}

func (s StayStatus) String() string { return string(s) }

// ActiveStayStatuses are the statuses that block overlapping bookings.
var ActiveStayStatuses = []StayStatus{StayStatusBooked, StayStatusCheckedIn}
