package models

import "errors"

// ErrInvalidTransition is returned when an action is applied to a booking
// whose current status does not permit it. The backend enforces the same
// rule; this check keeps the portal from even sending the call.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// Action is a lifecycle operation on a booking.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
	ActionDeliver Action = "deliver"
	ActionCancel  Action = "cancel"
)

// transitions is the full status machine: pending may be confirmed,
// rejected by staff or cancelled by the customer; confirmed may be
// delivered. Everything else is terminal.
var transitions = map[string]map[Action]string{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionReject:  StatusRejected,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionDeliver: StatusDelivered,
	},
}

// staffActions fixes the order actions are rendered in on the dashboard.
var staffActions = []Action{ActionConfirm, ActionReject, ActionDeliver}

// AllowedActions returns the staff actions valid from the given status,
// in display order. Terminal statuses yield nil.
func AllowedActions(status string) []Action {
	valid := transitions[NormalizeStatus(status)]
	if len(valid) == 0 {
		return nil
	}
	var out []Action
	for _, a := range staffActions {
		if _, ok := valid[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// CanApply reports whether action is valid from the given status.
func CanApply(status string, action Action) bool {
	_, ok := transitions[NormalizeStatus(status)][action]
	return ok
}

// NextStatus resolves the status an action leads to, or
// ErrInvalidTransition when the machine has no such edge.
func NextStatus(status string, action Action) (string, error) {
	next, ok := transitions[NormalizeStatus(status)][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status string) bool {
	return len(transitions[NormalizeStatus(status)]) == 0
}

// ParseAction validates a raw action name.
func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionConfirm, ActionReject, ActionDeliver, ActionCancel:
		return Action(raw), true
	default:
		return "", false
	}
}
