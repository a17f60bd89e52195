package mceln

import "errors"

// The two failure kinds the lifecycle operations produce. ErrIllegalAction
// means the user lacks the read or write capability the operation needs.
// ErrImproperAction means the operation isn't valid in the record's or
// team's current state. Callers wrap these with context via fmt.Errorf
// and %w.
var (
	ErrIllegalAction  = errors.New("illegal action")
	ErrImproperAction = errors.New("improper action")
)
