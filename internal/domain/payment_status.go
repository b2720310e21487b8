package domain

// PaymentStatus is the payment lifecycle of a single investment:
//
//	pending -> completed -> refunded
//	pending -> failed
//
// failed and refunded are terminal. Every transition is applied through a
// conditional update keyed on the prior status, so a replayed outcome can
// never move the campaign aggregate twice.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal step of
// the payment state machine.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentCompleted || next == PaymentFailed
	case PaymentCompleted:
		return next == PaymentRefunded
	default:
		return false
	}
}

// Terminal reports whether no further transition is legal from s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentFailed || s == PaymentRefunded
}
