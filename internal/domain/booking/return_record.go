package booking

import "time"

// ReturnCondition classifies the state of a device when it comes back.
type ReturnCondition string

const (
	ConditionGood       ReturnCondition = "good"
	ConditionDamaged    ReturnCondition = "damaged"
	ConditionIncomplete ReturnCondition = "incomplete"
	ConditionLost       ReturnCondition = "lost"
)

// IsValid returns true if the return condition is recognized.
func (c ReturnCondition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionIncomplete, ConditionLost:
		return true
	}
	return false
}

// ReturnRecord is an immutable value object capturing how and when a
// booked device was handed back. It is set exactly once per booking.
type ReturnRecord struct {
	Condition  ReturnCondition `json:"condition"`
	Comments   string          `json:"comments,omitempty"`
	ReturnedAt time.Time       `json:"returned_at"`
}
