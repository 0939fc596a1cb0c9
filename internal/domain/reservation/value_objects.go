package reservation

import (
	"errors"
	"time"
)

var ErrInvalidTimeSlot = errors.New("start time must be before end time")

// TimeSlot is the half-open booking interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// ExtendedBy returns the slot stretched by whole hours past its end.
func (ts TimeSlot) ExtendedBy(hours int) (TimeSlot, error) {
	if hours <= 0 {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{
		start: ts.start,
		end:   ts.end.Add(time.Duration(hours) * time.Hour),
	}, nil
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}
