// Package srs implements the card review scheduler: the state machine that
// advances a card's maturity bucket and next-due date in response to a graded
// answer.
package srs

import (
	"errors"
	"time"
)

// Grade is the ordinal answer quality supplied when reviewing a card.
type Grade int

// The four accepted grades. Their ordinal values feed directly into the
// scheduling arithmetic, so the encoding is part of the contract.
const (
	GradeAgain Grade = 1
	GradeHard  Grade = 2
	GradeGood  Grade = 3
	GradeEasy  Grade = 4
)

// ErrInvalidGrade is returned when a grade is outside the Again..Easy range.
// No mapping is guessed for out-of-range values.
var ErrInvalidGrade = errors.New("invalid answer grade")

// Valid reports whether the grade is one of the four accepted ordinals.
func (g Grade) Valid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// String returns the grade's display name.
func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "again"
	case GradeHard:
		return "hard"
	case GradeGood:
		return "good"
	case GradeEasy:
		return "easy"
	default:
		return "unknown"
	}
}

// Review is the scheduler's output: the card's new maturity bucket and the
// date it next becomes eligible for review.
type Review struct {
	Status     int
	RemindTime time.Time
}

// Schedule computes a card's next state from its current status and remind
// time, the answer grade, and the current date.
//
// Again resets the status to zero. If the card was scheduled into the future,
// the baseline date is clamped to today before the (now zero-length) interval
// is added; an overdue card keeps its past remind time and stays due.
//
// Any other grade adds its ordinal value onto the status and schedules the
// card newStatus days past its current remind time. The increment per answer
// is constant, so growth is accelerating rather than geometric.
func Schedule(status int, remindTime time.Time, grade Grade, today time.Time) (Review, error) {
	if !grade.Valid() {
		return Review{}, ErrInvalidGrade
	}

	newStatus := status + int(grade)
	baseline := remindTime

	if grade == GradeAgain {
		newStatus = 0
		if remindTime.After(today) {
			baseline = today
		}
	}

	return Review{
		Status:     newStatus,
		RemindTime: baseline.AddDate(0, 0, newStatus),
	}, nil
}
