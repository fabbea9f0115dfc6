package entities

import (
	"math"
	"time"
)

const (
	basePoints     = 10
	hoursBonusStep = 5
	timeBonus      = 15
	minimumAward   = 5

	maxRating = 5
)

func priorityMultiplier(p Priority) (float64, error) {
	switch p {
	case PriorityLow:
		return 1.0, nil
	case PriorityMedium:
		return 1.5, nil
	case PriorityHigh:
		return 2.0, nil
	default:
		// Priority is a required task field; there is no default multiplier.
		return 0, ErrInvalidPriority
	}
}

// ComputePoints calculates the reward points for completing a task at the
// given instant. Every completion earns at least minimumAward points.
func ComputePoints(t *Task, now time.Time) (int, error) {
	multiplier, err := priorityMultiplier(t.Priority)
	if err != nil {
		return 0, err
	}

	var hoursBonus float64
	if t.EstimatedHours != nil {
		if *t.EstimatedHours < 0 {
			return 0, ErrNegativeHours
		}
		if *t.EstimatedHours > 0 {
			hoursBonus = math.Floor(*t.EstimatedHours/2) * hoursBonusStep
		}
	}

	var bonus float64
	if t.DueDate != nil && !now.After(*t.DueDate) {
		bonus = timeBonus
	}

	points := int(math.Floor((basePoints+hoursBonus)*multiplier + bonus))
	if points < minimumAward {
		points = minimumAward
	}

	return points, nil
}

// ComputeRating maps a user's completed-task count to a rating in [1,5].
// Called with the counter value after the completion being scored.
func ComputeRating(tasksCompleted int) float64 {
	rating := tasksCompleted/10 + 1
	if rating > maxRating {
		rating = maxRating
	}
	return float64(rating)
}
