package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics, registered on the default registry and exposed by the
// server's /metrics endpoint alongside the HTTP metrics.
var (
	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksphere_points_awarded_total",
		Help: "Total reward points awarded for completed tasks",
	})

	TasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksphere_tasks_completed_total",
		Help: "Total tasks transitioned into done",
	})

	RewardsClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksphere_rewards_claimed_total",
		Help: "Total reward claims recorded",
	})

	PointsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksphere_points_spent_total",
		Help: "Total reward points spent on claims",
	})
)
