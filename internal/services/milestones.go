package services

import (
	"strconv"

	"github.com/rewoven/marketplace-backend/internal/models"
)

// MilestoneEvaluator awards one-time bonuses when a user's upload counter
// reaches a configured threshold. Evaluation matches the exact
// post-increment count only: a counter that jumps past a threshold never
// earns the skipped bonus.
type MilestoneEvaluator struct {
	thresholds map[int]int // uploads count -> bonus points
}

// NewMilestoneEvaluator builds an evaluator from the configured milestone
// table. Keys arrive as strings from the config layer; entries that are not
// positive integers are ignored.
func NewMilestoneEvaluator(table map[string]int) *MilestoneEvaluator {
	thresholds := make(map[int]int, len(table))
	for key, bonus := range table {
		count, err := strconv.Atoi(key)
		if err != nil || count <= 0 || bonus <= 0 {
			continue
		}
		thresholds[count] = bonus
	}
	return &MilestoneEvaluator{thresholds: thresholds}
}

// Evaluate returns the bonus owed for the balance's current uploads count,
// if any.
func (e *MilestoneEvaluator) Evaluate(balance *models.PointBalance) (int, bool) {
	bonus, ok := e.thresholds[balance.UploadsCount]
	return bonus, ok
}
