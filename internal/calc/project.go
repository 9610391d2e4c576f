package calc

import (
	"fmt"

	"hainetsukaishu-backend/internal/models"
)

// DefaultHorizons are the annual-operating-day scenarios reported to
// the dashboard.
var DefaultHorizons = []int{240, 300, 365}

// Project scales one measured day's cost across annual-operation
// horizons, keyed "240 days" and so on. Plain linear scaling, no
// compounding or seasonal adjustment: the reporting contract assumes a
// constant daily recovery rate.
func Project(daily models.CostBreakdown, horizons []int) map[string]models.CostBreakdown {
	projected := make(map[string]models.CostBreakdown, len(horizons))
	for _, days := range horizons {
		scaled := make(models.CostBreakdown, len(daily))
		for carrier, amount := range daily {
			scaled[carrier] = amount * float64(days)
		}
		projected[fmt.Sprintf("%d days", days)] = scaled
	}
	return projected
}
