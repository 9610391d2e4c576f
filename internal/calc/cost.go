package calc

import "hainetsukaishu-backend/internal/models"

// KJPerKWh converts kilojoules to kilowatt-hours.
const KJPerKWh = 3600.0

// Cost converts an energy total into a per-carrier cost breakdown. The
// result carries exactly the carriers of the price table, never a
// partial breakdown.
func Cost(energyKJ float64, prices models.UnitPriceTable) models.CostBreakdown {
	kwh := energyKJ / KJPerKWh
	breakdown := make(models.CostBreakdown, len(prices))
	for carrier, pricePerKWh := range prices {
		breakdown[carrier] = kwh * pricePerKWh
	}
	return breakdown
}
