package models

// UnitPriceTable maps an energy carrier to its price per kWh. No two
// entries share a carrier name (map keys guarantee it).
type UnitPriceTable map[string]float64

// CostBreakdown maps an energy carrier to a money amount, in the same
// currency unit as the price table. Its key set always equals the key
// set of the table it was derived from.
type CostBreakdown map[string]float64

// Clone returns an independent copy so per-request overrides never leak
// into the process-wide defaults.
func (t UnitPriceTable) Clone() UnitPriceTable {
	out := make(UnitPriceTable, len(t))
	for carrier, price := range t {
		out[carrier] = price
	}
	return out
}
