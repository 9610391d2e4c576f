package models

// PriceResponse is the instantaneous primary-carrier cost derived from
// a device's most recent sample.
type PriceResponse struct {
	Device string `json:"device"`
	Time   string `json:"time"`
	Price  string `json:"price"`
}

// WindowPriceResponse is the summed primary-carrier cost over a rolling
// window.
type WindowPriceResponse struct {
	Device     string `json:"device"`
	TotalPrice string `json:"totalPrice"`
}

// RealtimeResponse is the full payload the dashboard polls: the latest
// sample plus derived energy, the active unit prices and the cost
// breakdown per carrier.
type RealtimeResponse struct {
	Device      string             `json:"device"`
	Time        string             `json:"time"`
	Temperature map[string]float64 `json:"temperature"`
	Flow        float64            `json:"flow"`
	Energy      string             `json:"energy"`
	UnitCosts   UnitPriceTable     `json:"unitCosts"`
	Cost        map[string]string  `json:"cost"`
}

// DailyReportResponse carries the previous calendar day's totals and the
// yearly projections, keyed "240 days", "300 days", "365 days".
type DailyReportResponse struct {
	Device        string                       `json:"device"`
	TotalEnergy   string                       `json:"totalEnergy"`
	TotalCost     map[string]string            `json:"totalCost"`
	YearlySavings map[string]map[string]string `json:"yearlySavings"`
}

// DeviceListResponse exposes the allow-list so the dashboard can build
// its device selector.
type DeviceListResponse struct {
	Devices []string `json:"devices"`
}
