// Package catalog holds the clinic's fixed list of named dental services
// with their default prices. Prices here are creation-time defaults only;
// the cost persisted on an incident is authoritative.
package catalog

type Service struct {
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
	Price float64 `json:"price"`
}

// OtherLabel is the free-text escape hatch; anything not in the catalog is
// treated as "Other" with no default price.
const OtherLabel = "Other"

var services = []Service{
	{Label: "Dental Cleaning", Icon: "sparkles", Price: 60},
	{Label: "Tooth Extraction", Icon: "smile", Price: 150},
	{Label: "Cavity Filling", Icon: "brush", Price: 80},
	{Label: "Root Canal", Icon: "wrench", Price: 200},
	{Label: "Teeth Whitening", Icon: "sparkles", Price: 120},
	{Label: "Braces Consultation", Icon: "smile", Price: 70},
	{Label: "X-ray", Icon: "camera", Price: 40},
	{Label: "Scaling & Polishing", Icon: "droplets", Price: 90},
	{Label: "Pain Relief", Icon: "pill", Price: 30},
	{Label: "Checkup", Icon: "stethoscope", Price: 50},
	{Label: "Crowns & Bridges", Icon: "crown", Price: 250},
	{Label: "Veneers", Icon: "smile", Price: 300},
	{Label: "Implants", Icon: "bone", Price: 500},
	{Label: OtherLabel, Icon: "pencil", Price: 0},
}

// Services returns the catalog in display order. The caller gets a copy.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Lookup returns the catalog entry for a treatment label.
func Lookup(label string) (Service, bool) {
	for _, s := range services {
		if s.Label == label {
			return s, true
		}
	}
	return Service{}, false
}

// DefaultCost is the catalog price for a label, or 0 for unknown ("Other")
// treatments.
func DefaultCost(label string) float64 {
	if s, ok := Lookup(label); ok {
		return s.Price
	}
	return 0
}
