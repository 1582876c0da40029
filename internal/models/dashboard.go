package models

// StatValue is a total with its change against the previous period, e.g. "+12%"
type StatValue struct {
	Total  int    `json:"total"`
	Change string `json:"change"`
}

// RateValue is a percentage with its change against the previous period
type RateValue struct {
	Rate   float64 `json:"rate"`
	Change string  `json:"change"`
}

// VisitorPoint is the visitor count of one day, date formatted YYYY-MM-DD
type VisitorPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EnquiryType is one slice of the enquiry breakdown
type EnquiryType struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// DashboardStats is the admin dashboard payload
type DashboardStats struct {
	Visitors       StatValue      `json:"visitors"`
	Enquiries      StatValue      `json:"enquiries"`
	Projects       StatValue      `json:"projects"`
	ConversionRate RateValue      `json:"conversionRate"`
	VisitorData    []VisitorPoint `json:"visitorData"`
	EnquiryTypes   []EnquiryType  `json:"enquiryTypes"`
}
