package models

import "time"

// Customer segment labels, ordered from lowest to highest monetary tier.
const (
	SegmentBronze = "Bronze"
	SegmentSilver = "Prata"
	SegmentGold   = "Ouro"
)

// DefaultSegmentLabels returns the three-tier label set in ascending order.
func DefaultSegmentLabels() []string {
	return []string{SegmentBronze, SegmentSilver, SegmentGold}
}

// CustomerRecord is one row of the RFM table. Segment is derived from
// MonetaryValue by equal-frequency bucketing and is recomputed whenever the
// table is produced, never stored independently.
type CustomerRecord struct {
	CustomerID    int       `json:"customer_id"`
	LastPurchase  time.Time `json:"last_purchase"`
	Frequency     int       `json:"frequency"`
	MonetaryValue float64   `json:"monetary_value"`
	Segment       string    `json:"segment,omitempty"`
}

// InactiveCustomer is a customer whose last purchase lies 180 to 365 days in
// the past.
type InactiveCustomer struct {
	CustomerID    int       `json:"customer_id"`
	LastPurchase  time.Time `json:"last_purchase"`
	MonetaryValue float64   `json:"monetary_value"`
}
