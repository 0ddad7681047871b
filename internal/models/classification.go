package models

import "time"

// Classification type values.
const (
	TypeStandardBLE     = "Standard BLE Service"
	TypeVendorSpecific  = "Vendor-Specific"
	TypeAppleIBeacon    = "Apple iBeacon"
	TypeGoogleEddystone = "Google Eddystone"
	TypeCustomService   = "Custom Service"
	TypeUnknown         = "Unknown"
)

// Confidence levels, ordered strongest first.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// NameUnknown is the sentinel label for records without an identified name.
const NameUnknown = "Unknown"

// Source is one search result consulted during classification.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Classification is the record produced for a UUID. The UUID field always
// holds the normalized lowercase hyphenated form. Cached reflects how the
// record was served for the current request, not how it was stored.
type Classification struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Sources     []Source  `json:"sources"`
	Confidence  string    `json:"confidence"`
	Cached      bool      `json:"cached"`
	SearchedAt  time.Time `json:"searched_at"`
}
