package ble

import (
	"testing"

	"uuidy/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		uuid           string
		wantType       string
		wantName       string
		wantConfidence string
	}{
		{
			"known SIG service heart rate",
			"0000180d-0000-1000-8000-00805f9b34fb",
			models.TypeStandardBLE, "Heart Rate", models.ConfidenceHigh,
		},
		{
			"known SIG service battery",
			"0000180f-0000-1000-8000-00805f9b34fb",
			models.TypeStandardBLE, "Battery Service", models.ConfidenceHigh,
		},
		{
			"SIG base with unassigned code",
			"0000abcd-0000-1000-8000-00805f9b34fb",
			models.TypeStandardBLE, models.NameUnknown, models.ConfidenceMedium,
		},
		{
			"eddystone advertising service",
			"0000feaa-0000-1000-8000-00805f9b34fb",
			models.TypeGoogleEddystone, "Eddystone", models.ConfidenceHigh,
		},
		{
			"eddystone url config service",
			"ee0c2080-8786-40ba-ab96-99b91ac981d8",
			models.TypeGoogleEddystone, "Eddystone-URL Configuration", models.ConfidenceHigh,
		},
		{
			"estimote ibeacon default",
			"b9407f30-f5f8-466e-aff9-25556b57fe6d",
			models.TypeAppleIBeacon, "Estimote Beacon", models.ConfidenceHigh,
		},
		{
			"generic custom uuid falls back to vendor-specific",
			"12345678-1234-5678-1234-567812345678",
			models.TypeVendorSpecific, "", models.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify(tt.uuid)
			if m == nil {
				t.Fatalf("Classify(%q) = nil, want match", tt.uuid)
			}
			if m.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", m.Type, tt.wantType)
			}
			if m.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", m.Name, tt.wantName)
			}
			if m.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %q, want %q", m.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestShortCode(t *testing.T) {
	tests := []struct {
		name string
		uuid string
		want string
		ok   bool
	}{
		{"heart rate", "0000180d-0000-1000-8000-00805f9b34fb", "180d", true},
		{"unassigned code", "0000ffff-0000-1000-8000-00805f9b34fb", "ffff", true},
		{"wrong suffix", "0000180d-0000-1000-8000-00805f9b34fc", "", false},
		{"wrong prefix", "0001180d-0000-1000-8000-00805f9b34fb", "", false},
		{"custom uuid", "b9407f30-f5f8-466e-aff9-25556b57fe6d", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ShortCode(tt.uuid)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ShortCode(%q) = (%q, %v), want (%q, %v)", tt.uuid, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsSIGBase(t *testing.T) {
	if !IsSIGBase("0000180d-0000-1000-8000-00805f9b34fb") {
		t.Error("IsSIGBase() = false for a SIG base UUID")
	}
	if IsSIGBase("b9407f30-f5f8-466e-aff9-25556b57fe6d") {
		t.Error("IsSIGBase() = true for a custom UUID")
	}
}
