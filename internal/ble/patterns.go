// Package ble classifies UUIDs by structure using known Bluetooth Low Energy
// patterns: the Bluetooth SIG base UUID, Eddystone service codes, and
// well-known iBeacon proximity UUIDs. All functions are pure; inputs are
// expected in the normalized lowercase hyphenated form.
package ble

import (
	"fmt"
	"regexp"

	"uuidy/internal/models"
)

// sigBasePattern extracts the 16-bit short code embedded in a Bluetooth SIG
// base UUID (0000xxxx-0000-1000-8000-00805f9b34fb).
var sigBasePattern = regexp.MustCompile(`^0000([0-9a-f]{4})-0000-1000-8000-00805f9b34fb$`)

// Match is the result of a structural pattern rule. A match with a known name
// carries high confidence; a pattern-only match carries medium; the generic
// vendor-specific fallback carries low and is a signal for the classifier,
// not a final answer.
type Match struct {
	Type        string
	Name        string
	Description string
	Confidence  string
}

// Service describes a known BLE service.
type Service struct {
	Name        string
	Description string
}

// sigServices maps Bluetooth SIG assigned 16-bit short codes to service names.
// Reference: https://www.bluetooth.com/specifications/assigned-numbers/
var sigServices = map[string]Service{
	"1800": {"Generic Access", "Generic Access Profile service for device name and appearance"},
	"1801": {"Generic Attribute", "Generic Attribute Profile service for service discovery"},
	"1802": {"Immediate Alert", "Immediate Alert service for alerting devices"},
	"1803": {"Link Loss", "Link Loss service for proximity detection"},
	"1804": {"Tx Power", "Tx Power service for transmission power reporting"},
	"1805": {"Current Time", "Current Time service for time synchronization"},
	"1806": {"Reference Time Update", "Reference Time Update service for time calibration"},
	"1807": {"Next DST Change", "Next DST Change service for daylight saving time updates"},
	"1808": {"Glucose", "Glucose service for blood glucose monitoring"},
	"1809": {"Health Thermometer", "Health Thermometer service for body temperature measurement"},
	"180a": {"Device Information", "Device Information service for manufacturer and model data"},
	"180d": {"Heart Rate", "Heart Rate service for heart rate monitoring"},
	"180e": {"Phone Alert Status", "Phone Alert Status service for phone alerts"},
	"180f": {"Battery Service", "Battery Service for battery level reporting"},
	"1810": {"Blood Pressure", "Blood Pressure service for blood pressure monitoring"},
	"1811": {"Alert Notification", "Alert Notification service for push notifications"},
	"1812": {"Human Interface Device", "Human Interface Device service for HID over GATT"},
	"1813": {"Scan Parameters", "Scan Parameters service for scan configuration"},
	"1814": {"Running Speed and Cadence", "Running Speed and Cadence service for fitness tracking"},
	"1816": {"Cycling Speed and Cadence", "Cycling Speed and Cadence service for cycling fitness"},
	"1818": {"Cycling Power", "Cycling Power service for power meters"},
	"1819": {"Location and Navigation", "Location and Navigation service for GPS data"},
	"181a": {"Environmental Sensing", "Environmental Sensing service for environmental data"},
	"181c": {"User Data", "User Data service for user profile information"},
	"181d": {"Weight Scale", "Weight Scale service for body weight measurement"},
	"181e": {"Bond Management", "Bond Management service for pairing management"},
	"181f": {"Continuous Glucose Monitoring", "Continuous Glucose Monitoring service for CGM devices"},
	"1820": {"Internet Protocol Support", "Internet Protocol Support service for IP connectivity"},
	"1821": {"Indoor Positioning", "Indoor Positioning service for indoor location"},
	"1822": {"Pulse Oximeter", "Pulse Oximeter service for SpO2 measurement"},
	"1823": {"HTTP Proxy", "HTTP Proxy service for web access via BLE"},
	"1824": {"Transport Discovery", "Transport Discovery service for transport discovery"},
	"1825": {"Object Transfer", "Object Transfer service for file transfer"},
	"1826": {"Fitness Machine", "Fitness Machine service for fitness equipment"},
	"1827": {"Mesh Provisioning", "Mesh Provisioning service for Bluetooth Mesh"},
	"1828": {"Mesh Proxy", "Mesh Proxy service for Bluetooth Mesh"},
}

// eddystoneCodes are SIG short codes assigned to Google's Eddystone beacons.
var eddystoneCodes = map[string]Service{
	"feaa": {"Eddystone", "Google Eddystone beacon advertising service"},
}

// eddystoneUUIDs are full 128-bit UUIDs from the Eddystone specifications.
var eddystoneUUIDs = map[string]Service{
	"ee0c2080-8786-40ba-ab96-99b91ac981d8": {"Eddystone-URL Configuration", "Google Eddystone-URL beacon configuration service"},
}

// ibeaconUUIDs maps factory-default iBeacon proximity UUIDs to the beacon
// vendors that ship them.
var ibeaconUUIDs = map[string]string{
	"e2c56db5-dffb-48d2-b060-d0f5a71096e0": "AirLocate Sample Beacon",
	"b9407f30-f5f8-466e-aff9-25556b57fe6d": "Estimote Beacon",
	"f7826da6-4fa2-4e98-8024-bc5b71e0893e": "Kontakt.io Beacon",
	"2f234454-cf6d-4a0f-adf2-f4911ba9ffa6": "Radius Networks Beacon",
	"74278bda-b644-4520-8f0c-720eaf059935": "AprilBrother Beacon",
}

// Classify applies the structural rules in fixed priority order and returns
// the first match. A valid UUID that matches nothing specific yields the
// generic vendor-specific fallback, so the result is never nil for
// normalized input.
func Classify(id string) *Match {
	if code, ok := ShortCode(id); ok {
		if svc, ok := eddystoneCodes[code]; ok {
			return &Match{
				Type:        models.TypeGoogleEddystone,
				Name:        svc.Name,
				Description: svc.Description,
				Confidence:  models.ConfidenceHigh,
			}
		}
		if svc, ok := sigServices[code]; ok {
			return &Match{
				Type:        models.TypeStandardBLE,
				Name:        svc.Name,
				Description: svc.Description,
				Confidence:  models.ConfidenceHigh,
			}
		}
		// The base pattern is certain but the code is unassigned. The
		// structure alone does not tell us what the service is called, so
		// confidence drops to medium rather than high.
		return &Match{
			Type:        models.TypeStandardBLE,
			Name:        models.NameUnknown,
			Description: fmt.Sprintf("Unassigned Bluetooth SIG service (0x%s)", code),
			Confidence:  models.ConfidenceMedium,
		}
	}

	if name, ok := ibeaconUUIDs[id]; ok {
		return &Match{
			Type:        models.TypeAppleIBeacon,
			Name:        name,
			Description: fmt.Sprintf("Apple iBeacon proximity UUID (%s)", name),
			Confidence:  models.ConfidenceHigh,
		}
	}

	if svc, ok := eddystoneUUIDs[id]; ok {
		return &Match{
			Type:        models.TypeGoogleEddystone,
			Name:        svc.Name,
			Description: svc.Description,
			Confidence:  models.ConfidenceHigh,
		}
	}

	// Generic 128-bit custom UUID. Weak signal only.
	return &Match{
		Type:       models.TypeVendorSpecific,
		Confidence: models.ConfidenceLow,
	}
}

// ShortCode extracts the 16-bit short code from a Bluetooth SIG base UUID.
func ShortCode(id string) (string, bool) {
	m := sigBasePattern.FindStringSubmatch(id)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsSIGBase reports whether id follows the Bluetooth SIG base UUID pattern.
func IsSIGBase(id string) bool {
	_, ok := ShortCode(id)
	return ok
}
