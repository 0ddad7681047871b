// Package classifier turns structural pattern matches and raw search results
// into a single classification record. The engine is total over its inputs:
// it always produces a record, falling back to Unknown/low when neither the
// UUID structure nor the search results yield anything usable.
package classifier

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"uuidy/internal/ble"
	"uuidy/internal/models"
)

// maxSources caps how many search results are attached to a record.
const maxSources = 5

// maxSnippetLen bounds snippet text carried into descriptions.
const maxSnippetLen = 200

// namePatterns extract candidate service names from result text.
var namePatterns = []*regexp.Regexp{
	// "Heart Rate Service" or "Heart Rate Profile"
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Service|Profile)`),
	// "service name: Heart Rate"
	regexp.MustCompile(`(?i)(?:service|profile|name)[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	// Nordic UART Service appears verbatim in many vendor docs
	regexp.MustCompile(`(?i)(Nordic\s+UART\s+Service|NUS)`),
	// "Battery Level UUID" or "Battery Level 0x2A19"
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:UUID|0x[0-9A-Fa-f]+)`),
}

// Text indicators used to detect classification types from search results.
var (
	ibeaconIndicators = []string{"ibeacon", "i-beacon", "apple beacon", "proximity uuid"}

	eddystoneIndicators = []string{
		"eddystone", "google beacon",
		"eddystone-uid", "eddystone-url", "eddystone-tlm", "eddystone-eid",
	}

	vendorIndicators = []string{
		"apple", "samsung", "google", "fitbit", "garmin",
		"nordic", "nordic semiconductor", "texas instruments", "silicon labs",
		"espressif", "qualcomm", "broadcom", "xiaomi", "huawei",
		"microsoft", "amazon", "nrf",
	}

	bleIndicators = []string{"bluetooth", "ble", "gatt", "service", "characteristic"}
)

// authoritativeDomains are official Bluetooth-related sources. A result from
// one of these can raise a textual match above medium confidence.
var authoritativeDomains = []string{
	"bluetooth.com",
	"bluetooth.org",
	"developer.apple.com",
	"developer.android.com",
	"developer.nordicsemi.com",
	"infocenter.nordicsemi.com",
	"ti.com",
	"silabs.com",
}

// nameStopwords are extraction candidates too generic to be a service name.
var nameStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "ble": true, "uuid": true,
}

// Engine applies the classification decision ladder.
type Engine struct{}

// New creates a classifier engine.
func New() *Engine {
	return &Engine{}
}

// Classify produces exactly one record for a normalized UUID given the
// structural match and search results. Priority order: structural match with
// a known name, then textual extraction from search results, then the
// Unknown fallback.
func (e *Engine) Classify(id string, match *ble.Match, results []models.Source) models.Classification {
	// A high-confidence structural match needs no corroboration; the
	// classification stands on the pattern alone and sources stay empty.
	if match != nil && match.Confidence == models.ConfidenceHigh {
		slog.Debug("classified from structural pattern", "uuid", id, "type", match.Type, "name", match.Name)
		return models.Classification{
			UUID:        id,
			Name:        match.Name,
			Type:        match.Type,
			Description: match.Description,
			Sources:     []models.Source{},
			Confidence:  models.ConfidenceHigh,
		}
	}

	if name := extractName(results); name != "" {
		typ := detectType(match, results)
		conf := models.ConfidenceMedium
		if exactMatchFromAuthority(id, results) {
			conf = models.ConfidenceHigh
		}
		slog.Debug("classified from search results", "uuid", id, "type", typ, "name", name, "confidence", conf)
		return models.Classification{
			UUID:        id,
			Name:        name,
			Type:        typ,
			Description: describe(name, typ, results),
			Sources:     capSources(results),
			Confidence:  conf,
		}
	}

	// No textual match. A SIG-pattern UUID with an unassigned code keeps its
	// structural type and medium confidence; everything else degrades to the
	// vendor-specific fallback or Unknown at low confidence.
	if match != nil && match.Name != "" {
		return models.Classification{
			UUID:        id,
			Name:        match.Name,
			Type:        match.Type,
			Description: match.Description,
			Sources:     capSources(results),
			Confidence:  match.Confidence,
		}
	}

	typ := models.TypeUnknown
	if match != nil && match.Type == models.TypeVendorSpecific {
		typ = models.TypeVendorSpecific
	}
	slog.Debug("no usable classification signals", "uuid", id, "type", typ)
	return models.Classification{
		UUID:        id,
		Name:        models.NameUnknown,
		Type:        typ,
		Description: "Unable to identify this UUID. No information found in search results.",
		Sources:     capSources(results),
		Confidence:  models.ConfidenceLow,
	}
}

// detectType derives the classification type for a textual match. Structural
// categories flagged by the pattern matcher win; otherwise text indicators
// decide, defaulting to Vendor-Specific.
func detectType(match *ble.Match, results []models.Source) string {
	if match != nil {
		switch match.Type {
		case models.TypeAppleIBeacon, models.TypeGoogleEddystone, models.TypeStandardBLE:
			return match.Type
		}
	}

	text := strings.ToLower(combineText(results))

	if containsAny(text, ibeaconIndicators) {
		return models.TypeAppleIBeacon
	}
	if containsAny(text, eddystoneIndicators) {
		return models.TypeGoogleEddystone
	}
	if containsAny(text, vendorIndicators) {
		return models.TypeVendorSpecific
	}
	if containsAny(text, bleIndicators) {
		return models.TypeCustomService
	}
	return models.TypeVendorSpecific
}

// extractName finds the most likely service name across result titles and
// snippets. Candidates are counted case-sensitively; ties go to the first
// candidate seen, which preserves provider relevance order. Returns "" when
// nothing usable is found.
func extractName(results []models.Source) string {
	counts := make(map[string]int)
	var order []string

	for _, r := range results {
		for _, text := range []string{r.Title, r.Snippet} {
			for _, pattern := range namePatterns {
				for _, m := range pattern.FindAllStringSubmatch(text, -1) {
					candidate := strings.TrimSpace(m[len(m)-1])
					if len(candidate) < 3 || nameStopwords[strings.ToLower(candidate)] {
						continue
					}
					if _, seen := counts[candidate]; !seen {
						order = append(order, candidate)
					}
					counts[candidate]++
				}
			}
		}
	}

	best := ""
	bestCount := 0
	for _, candidate := range order {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	if best != "" {
		return best
	}

	// Fallback: clean up the top result's title.
	if len(results) > 0 {
		if name := cleanTitle(results[0].Title); name != "" && !strings.EqualFold(name, models.NameUnknown) {
			return name
		}
	}
	return ""
}

// cleanTitle strips common suffixes and separators from a result title.
func cleanTitle(title string) string {
	suffixes := []string{
		" - Bluetooth SIG",
		" - Bluetooth",
		" | Bluetooth",
		" - Nordic",
		" - Apple",
		" Service UUID",
		" UUID",
	}
	result := title
	for _, suffix := range suffixes {
		if strings.HasSuffix(strings.ToLower(result), strings.ToLower(suffix)) {
			result = result[:len(result)-len(suffix)]
		}
	}

	for _, sep := range []string{" - ", " | ", " : "} {
		if idx := strings.Index(result, sep); idx >= 0 {
			result = result[:idx]
		}
	}

	return strings.TrimSpace(result)
}

// exactMatchFromAuthority reports whether an authoritative source mentions
// the UUID verbatim or its 0x-prefixed SIG short form. Only those exact
// textual matches justify high confidence for a search-derived record.
func exactMatchFromAuthority(id string, results []models.Source) bool {
	needles := []string{id}
	if code, ok := ble.ShortCode(id); ok {
		needles = append(needles, "0x"+code)
	}

	for _, r := range results {
		if !isAuthoritativeSource(r.URL) {
			continue
		}
		text := strings.ToLower(r.Title + " " + r.Snippet)
		for _, needle := range needles {
			if strings.Contains(text, strings.ToLower(needle)) {
				return true
			}
		}
	}
	return false
}

// isAuthoritativeSource checks if a URL is from an official Bluetooth-related
// domain.
func isAuthoritativeSource(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, domain := range authoritativeDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// describe synthesizes a description from the classification type and the
// best available snippet, preferring authoritative sources.
func describe(name, typ string, results []models.Source) string {
	var base string
	switch typ {
	case models.TypeStandardBLE:
		base = fmt.Sprintf("Bluetooth SIG standardized %s service", name)
	case models.TypeVendorSpecific:
		base = fmt.Sprintf("Vendor-specific %s service", name)
	case models.TypeAppleIBeacon:
		base = fmt.Sprintf("Apple iBeacon %s", name)
	case models.TypeGoogleEddystone:
		base = fmt.Sprintf("Google Eddystone %s", name)
	case models.TypeCustomService:
		base = fmt.Sprintf("Custom BLE %s service", name)
	default:
		base = fmt.Sprintf("%s service", name)
	}

	snippet := bestSnippet(results)
	if len(snippet) > 20 {
		return base + ". " + truncate(snippet, maxSnippetLen)
	}
	return base
}

// bestSnippet picks the first authoritative snippet, or the first non-empty
// one when no authoritative source is present.
func bestSnippet(results []models.Source) string {
	best := ""
	for _, r := range results {
		if r.Snippet == "" {
			continue
		}
		if isAuthoritativeSource(r.URL) {
			return r.Snippet
		}
		if best == "" {
			best = r.Snippet
		}
	}
	return best
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// capSources bounds the attached sources while preserving provider order.
// The floor is an empty slice, never nil, so records always serialize with
// a sources array.
func capSources(results []models.Source) []models.Source {
	if len(results) > maxSources {
		results = results[:maxSources]
	}
	sources := make([]models.Source, len(results))
	copy(sources, results)
	return sources
}

func combineText(results []models.Source) string {
	var parts []string
	for _, r := range results {
		parts = append(parts, r.Title)
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
	}
	return strings.Join(parts, " ")
}

func containsAny(text string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
