package slots

import "strings"

// Consulate describes one known post: the canonical display name plus
// the facility id the scheduling portal uses for it.
type Consulate struct {
	Name       string
	FacilityID string
}

// registry lists the posts the feed reports on, keyed by the vendor's
// uppercase spelling. DELHI is the feed's older spelling of NEW DELHI.
var registry = map[string]Consulate{
	"CHENNAI":   {Name: "Chennai", FacilityID: "122"},
	"HYDERABAD": {Name: "Hyderabad", FacilityID: "123"},
	"KOLKATA":   {Name: "Kolkata", FacilityID: "124"},
	"MUMBAI":    {Name: "Mumbai", FacilityID: "125"},
	"NEW DELHI": {Name: "New Delhi", FacilityID: "126"},
	"DELHI":     {Name: "New Delhi", FacilityID: "126"},
}

// LookupConsulate resolves a location spelling to its registry entry.
// The VAC marker and case are ignored.
func LookupConsulate(name string) (Consulate, bool) {
	key := strings.ToUpper(StripVAC(name))
	c, ok := registry[key]
	return c, ok
}

// FacilityID returns the portal facility id for a location, or "" when
// the location is not a known post.
func FacilityID(name string) string {
	if c, ok := LookupConsulate(name); ok {
		return c.FacilityID
	}
	return ""
}

// KnownConsulates returns the canonical names of every registered post.
func KnownConsulates() []string {
	seen := make(map[string]bool, len(registry))
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	return names
}

// IsVACLocation reports whether a feed location name carries the VAC
// marker, any case.
func IsVACLocation(name string) bool {
	return strings.Contains(strings.ToUpper(name), "VAC")
}

// StripVAC removes the application-center marker from a location name.
func StripVAC(name string) string {
	upper := strings.ToUpper(name)
	if idx := strings.Index(upper, " VAC"); idx >= 0 {
		return strings.TrimSpace(name[:idx] + name[idx+4:])
	}
	return strings.TrimSpace(name)
}

// CanonicalLocation maps a feed spelling to the registry display name.
// Unregistered locations are title-cased so they still read naturally
// in the "all" view.
func CanonicalLocation(name string) string {
	stripped := StripVAC(name)
	if c, ok := LookupConsulate(stripped); ok {
		return c.Name
	}
	return titleCase(stripped)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
