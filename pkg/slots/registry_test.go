package slots

import "testing"

func TestLookupConsulate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantID   string
		wantOK   bool
	}{
		{name: "uppercase", input: "CHENNAI", wantName: "Chennai", wantID: "122", wantOK: true},
		{name: "mixed case", input: "Hyderabad", wantName: "Hyderabad", wantID: "123", wantOK: true},
		{name: "vac suffix ignored", input: "KOLKATA VAC", wantName: "Kolkata", wantID: "124", wantOK: true},
		{name: "delhi alias", input: "DELHI", wantName: "New Delhi", wantID: "126", wantOK: true},
		{name: "two word name", input: "NEW DELHI", wantName: "New Delhi", wantID: "126", wantOK: true},
		{name: "padded", input: "  MUMBAI  ", wantName: "Mumbai", wantID: "125", wantOK: true},
		{name: "unknown", input: "BANGALORE", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := LookupConsulate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if c.Name != tt.wantName {
				t.Errorf("Expected name %s, got %s", tt.wantName, c.Name)
			}
			if c.FacilityID != tt.wantID {
				t.Errorf("Expected facility %s, got %s", tt.wantID, c.FacilityID)
			}
		})
	}
}

func TestStripVAC(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"CHENNAI VAC", "CHENNAI"},
		{"Chennai vac", "Chennai"},
		{"NEW DELHI VAC", "NEW DELHI"},
		{"MUMBAI", "MUMBAI"},
		{"  HYDERABAD VAC  ", "HYDERABAD"},
	}

	for _, tt := range tests {
		if got := StripVAC(tt.input); got != tt.want {
			t.Errorf("StripVAC(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestIsVACLocation(t *testing.T) {
	if !IsVACLocation("CHENNAI VAC") {
		t.Error("Expected CHENNAI VAC to be a VAC location")
	}
	if !IsVACLocation("chennai vac") {
		t.Error("Expected lowercase marker to be detected")
	}
	if IsVACLocation("CHENNAI") {
		t.Error("Did not expect CHENNAI to be a VAC location")
	}
}

func TestFacilityID(t *testing.T) {
	if got := FacilityID("Chennai"); got != "122" {
		t.Errorf("Expected 122, got %s", got)
	}
	if got := FacilityID("BANGALORE"); got != "" {
		t.Errorf("Expected empty facility for unknown location, got %s", got)
	}
}

func TestCanonicalLocationUnknownTitleCased(t *testing.T) {
	if got := CanonicalLocation("BANGALORE"); got != "Bangalore" {
		t.Errorf("Expected Bangalore, got %s", got)
	}
	if got := CanonicalLocation("port of spain"); got != "Port Of Spain" {
		t.Errorf("Expected Port Of Spain, got %s", got)
	}
}
