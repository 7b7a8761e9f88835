package utils

import "testing"

func TestDereferencePtr(t *testing.T) {
	v := "vendor"
	if got := DereferencePtr(&v, ""); got != "vendor" {
		t.Fatalf("expected vendor, got %q", got)
	}
	if got := DereferencePtr[string](nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	raw, err := MarshalToJSON(payload{Name: "framing", Count: 3})
	if err != nil {
		t.Fatalf("MarshalToJSON error: %v", err)
	}

	var out payload
	if err := UnmarshalFromJSON([]byte(raw), &out); err != nil {
		t.Fatalf("UnmarshalFromJSON error: %v", err)
	}
	if out.Name != "framing" || out.Count != 3 {
		t.Fatalf("round trip drifted: %+v", out)
	}
}
