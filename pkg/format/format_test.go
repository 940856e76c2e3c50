package format

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatal(err)
	}
	return data
}

func TestResult_ContactList(t *testing.T) {
	data := decode(t, `[
		{"id": "c1", "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
		{"id": "c2", "firstName": "Alan", "lastName": "Turing", "phone": "555-0100"}
	]`)

	got := Result("contacts_list", data)
	for _, want := range []string{"Found 2 contacts", "Ada Lovelace", "ada@example.com", "ID: c1", "555-0100"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResult_EmptyList(t *testing.T) {
	got := Result("deals_list", []interface{}{})
	if got != "No results found." {
		t.Errorf("Result() = %q, want the no-results message", got)
	}
}

func TestResult_ListTruncation(t *testing.T) {
	items := make([]interface{}, 25)
	for i := range items {
		items[i] = map[string]interface{}{
			"id":    fmt.Sprintf("d%d", i),
			"title": fmt.Sprintf("Deal %d", i),
			"value": float64(1000 * i),
		}
	}

	got := Result("deals_list", items)
	if !strings.Contains(got, "Found 25 deals") {
		t.Errorf("missing count header:\n%s", got)
	}
	if !strings.Contains(got, "... and 15 more") {
		t.Errorf("missing truncation suffix:\n%s", got)
	}
	if strings.Contains(got, "Deal 11") {
		t.Errorf("entries past the truncation point should not render:\n%s", got)
	}
}

func TestResult_SingleObjects(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		payload  string
		contains []string
	}{
		{
			name:     "created contact",
			tool:     "contacts_create",
			payload:  `{"id": "c9", "firstName": "Grace", "lastName": "Hopper"}`,
			contains: []string{"Created contact", "Grace Hopper", "ID: c9"},
		},
		{
			name:     "updated deal",
			tool:     "deals_update",
			payload:  `{"id": "d1", "title": "Big Deal", "value": 25000}`,
			contains: []string{"Updated deal", "Big Deal", "$25000.00"},
		},
		{
			name:     "deleted record",
			tool:     "tickets_delete",
			payload:  `{"ok": true}`,
			contains: []string{"Deleted successfully."},
		},
		{
			name:     "fetched contact",
			tool:     "contacts_get",
			payload:  `{"id": "c1", "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"}`,
			contains: []string{"Contact: Ada Lovelace", "ada@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Result(tt.tool, decode(t, tt.payload))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestResult_UnrecognizedShapeDumps(t *testing.T) {
	data := decode(t, `{"totalRevenue": 120000, "forecast": {"q3": 40000}}`)

	got := Result("analytics_revenue", data)
	// Falls back to a structural dump rather than guessing a rendering.
	if !strings.Contains(got, "totalRevenue") || !strings.Contains(got, "forecast") {
		t.Errorf("dump should include payload fields:\n%s", got)
	}
}

func TestResult_NeverPanics(t *testing.T) {
	payloads := []interface{}{
		nil,
		"plain string",
		float64(42),
		[]interface{}{"mixed", float64(1), nil, map[string]interface{}{}},
		map[string]interface{}{"title": float64(7), "value": "not-a-number"},
	}

	for _, p := range payloads {
		for _, tool := range []string{"contacts_list", "deals_get", "weird_tool", "tickets_delete"} {
			if out := Result(tool, p); out == "" {
				t.Errorf("Result(%s, %v) returned empty output", tool, p)
			}
		}
	}
}

func TestResult_UserAndPipelineLists(t *testing.T) {
	users := decode(t, `[{"id": "u1", "email": "boss@example.com", "role": "ADMIN"}]`)
	got := Result("users_list", users)
	if !strings.Contains(got, "boss@example.com (ADMIN)") {
		t.Errorf("user rendering wrong:\n%s", got)
	}

	pipelines := decode(t, `[{"id": "p1", "name": "Sales"}, {"id": "p2", "name": "Renewals"}]`)
	got = Result("pipelines_list", pipelines)
	if !strings.Contains(got, "Found 2 pipelines") || !strings.Contains(got, "Sales") {
		t.Errorf("pipeline rendering wrong:\n%s", got)
	}
}
