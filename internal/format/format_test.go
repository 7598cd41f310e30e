package format

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected map[string]string
	}{
		{
			name:     "flat strings pass through",
			input:    map[string]any{"surname": "MARTIN", "sex": "M"},
			expected: map[string]string{"surname": "MARTIN", "sex": "M"},
		},
		{
			name:     "nil becomes empty cell",
			input:    map[string]any{"height": nil},
			expected: map[string]string{"height": ""},
		},
		{
			name: "nested objects use underscore keys",
			input: map[string]any{
				"residence": map[string]any{"city": "PARIS", "country": "FRANCE"},
			},
			expected: map[string]string{
				"residence_city":    "PARIS",
				"residence_country": "FRANCE",
			},
		},
		{
			name:     "empty nested object becomes empty cell",
			input:    map[string]any{"residence": map[string]any{}},
			expected: map[string]string{"residence": ""},
		},
		{
			name:     "string lists join with semicolons",
			input:    map[string]any{"given_names": []any{"JOHN", "WILLIAM"}},
			expected: map[string]string{"given_names": "JOHN; WILLIAM"},
		},
		{
			name:     "mixed lists stringify",
			input:    map[string]any{"scores": []any{"a", 1.5}},
			expected: map[string]string{"scores": "[a 1.5]"},
		},
		{
			name:     "numbers stringify",
			input:    map[string]any{"pages": 2.0},
			expected: map[string]string{"pages": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, order := Flatten(tt.input)
			if len(flat) != len(tt.expected) {
				t.Fatalf("got %d keys, want %d: %v", len(flat), len(tt.expected), flat)
			}
			for k, want := range tt.expected {
				if got := flat[k]; got != want {
					t.Errorf("key %q: got %q, want %q", k, got, want)
				}
			}
			if len(order) != len(flat) {
				t.Fatalf("order has %d keys, want %d", len(order), len(flat))
			}
			for i := 1; i < len(order); i++ {
				if order[i-1] >= order[i] {
					t.Fatalf("order not sorted: %v", order)
				}
			}
		})
	}
}

func TestCSVAndJSONCarryIdenticalValues(t *testing.T) {
	fields, order := Flatten(map[string]any{
		"surname":         "MARTIN",
		"given_names":     []any{"JOHN", "WILLIAM"},
		"passport_number": "X1234567",
		"height":          nil,
	})

	csvText := CSV(fields, order)
	reader := csv.NewReader(strings.NewReader(csvText))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d csv rows, want 2", len(rows))
	}

	var records []map[string]string
	if err := json.Unmarshal([]byte(JSON(fields, order)), &records); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d json records, want 1", len(records))
	}

	for i, key := range rows[0] {
		if rows[1][i] != records[0][key] {
			t.Errorf("field %q: csv %q != json %q", key, rows[1][i], records[0][key])
		}
	}
	if len(rows[0]) != len(records[0]) {
		t.Errorf("csv has %d columns, json has %d fields", len(rows[0]), len(records[0]))
	}
}

func TestCSVMissingFieldIsEmptyCell(t *testing.T) {
	fields := map[string]string{"surname": "MARTIN"}
	order := []string{"surname", "passport_number"}

	rows, err := csv.NewReader(strings.NewReader(CSV(fields, order))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if rows[1][1] != "" {
		t.Errorf("missing field cell = %q, want empty", rows[1][1])
	}
}

func TestRaw(t *testing.T) {
	pretty := Raw([]byte(`{"a":{"b":1}}`))
	if !strings.Contains(pretty, "\n  \"a\"") {
		t.Errorf("raw output not indented: %q", pretty)
	}

	invalid := Raw([]byte("not-json"))
	if invalid != "not-json" {
		t.Errorf("invalid json should pass through, got %q", invalid)
	}
}
