package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"passport-extractor/internal/model"
)

func fixtureResult() model.ExtractionResult {
	ts, _ := time.Parse(time.RFC3339, "2024-01-31T15:45:00Z")
	return model.ExtractionResult{
		ID:             "ex-1",
		SourceFilename: "passport.pdf",
		Timestamp:      ts,
		Fields: map[string]string{
			"given_names":     "JOHN, WILLIAM",
			"passport_number": "X1234567",
			"surname":         "MARTIN",
		},
		FieldOrder:  []string{"given_names", "passport_number", "surname"},
		RawResponse: []byte(`{"processorRun":{"id":"run_1"}}`),
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"csv", "json", "raw", "xlsx", "pdf"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("ParseFormat accepted an unsupported format")
	}
}

func TestFilename(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2024-01-31T15:45:00Z")

	if got := FormatCSV.Filename(ts); got != "passport_data_20240131_154500.csv" {
		t.Errorf("csv filename = %q", got)
	}
	if got := FormatRaw.Filename(ts); got != "passport_raw_20240131_154500.json" {
		t.Errorf("raw filename = %q", got)
	}
	if got := FormatXLSX.Filename(ts); got != "passport_data_20240131_154500.xlsx" {
		t.Errorf("xlsx filename = %q", got)
	}
}

func TestRenderCSVAndJSONAgree(t *testing.T) {
	result := fixtureResult()

	csvBody, err := Render(FormatCSV, result)
	if err != nil {
		t.Fatalf("render csv: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(csvBody)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	jsonBody, err := Render(FormatJSON, result)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var records []map[string]string
	if err := json.Unmarshal(jsonBody, &records); err != nil {
		t.Fatalf("parse json: %v", err)
	}

	for i, key := range rows[0] {
		if rows[1][i] != records[0][key] {
			t.Errorf("field %q: csv %q != json %q", key, rows[1][i], records[0][key])
		}
	}
}

func TestRenderRawPassesThrough(t *testing.T) {
	body, err := Render(FormatRaw, fixtureResult())
	if err != nil {
		t.Fatalf("render raw: %v", err)
	}
	if !strings.Contains(string(body), `"run_1"`) {
		t.Errorf("raw output missing vendor payload: %s", body)
	}
}

func TestRenderXLSX(t *testing.T) {
	body, err := Render(FormatXLSX, fixtureResult())
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Passport")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3 fields", len(rows))
	}
	if rows[0][0] != "Field" || rows[0][1] != "Value" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[3][0] != "surname" || rows[3][1] != "MARTIN" {
		t.Errorf("last row = %v", rows[3])
	}
}

func TestRenderPDF(t *testing.T) {
	body, err := Render(FormatPDF, fixtureResult())
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}
