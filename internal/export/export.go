// Package export produces downloadable renditions of a stored extraction:
// CSV, JSON records, the raw vendor response, an XLSX workbook, and a PDF
// summary report.
package export

import (
	"fmt"
	"time"

	"passport-extractor/internal/format"
	"passport-extractor/internal/model"
)

// Format is one of the supported download formats.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatRaw  Format = "raw"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv",
	FormatJSON: "application/json",
	FormatRaw:  "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

var extensions = map[Format]string{
	FormatCSV:  "csv",
	FormatJSON: "json",
	FormatRaw:  "json",
	FormatXLSX: "xlsx",
	FormatPDF:  "pdf",
}

// ParseFormat normalizes a query-string format value.
func ParseFormat(raw string) (Format, error) {
	f := Format(raw)
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
	return f, nil
}

// ContentType reports the MIME type the download should be served with.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Filename builds the timestamped download name, e.g.
// passport_data_20240131_154500.csv; raw downloads use the passport_raw prefix.
func (f Format) Filename(ts time.Time) string {
	prefix := "passport_data"
	if f == FormatRaw {
		prefix = "passport_raw"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, ts.Format("20060102_150405"), extensions[f])
}

// Render produces the download body for one extraction result.
func Render(f Format, result model.ExtractionResult) ([]byte, error) {
	switch f {
	case FormatCSV:
		return []byte(format.CSV(result.Fields, result.FieldOrder)), nil
	case FormatJSON:
		return []byte(format.JSON(result.Fields, result.FieldOrder)), nil
	case FormatRaw:
		return []byte(format.Raw(result.RawResponse)), nil
	case FormatXLSX:
		return XLSX(result)
	case FormatPDF:
		return PDFReport(result)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}
