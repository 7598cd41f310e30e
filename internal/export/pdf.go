package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"passport-extractor/internal/model"
)

// PDFReport renders a minimal field/value summary of one extraction. This is
// intentionally simple and does not attempt full document layout.
func PDFReport(result model.ExtractionResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Passport Data Extraction", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Source: %s", result.SourceFilename), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Extracted: %s", result.Timestamp.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	labelWidth := 60.0
	pdf.SetFont("Helvetica", "", 11)
	for _, key := range result.FieldOrder {
		label := strings.ReplaceAll(key, "_", " ")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, result.Fields[key], "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf failed: %w", err)
	}
	return buf.Bytes(), nil
}
