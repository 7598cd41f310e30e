package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"passport-extractor/internal/model"
)

// XLSX returns a one-sheet workbook with a Field/Value row per extracted field.
func XLSX(result model.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Passport"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}
	f.DeleteSheet("Sheet1")

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Field")
	write(2, 1, "Value")

	row := 2
	for _, key := range result.FieldOrder {
		write(1, row, key)
		write(2, row, result.Fields[key])
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx failed: %w", err)
	}
	return buf.Bytes(), nil
}
