package render

import (
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
)

// SheetName is the worksheet XLSX writes the headers to.
const SheetName = "Headers"

// XLSX renders m as a workbook with one spreadsheet row per level.
//
// Each root is written to the first column of its header's span and merged
// across the whole span; hidden columns are set invisible, so spreadsheet
// applications show the same visible colspan as the matrix.
func XLSX(m matrix.Matrix) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, xlsxErr(err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, xlsxErr(err)
	}

	for level := range m.Levels() {
		row := level + 1
		for _, cell := range m.Roots(level) {
			start, _ := excelize.CoordinatesToCellName(cell.ColumnIndex+1, row)
			end, _ := excelize.CoordinatesToCellName(cell.ColumnIndex+cell.OrigColspan, row)
			if err := f.SetCellValue(SheetName, start, cell.Label); err != nil {
				return nil, xlsxErr(err)
			}
			if cell.OrigColspan > 1 {
				if err := f.MergeCell(SheetName, start, end); err != nil {
					return nil, xlsxErr(err)
				}
			}
			if err := f.SetCellStyle(SheetName, start, end, style); err != nil {
				return nil, xlsxErr(err)
			}
		}
	}

	for _, col := range m.HiddenColumns() {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColVisible(SheetName, name, false); err != nil {
			return nil, xlsxErr(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, xlsxErr(err)
	}
	return buf.Bytes(), nil
}

func xlsxErr(err error) error {
	return errors.Wrap(errors.ErrCodeInternal, err, "write xlsx")
}
