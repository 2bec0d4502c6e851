package grid

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// FromXLSX shapes one worksheet of a workbook into the raw cell matrix
// consumed by Extract. An empty sheet name selects the first sheet. Rows are
// padded with "" to the header width so that row-length validation in
// Extract sees what the sheet actually looks like, not what the xlsx
// encoder bothered to serialize.
func FromXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out, nil
}
