package cli

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/roach88/sift/internal/table"
)

// ReadCSV parses CSV input into a table. The first record is the header;
// every column comes in as a string column, and empty cells are missing
// values. Type assignment happens later, in the pipeline's cast stages.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	values := make([][]table.Value, len(header))
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		for i, cell := range record {
			if cell == "" {
				values[i] = append(values[i], table.Null{})
			} else {
				values[i] = append(values[i], table.String(cell))
			}
		}
		row++
	}

	cols := make([]table.Column, len(header))
	for i, name := range header {
		if values[i] == nil {
			values[i] = []table.Value{}
		}
		cols[i] = table.Column{Name: name, Type: table.TypeString, Values: values[i]}
	}
	return table.New(cols...)
}

// WriteCSV writes a table as CSV: a header row followed by one record per
// row. Missing cells render as empty fields.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j, v := range t.Row(i) {
			record[j] = table.Format(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
