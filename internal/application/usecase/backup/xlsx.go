package backup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheet       = "Transactions"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// encodeXLSX writes the header and one row per transaction to a single sheet.
// Amounts are stored as text so no precision is lost to float cells.
func encodeXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		values := r.values()
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeXLSX reads the first sheet of the workbook. The first row is the header.
func decodeXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, invalidFile(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalidFile(fmt.Errorf("workbook has no sheets"))
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, invalidFile(err)
	}
	if len(records) == 0 {
		return nil, invalidFile(fmt.Errorf("sheet %q is empty", sheets[0]))
	}

	get := headerIndex(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row, err := rowFromRecord(rec, get)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// headerIndex maps the lowercased header names to a lookup over a record.
// Columns missing from the header or the record read as empty.
func headerIndex(header []string) func(rec []string, col string) string {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return func(rec []string, col string) string {
		if i, ok := index[col]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}
}

// rowFromRecord builds a Row from a tabular record, shared by the CSV and XLSX readers.
func rowFromRecord(rec []string, get func([]string, string) string) (Row, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(get(rec, "amount")))
	if err != nil {
		return Row{}, invalidFile(fmt.Errorf("invalid amount %q", get(rec, "amount")))
	}
	return Row{
		ID:          get(rec, "id"),
		Date:        get(rec, "date"),
		Name:        get(rec, "name"),
		Amount:      amount,
		Type:        get(rec, "type"),
		Description: get(rec, "description"),
		Source:      get(rec, "source"),
		Category:    get(rec, "category"),
		BankName:    get(rec, "bank_name"),
	}, nil
}
