package main

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

/*
 * The checkup source database is a spreadsheet maintained by the clinic.
 * The workbook is read once at startup into header-keyed rows; assembly
 * and interpretation only ever see the in-memory records.
 */

// records is the loaded workbook, nil when no workbook was configured.
var records []RawRecord

// loadWorkbook reads the first sheet of an .xlsx export into records.
// The first row is the header; later rows become header-keyed cells with
// blank cells omitted.
func loadWorkbook(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening checkup workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("checkup workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading checkup sheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("checkup sheet has no data rows")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	var loaded []RawRecord
	for _, row := range rows[1:] {
		record := RawRecord{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			record[header[i]] = cell
		}
		if len(record) > 0 {
			loaded = append(loaded, record)
		}
	}

	return loaded, nil
}
