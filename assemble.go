package main

import (
	"errors"
	"regexp"
	"sort"
)

/*
 * Record assembly: pick one merged row for a (patient, year[, date]) query.
 *
 * A patient key is either a hospital number or a 13-digit national
 * identifier; both are normalized before comparison. Rows of the chosen
 * year are merged field-by-field (first readable value wins, starting from
 * the chosen date's row), never across years.
 */

// ErrNoRecord is the distinguished "patient/year not in the workbook" result.
var ErrNoRecord = errors.New("no checkup record matches the query")

var cidRegex = regexp.MustCompile(`^\d{13}$`)

// matchesPatient reports whether a row belongs to the given normalized key.
func matchesPatient(rec RawRecord, key string, isCID bool) bool {
	if isCID {
		for _, field := range []string{"CID", "เลขบัตรประชาชน"} {
			if cell, ok := rec[field]; ok && normalizeCID(cell) == key {
				return true
			}
		}
		return false
	}
	return normalizeHN(rec["HN"]) == key
}

// filterPatient returns all rows of one patient, in workbook order.
func filterPatient(records []RawRecord, key string) History {
	isCID := false
	if normalized := normalizeCID(key); cidRegex.MatchString(normalized) {
		key, isCID = normalized, true
	} else {
		key = normalizeHN(key)
	}
	if key == "" {
		return nil
	}

	var history History
	for _, rec := range records {
		if matchesPatient(rec, key, isCID) {
			history = append(history, rec)
		}
	}
	return history
}

// assembleRecord resolves the merged record for a patient query plus the
// patient's full history (for baseline-dependent panels).
func assembleRecord(records []RawRecord, key string, year int, date string) (RawRecord, History, error) {
	history := filterPatient(records, key)
	if len(history) == 0 {
		return nil, nil, ErrNoRecord
	}

	// Default to the latest year on file.
	if year == 0 {
		for _, rec := range history {
			if y := recordYear(rec); y > year {
				year = y
			}
		}
	}

	var slice History
	for _, rec := range history {
		if recordYear(rec) == year {
			slice = append(slice, rec)
		}
	}
	if len(slice) == 0 {
		return nil, nil, ErrNoRecord
	}

	chosen := pickRow(slice, date)
	if chosen < 0 {
		return nil, nil, ErrNoRecord
	}

	// Merge within the year only: the chosen row leads, the rest of the
	// year's rows fill its gaps.
	merged := RawRecord{}
	fill := func(rec RawRecord) {
		for field, value := range rec {
			if _, ok := merged[field]; !ok && !isMissing(value) {
				merged[field] = value
			}
		}
	}
	fill(slice[chosen])
	for i, rec := range slice {
		if i != chosen {
			fill(rec)
		}
	}

	return merged, history, nil
}

// pickRow selects the row for the requested date, or the latest dated row
// when no date is given. Unparseable dates sort first and lose.
func pickRow(slice History, date string) int {
	if date != "" {
		want := normalizeThaiDate(date)
		for i, rec := range slice {
			if normalizeThaiDate(rec["วันที่ตรวจ"]) == want {
				return i
			}
		}
		return -1
	}

	type dated struct {
		index int
		key   int
		ok    bool
	}
	rows := make([]dated, 0, len(slice))
	for i, rec := range slice {
		key, ok := parseThaiDateKey(toDisplay(rec["วันที่ตรวจ"]))
		rows = append(rows, dated{index: i, key: key, ok: ok})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return !rows[i].ok
		}
		return rows[i].key < rows[j].key
	})
	return rows[len(rows)-1].index
}
