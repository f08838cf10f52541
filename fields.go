package main

import (
	"fmt"
	"strconv"
)

/*
 * Some column families in the workbook carry a Buddhist-year suffix
 * (CXR, CXR66, CXR67, ...). Resolution always checks the unsuffixed key
 * first, then the variant suffixed with the last two digits of the
 * record's year. No year constant is ever hard-coded.
 */

// recordYear extracts the Buddhist year of a record, or 0 when absent.
func recordYear(rec RawRecord) int {
	if v := toOptionalFloat(rec["Year"]); v != nil {
		return int(*v)
	}
	return 0
}

// yearSuffix returns the two-digit suffix for a Buddhist year ("2566" -> "66").
func yearSuffix(year int) string {
	if year <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d", year%100)
}

// resolveCell looks up a possibly year-suffixed column family.
func resolveCell(rec RawRecord, base string) any {
	if v, ok := rec[base]; ok && !isMissing(v) {
		return v
	}
	if suffix := yearSuffix(recordYear(rec)); suffix != "" {
		if v, ok := rec[base+suffix]; ok && !isMissing(v) {
			return v
		}
	}
	return nil
}

// floatCell reads a numeric cell through the year-suffix resolution.
func floatCell(rec RawRecord, base string) *float64 {
	return toOptionalFloat(resolveCell(rec, base))
}

// textCell reads a display string through the year-suffix resolution.
func textCell(rec RawRecord, base string) string {
	return toDisplay(resolveCell(rec, base))
}

// earCell reads an audiogram threshold, tolerating the naming conventions
// seen across workbook revisions: R4000, R_4000, R4000Hz.
func earCell(rec RawRecord, ear string, freq int) *float64 {
	candidates := []string{
		ear + strconv.Itoa(freq),
		ear + "_" + strconv.Itoa(freq),
		ear + strconv.Itoa(freq) + "Hz",
	}
	for _, key := range candidates {
		if v, ok := rec[key]; ok && !isMissing(v) {
			return toOptionalFloat(v)
		}
	}
	return nil
}
