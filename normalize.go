package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

/*
 * Every cell in the source workbook is a possibly-missing string, number,
 * or operator-typed sentinel. All coercion happens here; downstream code
 * branches on typed optionals, never on tokens.
 */

var missingTokens = map[string]struct{}{
	"":     {},
	"-":    {},
	"none": {},
	"nan":  {},
	"null": {},
}

// isMissing is the single predicate for "this cell was not filled in".
func isMissing(cell any) bool {
	if cell == nil {
		return true
	}
	switch v := cell.(type) {
	case string:
		_, ok := missingTokens[strings.ToLower(strings.TrimSpace(v))]
		return ok
	case float64:
		return math.IsNaN(v)
	}
	return false
}

// toOptionalFloat coerces a cell to a number. Thousands separators and
// whitespace are stripped first. Non-numeric strings are treated the same
// as missing cells, never as errors.
func toOptionalFloat(cell any) *float64 {
	if isMissing(cell) {
		return nil
	}
	switch v := cell.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// toDisplay renders a cell for the report: "-" when missing, otherwise the
// trimmed string form.
func toDisplay(cell any) string {
	if isMissing(cell) {
		return "-"
	}
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return formatNumber(v)
	}
	return strings.TrimSpace(fmt.Sprint(cell))
}

/*******************************
 ******** Thai dates ***********
 *******************************/

var thaiMonths = []string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var thaiMonthAbbrevs = []string{
	"ม.ค", "ก.พ", "มี.ค", "เม.ย", "พ.ค", "มิ.ย",
	"ก.ค", "ส.ค", "ก.ย", "ต.ค", "พ.ย", "ธ.ค",
}

// Operator-typed tokens that stand in for a date and must survive untouched.
var dateSentinels = map[string]struct{}{
	"ไม่ตรวจ":              {},
	"นัดที่หลัง":           {},
	"ไม่ได้เข้ารับการตรวจ": {},
}

var numericDateRegex = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)
var wordDateRegex = regexp.MustCompile(`^(\d{1,2}(?:-\d{1,2})?)\s+(\S+)\s+(\d{4})$`)

// thaiMonthIndex resolves a Thai month word or abbreviation to 1..12.
func thaiMonthIndex(word string) int {
	word = strings.TrimSuffix(strings.TrimSpace(word), ".")
	for i, m := range thaiMonths {
		if word == m {
			return i + 1
		}
	}
	for i, a := range thaiMonthAbbrevs {
		if word == a {
			return i + 1
		}
	}
	return 0
}

// toBuddhistYear maps a year in either era (or a two-digit shorthand) to a
// full Buddhist year. Checkup data never predates the 1900s.
func toBuddhistYear(year int) int {
	switch {
	case year >= 2400:
		return year
	case year >= 1900:
		return year + 543
	case year < 100:
		return year + 2500
	}
	return year
}

// normalizeThaiDate canonicalizes a check-date cell to
// "<day> <full-thai-month> <buddhist-year>". Sentinel tokens pass through
// and anything unparseable comes back trimmed but otherwise untouched.
func normalizeThaiDate(cell any) string {
	if isMissing(cell) {
		return "-"
	}
	s := strings.TrimSpace(fmt.Sprint(cell))
	if _, ok := dateSentinels[s]; ok {
		return s
	}

	if m := numericDateRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%d %s %d", day, thaiMonths[month-1], toBuddhistYear(year))
		}
		return s
	}

	if m := wordDateRegex.FindStringSubmatch(s); m != nil {
		month := thaiMonthIndex(m[2])
		if month != 0 {
			// A day range like "3-5" is kept verbatim.
			return fmt.Sprintf("%s %s %s", m[1], thaiMonths[month-1], m[3])
		}
	}

	return s
}

// parseThaiDateKey turns a (possibly normalized) Thai date into a sortable
// integer key. Unparseable dates report ok=false and sort first.
func parseThaiDateKey(s string) (int, bool) {
	s = normalizeThaiDate(s)
	m := wordDateRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	month := thaiMonthIndex(m[2])
	if month == 0 {
		return 0, false
	}
	dayToken := m[1]
	if i := strings.Index(dayToken, "-"); i >= 0 {
		dayToken = dayToken[:i]
	}
	day, _ := strconv.Atoi(dayToken)
	year, _ := strconv.Atoi(m[3])
	return year*10000 + month*100 + day, true
}

/*******************************
 ******* Identifiers ***********
 *******************************/

var sciNotationRegex = regexp.MustCompile(`^\d+(\.\d+)?[eE]\+?\d+$`)

// normalizeCID canonicalizes a 13-digit national identifier. Spreadsheet
// exports mangle these into scientific notation or float strings, so both
// forms are resolved back to plain digits.
func normalizeCID(cell any) string {
	if isMissing(cell) {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(cell))
	s = strings.NewReplacer("-", "", " ", "", "'", "", `"`, "").Replace(s)
	if sciNotationRegex.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			s = strconv.FormatFloat(f, 'f', 0, 64)
		}
	}
	s = strings.TrimSuffix(s, ".0")
	return s
}

// normalizeHN canonicalizes a hospital number for comparison. Integer-like
// forms ("00123", "123.0", 123) all collapse to "123".
func normalizeHN(cell any) string {
	if isMissing(cell) {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(cell))
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return s
}

// normalizeName collapses all internal whitespace for comparison purposes
// only; the display form keeps its spacing.
func normalizeName(cell any) string {
	if isMissing(cell) {
		return ""
	}
	var b strings.Builder
	for _, r := range fmt.Sprint(cell) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseSex reads the sex column, tolerating Thai and English forms.
func parseSex(cell any) Sex {
	if isMissing(cell) {
		return SexUnknown
	}
	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(cell))) {
	case "ชาย", "male", "m":
		return SexMale
	case "หญิง", "female", "f":
		return SexFemale
	}
	return SexUnknown
}
