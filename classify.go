package main

import (
	"math"
	"strconv"
	"strings"
)

/*
 * Core classification policy shared by every numeric panel:
 *   - Missing value               -> not tested, display "-"
 *   - higher-is-better            -> flagged (low) iff value < low
 *   - otherwise                   -> flagged iff value < low or value > high,
 *                                    whichever bounds are set
 * Classifiers never raise; a malformed cell is simply not tested.
 */

// NumericRange is one row of the reference catalogue.
type NumericRange struct {
	Low            *float64
	High           *float64
	HigherIsBetter bool
}

func fp(v float64) *float64 { return &v }

// flagValue applies the core policy to an optional value.
func flagValue(v *float64, r NumericRange) Severity {
	if v == nil {
		return SeverityNotTested
	}
	if r.HigherIsBetter {
		if r.Low != nil && *v < *r.Low {
			return SeverityLow
		}
		return SeverityNormal
	}
	if r.Low != nil && *v < *r.Low {
		return SeverityLow
	}
	if r.High != nil && *v > *r.High {
		return SeverityHigh
	}
	return SeverityNormal
}

// numericResult builds the standard TestResult for a numeric test.
func numericResult(raw any, r NumericRange) TestResult {
	v := toOptionalFloat(raw)
	severity := flagValue(v, r)
	display := "-"
	if v != nil {
		display = formatNumber(*v)
	}
	return TestResult{
		Raw:      raw,
		Value:    v,
		Severity: severity,
		Display:  display,
		Flagged:  severity.Flagged(),
	}
}

// formatNumber renders integers without decimals and everything else to one
// decimal place, with grouping separators from 10,000 up.
func formatNumber(v float64) string {
	var s string
	if v == math.Trunc(v) {
		s = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 1, 64)
	}
	if math.Abs(v) < 10000 {
		return s
	}
	intPart := s
	fracPart := ""
	if i := strings.Index(s, "."); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return sign + strings.Join(groups, ",") + fracPart
}

// containsKeyword reports whether any curated keyword occurs in the text,
// case-insensitively.
func containsKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
