package main

import "strings"

/*
 * Hepatitis B serology.
 *
 *   HBsAg     HBsAb     HBcAb     conclusion
 *   positive  *         *         active infection
 *   negative  positive  *         immune
 *   negative  negative  positive  past exposure, not currently immune
 *   negative  negative  negative  no immunity, vaccination advised
 *   anything else                 inconclusive, clinician review
 *
 * The serology columns are a year-suffixed family (HbsAg, HbsAg66, ...).
 */

type serology string

const (
	serologyPositive serology = "positive"
	serologyNegative serology = "negative"
	serologyMissing  serology = "missing"
	serologyOther    serology = "other"
)

// parseSerology normalizes a serology cell to positive/negative.
func parseSerology(cell any) serology {
	if isMissing(cell) {
		return serologyMissing
	}
	switch strings.ToLower(strings.TrimSpace(toDisplay(cell))) {
	case "positive", "pos", "+", "reactive":
		return serologyPositive
	case "negative", "neg", "non-reactive", "nonreactive", "non reactive":
		return serologyNegative
	}
	return serologyOther
}

func serologyResult(raw any, s serology) TestResult {
	if s == serologyMissing {
		return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
	}
	result := TestResult{Raw: raw, Label: string(s), Display: toDisplay(raw)}
	if s == serologyOther {
		result.Severity = SeverityAbnormal
		result.Label = "unreadable result"
		result.Flagged = true
		return result
	}
	result.Severity = SeverityNormal
	return result
}

func (rr *ReportRequest) evaluateHepatitis() {
	agRaw := resolveCell(rr.Record, "HbsAg")
	abRaw := resolveCell(rr.Record, "HbsAb")
	coreRaw := resolveCell(rr.Record, "HBcAB")

	ag := parseSerology(agRaw)
	ab := parseSerology(abRaw)
	core := parseSerology(coreRaw)

	agResult := serologyResult(agRaw, ag)
	if ag == serologyPositive {
		// A positive surface antigen is a finding in its own right.
		agResult.Severity = SeverityAbnormal
		agResult.Flagged = true
	}
	rr.addTest("hbsag", agResult)
	rr.addTest("hbsab", serologyResult(abRaw, ab))
	rr.addTest("hbcab", serologyResult(coreRaw, core))

	// The test-year column is operator bookkeeping; pass it through.
	if hepYear := rr.Record["ปีตรวจHEP"]; !isMissing(hepYear) {
		rr.addTest("hep_year", TestResult{Raw: hepYear, Severity: SeverityNormal, Label: "reported", Display: toDisplay(hepYear)})
	}

	contributing := []string{"hbsag", "hbsab", "hbcab"}
	switch {
	case ag == serologyMissing && ab == serologyMissing && core == serologyMissing:
		rr.setDomain("hepatitis", "hepatitis B serology not tested", false, contributing...)
	case ag == serologyPositive:
		rr.setDomain("hepatitis", "hepatitis B surface antigen positive: active infection", true, contributing...)
		rr.addAdvice(BucketHigh, "Hepatitis B surface antigen is positive; consult a liver specialist for evaluation and follow-up.")
	case ag == serologyNegative && ab == serologyPositive:
		rr.setDomain("hepatitis", "immune to hepatitis B", false, contributing...)
	case ag == serologyNegative && ab == serologyNegative && core == serologyPositive:
		rr.setDomain("hepatitis", "past hepatitis B exposure, not currently immune", true, contributing...)
	case ag == serologyNegative && ab == serologyNegative && core == serologyNegative:
		rr.setDomain("hepatitis", "no hepatitis B immunity", true, contributing...)
		rr.addAdvice(BucketMedium, "No hepatitis B immunity detected; receive hepatitis B vaccination.")
	default:
		rr.setDomain("hepatitis", "hepatitis B serology inconclusive, clinician review advised", true, contributing...)
	}
}
