package main

import (
	"sort"
	"strconv"
	"strings"
)

/*
 * Urinalysis and stool examination.
 *
 * Qualitative rules:
 *   sugar    abnormal unless "negative"
 *   albumin  abnormal unless "negative" or "trace"
 *   colour   normal only within the catalogue's colour list
 *   RBC/WBC  numeric or "a-b" ranges; upper bound decides the band
 */

// parseCellUpper reads a microscopy cell that may be "2", "0-1", or "3-5"
// and returns the upper bound of the range.
func parseCellUpper(cell any) *float64 {
	if isMissing(cell) {
		return nil
	}
	s := strings.TrimSpace(toDisplay(cell))
	if i := strings.Index(s, "-"); i > 0 {
		s = s[i+1:]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// microscopyResult bands a sediment count: normal up to normalCut, mild up
// to mildCut, abnormal above.
func microscopyResult(raw any, normalCut, mildCut float64) TestResult {
	upper := parseCellUpper(raw)
	if upper == nil {
		return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
	}
	result := TestResult{Raw: raw, Value: upper, Display: toDisplay(raw)}
	switch {
	case *upper <= normalCut:
		result.Severity = SeverityNormal
		result.Label = "normal"
	case *upper <= mildCut:
		result.Severity = SeverityAbnormal
		result.Label = "mildly elevated"
		result.Flagged = true
	default:
		result.Severity = SeverityAbnormal
		result.Label = "elevated"
		result.Flagged = true
	}
	return result
}

// qualitativeResult classifies a dipstick cell against its accepted values.
func qualitativeResult(raw any, acceptable ...string) TestResult {
	if isMissing(raw) {
		return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
	}
	display := toDisplay(raw)
	lowered := strings.ToLower(display)
	for _, ok := range acceptable {
		if lowered == ok {
			return TestResult{Raw: raw, Severity: SeverityNormal, Label: "normal", Display: display}
		}
	}
	return TestResult{Raw: raw, Severity: SeverityAbnormal, Label: "abnormal", Display: display, Flagged: true}
}

func (rr *ReportRequest) evaluateUrinalysis() {
	cat := rr.Catalog

	ph := numericResult(rr.Record["pH"], cat.UrinePH)
	spgr := numericResult(rr.Record["Spgr"], cat.UrineSG)
	sugar := qualitativeResult(rr.Record["sugar"], "negative")
	alb := qualitativeResult(rr.Record["Alb"], "negative", "trace")
	color := qualitativeResult(rr.Record["Color"], cat.UrineColors...)
	urbc := microscopyResult(rr.Record["RBC1"], 2, 5)
	uwbc := microscopyResult(rr.Record["WBC1"], 5, 10)

	rr.addTest("ph", ph)
	rr.addTest("spgr", spgr)
	rr.addTest("sugar", sugar)
	rr.addTest("alb", alb)
	rr.addTest("color", color)
	rr.addTest("urine_rbc", urbc)
	rr.addTest("urine_wbc", uwbc)

	// Epithelial cells and other sediment notes are operator prose; they
	// pass through without classification.
	for id, field := range map[string]string{"sq_epi": "SQ-epi", "other": "ORTER"} {
		raw := rr.Record[field]
		if isMissing(raw) {
			rr.addTest(id, TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"})
		} else {
			rr.addTest(id, TestResult{Raw: raw, Severity: SeverityNormal, Label: "reported", Display: toDisplay(raw)})
		}
	}

	markers := map[string]TestResult{
		"pH":               ph,
		"specific gravity": spgr,
		"sugar":            sugar,
		"albumin":          alb,
		"colour":           color,
		"red cells":        urbc,
		"white cells":      uwbc,
	}
	var abnormal []string
	for name, result := range markers {
		if result.Flagged {
			abnormal = append(abnormal, name)
			rr.addAdvice(BucketMedium, "Urinalysis abnormality ("+name+"); drink adequate water and repeat the urine examination at the next visit.")
		}
	}

	contributing := []string{"ph", "spgr", "sugar", "alb", "color", "urine_rbc", "urine_wbc"}
	switch {
	case len(abnormal) > 0:
		rr.setDomain("urine", "urinalysis abnormal: "+strings.Join(sortedCopy(abnormal), ", "), true, contributing...)
	case ph.Severity == SeverityNotTested && sugar.Severity == SeverityNotTested && alb.Severity == SeverityNotTested:
		rr.setDomain("urine", "urinalysis not tested", false, contributing...)
	default:
		rr.setDomain("urine", "urinalysis within normal limits", false, contributing...)
	}
}

var stoolNormalKeywords = []string{"normal", "ปกติ", "ไม่พบ", "no growth", "negative", "not found"}

func (rr *ReportRequest) evaluateStool() {
	exam := rr.Record["Stool exam"]
	culture := rr.Record["Stool C/S"]

	classify := func(raw any) TestResult {
		if isMissing(raw) {
			return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
		}
		display := toDisplay(raw)
		if containsKeyword(display, stoolNormalKeywords) {
			return TestResult{Raw: raw, Severity: SeverityNormal, Label: "normal", Display: display}
		}
		return TestResult{Raw: raw, Severity: SeverityAbnormal, Label: "abnormal", Display: display, Flagged: true}
	}

	examResult := classify(exam)
	cultureResult := classify(culture)
	rr.addTest("stool_exam", examResult)
	rr.addTest("stool_cs", cultureResult)

	switch {
	case examResult.Flagged || cultureResult.Flagged:
		rr.setDomain("stool", "stool examination abnormal", true, "stool_exam", "stool_cs")
		rr.addAdvice(BucketMedium, "Stool examination shows an abnormality; see a physician for treatment and repeat the examination.")
	case examResult.Severity == SeverityNotTested && cultureResult.Severity == SeverityNotTested:
		rr.setDomain("stool", "stool examination not tested", false, "stool_exam", "stool_cs")
	default:
		rr.setDomain("stool", "stool examination within normal limits", false, "stool_exam", "stool_cs")
	}
}

// sortedCopy returns a sorted copy so summary text is order-stable.
func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
