package main

/*
 * Chest film and EKG are free-text impressions. Classification is a
 * case-insensitive keyword match against the curated list in the config
 * file; the lists are data so clinical staff can extend them without a
 * release.
 */

// findingResult classifies a free-text impression cell.
func findingResult(raw any, keywords []string) TestResult {
	if isMissing(raw) {
		return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
	}
	display := toDisplay(raw)
	if containsKeyword(display, keywords) {
		return TestResult{Raw: raw, Severity: SeverityAbnormal, Label: "abnormal", Display: display, Flagged: true}
	}
	return TestResult{Raw: raw, Severity: SeverityNormal, Label: "normal", Display: display}
}

func (rr *ReportRequest) evaluateXray() {
	raw := resolveCell(rr.Record, "CXR")
	result := findingResult(raw, rr.Config.FindingKeywords)
	rr.addTest("cxr", result)

	switch result.Severity {
	case SeverityNotTested:
		rr.setDomain("cxr", "chest x-ray not tested", false, "cxr")
	case SeverityAbnormal:
		rr.setDomain("cxr", "chest x-ray with findings: "+result.Display, true, "cxr")
		rr.addAdvice(BucketMedium, "Chest x-ray shows a finding; see a physician for review of the film.")
	default:
		rr.setDomain("cxr", "chest x-ray normal", false, "cxr")
	}
}

func (rr *ReportRequest) evaluateEKG() {
	raw := resolveCell(rr.Record, "EKG")
	result := findingResult(raw, rr.Config.FindingKeywords)
	rr.addTest("ekg", result)

	switch result.Severity {
	case SeverityNotTested:
		rr.setDomain("ekg", "EKG not tested", false, "ekg")
	case SeverityAbnormal:
		rr.setDomain("ekg", "EKG with findings: "+result.Display, true, "ekg")
		rr.addAdvice(BucketMedium, "EKG shows a finding; see a physician for review of the tracing.")
	default:
		rr.setDomain("ekg", "EKG normal", false, "ekg")
	}
}
