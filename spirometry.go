package main

import "fmt"

/*
 * Spirometry, on percent-predicted values and the measured FEV1/FVC ratio:
 *
 *   ratio < 70, FVC% >= 80   obstructive; severity from FEV1%
 *   ratio >= 70, FVC% < 80   restrictive; severity from FVC%
 *   ratio >= 70, FVC% >= 80  normal
 *   otherwise                inconclusive, clinician review
 *
 * Severity bands: >= 66 mild, 50-65 moderate, < 50 severe.
 */

func spirometrySeverity(pct float64) string {
	switch {
	case pct >= 66:
		return "mild"
	case pct >= 50:
		return "moderate"
	default:
		return "severe"
	}
}

func (rr *ReportRequest) evaluateSpirometry() {
	fields := map[string]string{
		"fvc":        "FVC",
		"fvc_pred":   "FVC predic",
		"fvc_pct":    "FVC เปอร์เซ็นต์",
		"fev1":       "FEV1",
		"fev1_pred":  "FEV1 predic",
		"fev1_pct":   "FEV1เปอร์เซ็นต์",
		"ratio":      "FEV1/FVC%",
		"ratio_pred": "FEV1/FVC % pre",
	}
	for id, field := range fields {
		rr.addTest(id, numericResult(rr.Record[field], NumericRange{}))
	}

	ratio := toOptionalFloat(rr.Record["FEV1/FVC%"])
	fvcPct := toOptionalFloat(rr.Record["FVC เปอร์เซ็นต์"])
	fev1Pct := toOptionalFloat(rr.Record["FEV1เปอร์เซ็นต์"])

	if ratio == nil || fvcPct == nil {
		rr.setDomain("lung", "spirometry not tested", false, "fvc_pct", "fev1_pct", "ratio")
		return
	}

	switch {
	case *ratio < 70 && *fvcPct >= 80:
		severity := "mild"
		if fev1Pct != nil {
			severity = spirometrySeverity(*fev1Pct)
		}
		rr.setDomain("lung", fmt.Sprintf("%s obstructive lung pattern", severity), true, "fvc_pct", "fev1_pct", "ratio")
		rr.addSpirometryAdvice(severity, "obstructive")
	case *ratio >= 70 && *fvcPct < 80:
		severity := spirometrySeverity(*fvcPct)
		rr.setDomain("lung", fmt.Sprintf("%s restrictive lung pattern", severity), true, "fvc_pct", "fev1_pct", "ratio")
		rr.addSpirometryAdvice(severity, "restrictive")
	case *ratio >= 70 && *fvcPct >= 80:
		rr.setDomain("lung", "spirometry within normal limits", false, "fvc_pct", "fev1_pct", "ratio")
	default:
		rr.setDomain("lung", "spirometry inconclusive, clinician review advised", true, "fvc_pct", "fev1_pct", "ratio")
		rr.addAdvice(BucketMedium, "Spirometry result is inconclusive; repeat the test with a clinician's review.")
	}
}

func (rr *ReportRequest) addSpirometryAdvice(severity, pattern string) {
	bucket := BucketMedium
	if severity == "moderate" || severity == "severe" {
		bucket = BucketHigh
	}
	rr.addAdvice(bucket, fmt.Sprintf("Spirometry shows a %s %s pattern; avoid dust and smoke exposure and see a physician for lung follow-up.", severity, pattern))
}
