package main

/*
 * Vital signs and body habitus.
 *
 * Blood pressure bands (SBP/DBP, mmHg):
 *   normal            < 120 and < 80
 *   slightly elevated 120-139 or 80-89
 *   high              >= 140 or >= 90
 *   very high         >= 160 or >= 100
 *
 * BMI bands (kg/m^2): < 18.5 underweight, 18.5-22.9 normal,
 * 23-24.9 overweight, 25-29.9 obese, >= 30 severely obese.
 */

func (rr *ReportRequest) evaluateVitals() {
	sbp := toOptionalFloat(rr.Record["SBP"])
	dbp := toOptionalFloat(rr.Record["DBP"])

	rr.addTest("pulse", numericResult(rr.Record["pulse"], NumericRange{}))

	// Blood pressure needs both readings.
	if sbp == nil || dbp == nil {
		rr.addTest("sbp", numericResult(rr.Record["SBP"], NumericRange{}))
		rr.addTest("dbp", numericResult(rr.Record["DBP"], NumericRange{}))
		rr.setDomain("bp", "blood pressure not tested", false, "sbp", "dbp")
	} else {
		var label string
		var severity Severity
		switch {
		case *sbp >= 160 || *dbp >= 100:
			label, severity = "very high blood pressure", SeverityHigh
			rr.addAdvice(BucketHigh, "Blood pressure is very high; see a physician for evaluation and follow-up.")
		case *sbp >= 140 || *dbp >= 90:
			label, severity = "high blood pressure", SeverityHigh
			rr.addAdvice(BucketHigh, "Blood pressure is high; limit salt, exercise regularly, and re-check within 1-2 weeks.")
		case *sbp >= 120 || *dbp >= 80:
			label, severity = "slightly elevated blood pressure", SeverityHigh
			rr.addAdvice(BucketMedium, "Blood pressure is slightly elevated; reduce salty food and monitor at home.")
		default:
			label, severity = "normal blood pressure", SeverityNormal
		}

		rr.addTest("sbp", TestResult{
			Raw: rr.Record["SBP"], Value: sbp, Label: label,
			Severity: severity, Display: formatNumber(*sbp), Flagged: severity.Flagged(),
		})
		rr.addTest("dbp", TestResult{
			Raw: rr.Record["DBP"], Value: dbp, Label: label,
			Severity: severity, Display: formatNumber(*dbp), Flagged: severity.Flagged(),
		})
		rr.setDomain("bp",
			label+" ("+formatNumber(*sbp)+"/"+formatNumber(*dbp)+" mmHg)",
			severity.Flagged(), "sbp", "dbp")
	}

	// BMI is derived, not read from a column.
	weight := toOptionalFloat(rr.Record["น้ำหนัก"])
	height := toOptionalFloat(rr.Record["ส่วนสูง"])
	if weight == nil || height == nil || *height <= 0 {
		rr.addTest("bmi", TestResult{Severity: SeverityNotTested, Display: "-"})
		rr.setDomain("bmi", "body mass index not tested", false, "bmi")
		return
	}

	meters := *height / 100
	bmi := *weight / (meters * meters)

	var label string
	severity := SeverityNormal
	switch {
	case bmi < 18.5:
		label, severity = "underweight", SeverityLow
		rr.addAdvice(BucketLow, "Body weight is below the healthy range; eat nutrient-dense meals and recheck next visit.")
	case bmi < 23:
		label = "normal weight"
	case bmi < 25:
		label, severity = "overweight", SeverityHigh
		rr.addAdvice(BucketLow, "Body weight is slightly above the healthy range; increase activity and watch portion sizes.")
	case bmi < 30:
		label, severity = "obese", SeverityHigh
		rr.addAdvice(BucketMedium, "Body mass index is in the obese range; control diet and exercise at least 150 minutes per week.")
	default:
		label, severity = "severely obese", SeverityHigh
		rr.addAdvice(BucketMedium, "Body mass index is in the severely obese range; consult a physician about a weight-reduction plan.")
	}

	rr.addTest("bmi", TestResult{
		Value:    &bmi,
		Label:    label,
		Severity: severity,
		Display:  formatNumber(bmi),
		Flagged:  severity.Flagged(),
	})
	rr.setDomain("bmi", "body mass index "+formatNumber(bmi)+" ("+label+")", severity.Flagged(), "bmi")
}
