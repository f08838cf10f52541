package main

/*
 * Blood chemistry: glucose, lipids, liver enzymes, kidney function, uric
 * acid. Per-test flags come from the catalogue; the domain conclusions
 * below apply the clinic's cut-points, which are deliberately not always
 * the same as the reference range (e.g. FBS 100/106/126 banding).
 */

func (rr *ReportRequest) evaluateChemistry() {
	cat := rr.Catalog

	fields := map[string]string{
		"fbs":  "FBS",
		"uric": "Uric Acid",
		"alp":  "ALP",
		"sgot": "SGOT",
		"sgpt": "SGPT",
		"chol": "CHOL",
		"tgl":  "TGL",
		"hdl":  "HDL",
		"ldl":  "LDL",
		"bun":  "BUN",
		"cr":   "Cr",
	}
	results := map[string]TestResult{}
	for id, field := range fields {
		results[id] = numericResult(rr.Record[field], cat.Chemistry[id])
	}

	// GFR of exactly zero marks an unperformed panel, not renal failure.
	gfrRaw := rr.Record["GFR"]
	gfr := numericResult(gfrRaw, cat.Chemistry["gfr"])
	if gfr.Value != nil && *gfr.Value == 0 {
		gfr = TestResult{Raw: gfrRaw, Severity: SeverityNotTested, Display: "-"}
	}
	results["gfr"] = gfr

	rr.glycemicDomain(results)
	rr.lipidDomain(results)
	rr.liverDomain(results)
	rr.kidneyDomain(results)
	rr.uricDomain(results)
}

func (rr *ReportRequest) glycemicDomain(results map[string]TestResult) {
	fbs := results["fbs"]

	summary := "fasting blood sugar not tested"
	abnormal := false
	if fbs.Value != nil {
		v := *fbs.Value
		switch {
		case v >= 126:
			fbs.Label = "diabetic range"
			summary = "fasting blood sugar in the diabetic range (" + fbs.Display + " mg/dL)"
			abnormal = true
			rr.addAdvice(BucketHigh, "Fasting blood sugar is in the diabetic range; see a physician for confirmation and treatment.")
		case v >= 106:
			fbs.Label = "pre-diabetic range"
			summary = "fasting blood sugar in the pre-diabetic range (" + fbs.Display + " mg/dL)"
			abnormal = true
			rr.addAdvice(BucketMedium, "Fasting blood sugar is in the pre-diabetic range; reduce sweets and starches and recheck in 6 months.")
		case v >= 100:
			fbs.Label = "mildly elevated"
			summary = "fasting blood sugar mildly elevated (" + fbs.Display + " mg/dL)"
			abnormal = true
			rr.addAdvice(BucketMedium, "Fasting blood sugar is mildly elevated; reduce sweets and starches and recheck at the next annual visit.")
		case fbs.Severity == SeverityLow:
			summary = "fasting blood sugar below range (" + fbs.Display + " mg/dL)"
			abnormal = true
			rr.addAdvice(BucketMedium, "Fasting blood sugar is below range; avoid prolonged fasting and recheck at the next visit.")
		default:
			summary = "fasting blood sugar normal"
		}
	}
	rr.addTest("fbs", fbs)
	rr.setDomain("fbs", summary, abnormal, "fbs")
}

func (rr *ReportRequest) lipidDomain(results map[string]TestResult) {
	chol, tgl, hdl, ldl := results["chol"], results["tgl"], results["hdl"], results["ldl"]
	rr.addTest("chol", chol)
	rr.addTest("tgl", tgl)
	rr.addTest("hdl", hdl)
	rr.addTest("ldl", ldl)

	over := func(r TestResult, cut float64) bool { return r.Value != nil && *r.Value >= cut }
	above := func(r TestResult, cut float64) bool { return r.Value != nil && *r.Value > cut }

	switch {
	case over(chol, 250) || over(tgl, 250) || over(ldl, 180):
		rr.setDomain("lipid", "blood lipids high", true, "chol", "tgl", "hdl", "ldl")
		rr.addAdvice(BucketHigh, "Blood lipids are high; restrict fatty and fried food and see a physician about lipid-lowering treatment.")
	case above(chol, 200) || above(tgl, 150) || above(ldl, 160):
		rr.setDomain("lipid", "blood lipids mildly high", true, "chol", "tgl", "hdl", "ldl")
		rr.addAdvice(BucketMedium, "Blood lipids are mildly high; limit fatty food, exercise regularly, and recheck at the next annual visit.")
	default:
		summary := "blood lipids within normal limits"
		abnormal := false
		if hdl.Severity == SeverityLow {
			summary = "HDL cholesterol below range"
			abnormal = true
			rr.addAdvice(BucketMedium, "HDL cholesterol is low; regular aerobic exercise helps raise it.")
		} else if chol.Severity == SeverityNotTested && tgl.Severity == SeverityNotTested && ldl.Severity == SeverityNotTested {
			summary = "blood lipids not tested"
		}
		rr.setDomain("lipid", summary, abnormal, "chol", "tgl", "hdl", "ldl")
	}
}

func (rr *ReportRequest) liverDomain(results map[string]TestResult) {
	alp, sgot, sgpt := results["alp"], results["sgot"], results["sgpt"]
	rr.addTest("alp", alp)
	rr.addTest("sgot", sgot)
	rr.addTest("sgpt", sgpt)

	above := func(r TestResult, cut float64) bool { return r.Value != nil && *r.Value > cut }

	if above(alp, 120) || above(sgot, 36) || above(sgpt, 40) {
		rr.setDomain("liver", "liver enzymes slightly elevated", true, "alp", "sgot", "sgpt")
		rr.addAdvice(BucketMedium, "Liver enzymes are slightly elevated; avoid alcohol and unnecessary medication and recheck in 3-6 months.")
		return
	}
	summary := "liver function within normal limits"
	if alp.Severity == SeverityNotTested && sgot.Severity == SeverityNotTested && sgpt.Severity == SeverityNotTested {
		summary = "liver function not tested"
	}
	rr.setDomain("liver", summary, false, "alp", "sgot", "sgpt")
}

func (rr *ReportRequest) kidneyDomain(results map[string]TestResult) {
	bun, cr, gfr := results["bun"], results["cr"], results["gfr"]
	rr.addTest("bun", bun)
	rr.addTest("cr", cr)
	rr.addTest("gfr", gfr)

	switch {
	case gfr.Severity == SeverityLow:
		rr.setDomain("kidney", "kidney filtration rate slightly below normal (GFR "+gfr.Display+")", true, "bun", "cr", "gfr")
		rr.addAdvice(BucketMedium, "Kidney filtration rate is slightly below normal; drink adequate water, avoid NSAID painkillers, and recheck kidney function in 6 months.")
	case gfr.Severity == SeverityNotTested && bun.Severity == SeverityNotTested && cr.Severity == SeverityNotTested:
		rr.setDomain("kidney", "kidney function not tested", false, "bun", "cr", "gfr")
	case bun.Flagged || cr.Flagged:
		rr.setDomain("kidney", "BUN or creatinine outside the reference range", true, "bun", "cr", "gfr")
		rr.addAdvice(BucketMedium, "Kidney markers are outside the reference range; recheck kidney function at the next visit.")
	default:
		rr.setDomain("kidney", "kidney function within normal limits", false, "bun", "cr", "gfr")
	}
}

func (rr *ReportRequest) uricDomain(results map[string]TestResult) {
	uric := results["uric"]
	rr.addTest("uric", uric)

	if uric.Value != nil && *uric.Value > 7.2 {
		rr.setDomain("uric", "uric acid above range ("+uric.Display+" mg/dL)", true, "uric")
		rr.addAdvice(BucketMedium, "Uric acid is high; limit organ meat, seafood, and alcohol to reduce the risk of gout.")
		return
	}
	summary := "uric acid within normal limits"
	if uric.Severity == SeverityNotTested {
		summary = "uric acid not tested"
	} else if uric.Severity == SeverityLow {
		summary = "uric acid below range"
	}
	rr.setDomain("uric", summary, uric.Severity == SeverityLow, "uric")
}
