package main

import "strings"

/*
 * Complete blood count.
 *
 * Hb/HCT lower limits are sex-conditioned (13/39 male, 12/36 female).
 * When sex is unknown the male set applies and the display is annotated;
 * the engine never blocks on an ambiguous sex.
 */

type cbcFindings struct {
	Anemia           bool
	Leukopenia       bool
	Leukocytosis     bool
	Thrombocytopenia bool
	Thrombocytosis   bool
	Differential     bool
}

func (rr *ReportRequest) evaluateCBC() {
	cat := rr.Catalog
	findings := cbcFindings{}

	// Hemoglobin and hematocrit against the sex-conditioned limits.
	hb := numericResult(rr.Record["Hb(%)"], cat.hbRange(rr.Sex))
	hct := numericResult(rr.Record["HCT"], cat.hctRange(rr.Sex))
	if rr.Sex == SexUnknown {
		if hb.Severity != SeverityNotTested {
			hb.Display += " (sex unknown, male limits applied)"
		}
		if hct.Severity != SeverityNotTested {
			hct.Display += " (sex unknown, male limits applied)"
		}
	}
	rr.addTest("hb", hb)
	rr.addTest("hct", hct)
	findings.Anemia = hb.Severity == SeverityLow || hct.Severity == SeverityLow

	wbc := numericResult(rr.Record["WBC (cumm)"], cat.CBC["wbc"])
	rr.addTest("wbc", wbc)
	findings.Leukopenia = wbc.Severity == SeverityLow
	findings.Leukocytosis = wbc.Severity == SeverityHigh

	plt := numericResult(rr.Record["Plt (/mm)"], cat.CBC["plt"])
	rr.addTest("plt", plt)
	findings.Thrombocytopenia = plt.Severity == SeverityLow
	findings.Thrombocytosis = plt.Severity == SeverityHigh

	// White cell differential.
	differential := map[string]string{
		"neut":  "Ne (%)",
		"lymph": "Ly (%)",
		"mono":  "M",
		"eos":   "Eo",
		"baso":  "BA",
	}
	for id, field := range differential {
		result := numericResult(rr.Record[field], cat.CBC[id])
		rr.addTest(id, result)
		if result.Flagged {
			findings.Differential = true
		}
	}

	// Domain summary and advice.
	var parts []string
	if findings.Anemia {
		noun := "the normal range"
		switch rr.Sex {
		case SexMale:
			noun = "the normal range for men"
		case SexFemale:
			noun = "the normal range for women"
		}
		parts = append(parts, "hemoglobin/hematocrit below "+noun)
		rr.addAdvice(BucketMedium, "Blood count suggests anemia; eat iron-rich food and repeat the blood count in 3 months.")
	}
	if findings.Leukopenia {
		parts = append(parts, "white cell count below range")
		rr.addAdvice(BucketMedium, "White blood cell count is low; repeat the complete blood count at the next visit.")
	}
	if findings.Leukocytosis {
		parts = append(parts, "white cell count above range")
		rr.addAdvice(BucketHigh, "White blood cell count is high; see a physician to rule out infection or blood disorder.")
	}
	if findings.Thrombocytopenia {
		parts = append(parts, "platelet count below range")
		rr.addAdvice(BucketHigh, "Platelet count is low; see a physician for further evaluation.")
	}
	if findings.Thrombocytosis {
		parts = append(parts, "platelet count above range")
		rr.addAdvice(BucketMedium, "Platelet count is high; repeat the complete blood count at the next visit.")
	}
	if findings.Differential {
		parts = append(parts, "white cell differential outside range")
		rr.addAdvice(BucketMedium, "White cell differential is outside the reference range; repeat the blood count at the next visit.")
	}

	contributing := []string{"hb", "hct", "wbc", "plt", "neut", "lymph", "mono", "eos", "baso"}
	if len(parts) == 0 {
		summary := "complete blood count within normal limits"
		if hb.Severity == SeverityNotTested && wbc.Severity == SeverityNotTested && plt.Severity == SeverityNotTested {
			summary = "complete blood count not tested"
		}
		rr.setDomain("cbc", summary, false, contributing...)
		return
	}
	rr.setDomain("cbc", strings.Join(parts, "; "), true, contributing...)
}
