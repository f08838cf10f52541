package main

import "strings"

/*
 * Recommendation composition. Stateless: advice entries are deduplicated
 * into per-priority sets and the doctor-opinion paragraph walks the
 * domains in a fixed clinical order. Running the compositor on its own
 * output changes nothing.
 */

// opinionOrder is the fixed presentation order for the opinion paragraph.
var opinionOrder = []string{
	"bp", "bmi", "fbs", "lipid", "liver", "kidney", "uric", "cbc",
	"urine", "hepatitis", "vision", "hearing", "lung", "cxr", "ekg",
}

const allNormalOpinion = "Overall results within normal limits; continue annual checkups."

// The operator-written physician note is passed through verbatim, never
// parsed.
const doctorNoteField = "ข้อแนะนำของแพทย์"

// composePlan deduplicates advice entries into priority buckets.
func composePlan(entries []AdviceEntry) Plan {
	plan := newPlan()
	for _, entry := range entries {
		switch entry.Bucket {
		case BucketHigh:
			plan.High.Add(entry.Text)
		case BucketMedium:
			plan.Medium.Add(entry.Text)
		case BucketLow:
			plan.Low.Add(entry.Text)
		}
	}
	return plan
}

// domainNoteworthy reports whether a domain belongs in the opinion
// paragraph: either its conclusion is abnormal or one of its contributing
// tests carries a flag.
func (rr *ReportRequest) domainNoteworthy(id string) bool {
	domain, ok := rr.Result.Domains[id]
	if !ok {
		return false
	}
	if domain.Abnormal {
		return true
	}
	for _, testID := range domain.Contributing {
		if result, ok := rr.Result.PerTest[testID]; ok && result.Flagged {
			return true
		}
	}
	return false
}

func (rr *ReportRequest) compose() {
	rr.Result.Recommendations = composePlan(rr.advice)

	var sentences []string
	for _, id := range opinionOrder {
		if rr.domainNoteworthy(id) {
			sentences = append(sentences, rr.Result.Domains[id].Summary)
		}
	}

	opinion := allNormalOpinion
	if len(sentences) > 0 {
		opinion = strings.Join(sentences, "; ") + "."
	}

	// The physician's own note closes the paragraph when one was written.
	if note := rr.Record[doctorNoteField]; !isMissing(note) {
		opinion += " " + toDisplay(note)
	}

	rr.Result.DoctorOpinion = opinion
}
