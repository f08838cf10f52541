package main

import "strings"

/*
 * Occupational vision battery: thirteen named tests, each classified by
 * keyword match against the curated normal/abnormal lists. The three
 * phoria tests share a free-text latent-strabismus column; the axis
 * keyword decides which test the prose refers to. When a phoria test has
 * its own column filled in, that column wins over the shared prose.
 */

type visionTest struct {
	ID    string
	Field string
	// Phoria tests fall back to the shared strabismus prose; their axis
	// keywords live in the config file, keyed by test ID.
	Phoria bool
}

var visionBattery = []visionTest{
	{ID: "vision_binocular", Field: "การมองด้วย 2 ตา"},
	{ID: "vision_far_right", Field: "สายตาด้านขวา ระยะไกล"},
	{ID: "vision_far_left", Field: "สายตาด้านซ้าย ระยะไกล"},
	{ID: "vision_far_both", Field: "การมองภาพระยะไกล 2 ตา"},
	{ID: "vision_stereo", Field: "การมองภาพ 3 มิติ"},
	{ID: "vision_color", Field: "การจำแนกสี"},
	{ID: "vision_phoria_vertical_far", Field: "ความสมดุลกล้ามเนื้อสายตา แนวตั้ง ระยะไกล", Phoria: true},
	{ID: "vision_phoria_lateral_far", Field: "ความสมดุลกล้ามเนื้อสายตา แนวนอน ระยะไกล", Phoria: true},
	{ID: "vision_near_right", Field: "สายตาด้านขวา ระยะใกล้"},
	{ID: "vision_near_left", Field: "สายตาด้านซ้าย ระยะใกล้"},
	{ID: "vision_near_both", Field: "การมองภาพระยะใกล้ 2 ตา"},
	{ID: "vision_phoria_lateral_near", Field: "ความสมดุลกล้ามเนื้อสายตา แนวนอน ระยะใกล้", Phoria: true},
	{ID: "vision_field", Field: "ลานสายตา"},
}

// The shared free-text column the phoria tests fall back to.
const strabismusField = "สายตาเขซ่อนเร้น"

func (rr *ReportRequest) classifyVisionCell(raw any) TestResult {
	if isMissing(raw) {
		return TestResult{Raw: raw, Severity: SeverityNotTested, Display: "-"}
	}
	display := toDisplay(raw)
	// Abnormal keywords win: "ไม่ผ่านเกณฑ์" embeds the passing phrase.
	if containsKeyword(display, rr.Config.VisionAbnormal) {
		return TestResult{Raw: raw, Severity: SeverityAbnormal, Label: "abnormal", Display: display, Flagged: true}
	}
	if containsKeyword(display, rr.Config.VisionNormal) {
		return TestResult{Raw: raw, Severity: SeverityNormal, Label: "normal", Display: display}
	}
	// Unrecognized prose is not classifiable.
	return TestResult{Raw: raw, Severity: SeverityNotTested, Display: display}
}

func (rr *ReportRequest) evaluateVision() {
	strabismus := rr.Record[strabismusField]

	var abnormalTests []string
	contributing := make([]string, 0, len(visionBattery))
	tested := false

	for _, test := range visionBattery {
		contributing = append(contributing, test.ID)
		raw := rr.Record[test.Field]
		result := rr.classifyVisionCell(raw)

		// Phoria fallback: the shared strabismus prose decides only when
		// the per-test column is empty.
		axis := rr.Config.PhoriaAxis[test.ID]
		if result.Severity == SeverityNotTested && test.Phoria && axis != "" && !isMissing(strabismus) {
			text := toDisplay(strabismus)
			if strings.Contains(normalizeName(text), normalizeName(axis)) {
				result = TestResult{Raw: strabismus, Severity: SeverityAbnormal, Label: "latent strabismus", Display: text, Flagged: true}
			} else {
				result = TestResult{Raw: strabismus, Severity: SeverityNormal, Label: "normal", Display: text}
			}
		}

		rr.addTest(test.ID, result)
		if result.Severity != SeverityNotTested {
			tested = true
		}
		if result.Flagged {
			abnormalTests = append(abnormalTests, test.Field)
		}
	}

	switch {
	case len(abnormalTests) > 0:
		rr.setDomain("vision", "vision screening abnormal: "+strings.Join(abnormalTests, ", "), true, contributing...)
		rr.addAdvice(BucketMedium, "Vision screening shows an abnormality; consult an eye specialist and use corrective lenses as advised.")
	case !tested:
		rr.setDomain("vision", "vision screening not tested", false, contributing...)
	default:
		rr.setDomain("vision", "vision screening within normal limits", false, contributing...)
	}
}
