package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisionKeywordClassification(t *testing.T) {
	record := RawRecord{
		"การจำแนกสี":            "ปกติ",
		"การมองภาพ 3 มิติ":      "ต่ำกว่าเกณฑ์",
		"สายตาด้านขวา ระยะไกล":  "pending review",
	}
	result := testInterpret(t, record, nil)

	assert.Equal(t, SeverityNormal, result.PerTest["vision_color"].Severity)
	assert.True(t, result.PerTest["vision_stereo"].Flagged)
	// Unrecognized prose stays unclassified.
	assert.Equal(t, SeverityNotTested, result.PerTest["vision_far_right"].Severity)

	assert.True(t, result.Domains["vision"].Abnormal)
	assert.Contains(t, result.Domains["vision"].Summary, "การมองภาพ 3 มิติ")
	assert.Len(t, result.Recommendations.Medium, 1)
}

func TestVisionPhoriaFallbackMatchesAxis(t *testing.T) {
	record := RawRecord{
		"สายตาเขซ่อนเร้น": "พบความผิดปกติ แนวนอน ระยะไกล",
	}
	result := testInterpret(t, record, nil)

	// The prose names the lateral-far axis: that test is abnormal, the
	// other phoria tests read the same prose as normal.
	assert.True(t, result.PerTest["vision_phoria_lateral_far"].Flagged)
	assert.Equal(t, "latent strabismus", result.PerTest["vision_phoria_lateral_far"].Label)
	assert.Equal(t, SeverityNormal, result.PerTest["vision_phoria_vertical_far"].Severity)
	assert.Equal(t, SeverityNormal, result.PerTest["vision_phoria_lateral_near"].Severity)
}

func TestVisionPerTestColumnWinsOverProse(t *testing.T) {
	record := RawRecord{
		"ความสมดุลกล้ามเนื้อสายตา แนวนอน ระยะไกล": "ปกติ",
		"สายตาเขซ่อนเร้น":                          "ผิดปกติ แนวนอน ระยะไกล",
	}
	result := testInterpret(t, record, nil)

	assert.Equal(t, SeverityNormal, result.PerTest["vision_phoria_lateral_far"].Severity)
	assert.False(t, result.PerTest["vision_phoria_lateral_far"].Flagged)
}

func TestVisionNotTested(t *testing.T) {
	result := testInterpret(t, RawRecord{"FBS": 90.0}, nil)
	assert.Equal(t, "vision screening not tested", result.Domains["vision"].Summary)
	for _, id := range []string{"vision_binocular", "vision_field", "vision_phoria_lateral_near"} {
		assert.Equal(t, SeverityNotTested, result.PerTest[id].Severity, id)
	}
}
