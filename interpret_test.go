package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		FindingKeywords: []string{"ผิดปกติ", "abnormal", "infiltrate", "lesion", "arrhythmia", "ฝ้า", "รอย"},
		VisionNormal:    []string{"ปกติ", "normal", "ผ่านเกณฑ์"},
		VisionAbnormal:  []string{"ผิดปกติ", "abnormal", "ต่ำกว่าเกณฑ์", "ไม่ผ่านเกณฑ์"},
		PhoriaAxis: map[string]string{
			"vision_phoria_vertical_far": "แนวตั้งระยะไกล",
			"vision_phoria_lateral_far":  "แนวนอนระยะไกล",
			"vision_phoria_lateral_near": "แนวนอนระยะใกล้",
		},
	}
}

func testInterpret(t *testing.T, record RawRecord, history History) *Interpretation {
	t.Helper()
	result, err := Interpret(record, history, defaultCatalog(), testConfig())
	require.NoError(t, err)
	return result
}

// healthyMaleRecord is scenario S1: every tested panel within limits.
func healthyMaleRecord() RawRecord {
	return RawRecord{
		"เพศ":        "ชาย",
		"Hb(%)":      15.0,
		"HCT":        45.0,
		"WBC (cumm)": 7000.0,
		"Plt (/mm)":  250000.0,
		"FBS":        90.0,
		"CHOL":       180.0,
		"HDL":        55.0,
		"LDL":        100.0,
		"TGL":        120.0,
		"Cr":         1.0,
		"GFR":        95.0,
		"SGOT":       20.0,
		"SGPT":       20.0,
		"ALP":        70.0,
		"Uric Acid":  5.0,
		"sugar":      "negative",
		"Alb":        "negative",
		"pH":         6.5,
		"Spgr":       1.015,
		"SBP":        118.0,
		"DBP":        76.0,
		"น้ำหนัก":    70.0,
		"ส่วนสูง":    175.0,
	}
}

func TestInterpretNilRecord(t *testing.T) {
	_, err := Interpret(nil, nil, defaultCatalog(), testConfig())
	require.ErrorIs(t, err, ErrContractViolation)
}

func TestHealthyMale(t *testing.T) {
	result := testInterpret(t, healthyMaleRecord(), nil)

	for id, test := range result.PerTest {
		assert.False(t, test.Flagged, "test %s unexpectedly flagged", id)
	}
	assert.Empty(t, result.Recommendations.High)
	assert.Empty(t, result.Recommendations.Medium)
	assert.Empty(t, result.Recommendations.Low)
	assert.Equal(t, allNormalOpinion, result.DoctorOpinion)
}

func TestPreDiabeticMildLipids(t *testing.T) {
	record := healthyMaleRecord()
	record["FBS"] = 115.0
	record["CHOL"] = 210.0
	record["LDL"] = 165.0

	result := testInterpret(t, record, nil)

	assert.True(t, result.Domains["fbs"].Abnormal)
	assert.Contains(t, result.Domains["fbs"].Summary, "pre-diabetic range")
	assert.True(t, result.Domains["lipid"].Abnormal)
	assert.Contains(t, result.Domains["lipid"].Summary, "mildly high")

	assert.Empty(t, result.Recommendations.High)
	assert.Len(t, result.Recommendations.Medium, 2)

	assert.Contains(t, result.DoctorOpinion, "pre-diabetic range")
	assert.Contains(t, result.DoctorOpinion, "mildly high")
}

func TestOvertLipidsAndHypertension(t *testing.T) {
	record := healthyMaleRecord()
	record["CHOL"] = 260.0
	record["TGL"] = 260.0
	record["LDL"] = 190.0
	record["SBP"] = 150.0
	record["DBP"] = 95.0

	result := testInterpret(t, record, nil)

	assert.Contains(t, result.Domains["bp"].Summary, "high blood pressure")
	assert.Contains(t, result.Domains["lipid"].Summary, "lipids high")
	assert.Len(t, result.Recommendations.High, 2)

	// The opinion paragraph keeps the fixed clinical order: BP first.
	assert.True(t, strings.HasPrefix(result.DoctorOpinion, "high blood pressure"),
		"opinion should lead with blood pressure: %s", result.DoctorOpinion)
	assert.Less(t, strings.Index(result.DoctorOpinion, "blood pressure"),
		strings.Index(result.DoctorOpinion, "lipids"))
}

func TestHepatitisImmune(t *testing.T) {
	record := RawRecord{
		"HbsAg": "negative",
		"HbsAb": "positive",
		"HBcAB": "negative",
	}
	result := testInterpret(t, record, nil)

	assert.Equal(t, "immune to hepatitis B", result.Domains["hepatitis"].Summary)
	assert.False(t, result.Domains["hepatitis"].Abnormal)
	assert.Empty(t, result.Recommendations.High)
	assert.Empty(t, result.Recommendations.Medium)
}

func TestHepatitisNoImmunityAdviceDeduplicated(t *testing.T) {
	record := RawRecord{
		"HbsAg": "negative",
		"HbsAb": "negative",
		"HBcAB": "negative",
	}
	result := testInterpret(t, record, nil)

	assert.Contains(t, result.Domains["hepatitis"].Summary, "no hepatitis B immunity")
	require.Len(t, result.Recommendations.Medium, 1)

	// Re-running the compositor over its own output must not duplicate.
	var entries []AdviceEntry
	for _, text := range result.Recommendations.Medium.Entries() {
		entries = append(entries, AdviceEntry{Bucket: BucketMedium, Text: text})
		entries = append(entries, AdviceEntry{Bucket: BucketMedium, Text: text})
	}
	recomposed := composePlan(entries)
	assert.Equal(t, result.Recommendations.Medium, recomposed.Medium)
}

func TestAudiogramThresholdShift(t *testing.T) {
	baseline := RawRecord{
		"Year":  2565.0,
		"R2000": 10.0,
		"R3000": 10.0,
		"R4000": 10.0,
	}
	current := RawRecord{
		"Year":  2566.0,
		"R2000": 25.0,
		"R3000": 30.0,
		"R4000": 30.0,
	}

	result := testInterpret(t, current, History{baseline, current})

	assert.True(t, result.Audiogram.STSRight)
	assert.False(t, result.Audiogram.STSLeft)
	assert.Equal(t, "mild", result.Audiogram.Right)

	// STS warning and protective-equipment advice are two distinct entries.
	assert.Len(t, result.Recommendations.High, 2)
}

func TestInterpretIsPure(t *testing.T) {
	record := healthyMaleRecord()
	record["FBS"] = 130.0

	snapshot, err := json.Marshal(record)
	require.NoError(t, err)

	first := testInterpret(t, record, nil)
	second := testInterpret(t, record, nil)
	assert.Equal(t, first, second)

	after, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestMissingTokenPropagation(t *testing.T) {
	record := healthyMaleRecord()

	for _, token := range []any{"", "-", "none", "NaN", "null", nil} {
		mutated := RawRecord{}
		for k, v := range record {
			mutated[k] = v
		}
		mutated["FBS"] = token

		result := testInterpret(t, mutated, nil)
		assert.Equal(t, SeverityNotTested, result.PerTest["fbs"].Severity, "token %v", token)
		assert.Equal(t, "-", result.PerTest["fbs"].Display, "token %v", token)

		// No other test changes its outcome.
		assert.Equal(t, SeverityNormal, result.PerTest["chol"].Severity)
		assert.Equal(t, SeverityNormal, result.PerTest["hb"].Severity)
	}
}

func TestNotTestedPanelsNeverError(t *testing.T) {
	result := testInterpret(t, RawRecord{"HN": "42"}, nil)

	for id, test := range result.PerTest {
		assert.Equal(t, SeverityNotTested, test.Severity, "test %s", id)
		assert.False(t, test.Flagged, "test %s", id)
	}
	assert.Equal(t, allNormalOpinion, result.DoctorOpinion)
}

func TestDoctorNotePassthrough(t *testing.T) {
	record := healthyMaleRecord()
	record["ข้อแนะนำของแพทย์"] = "ควรพักผ่อนให้เพียงพอ"

	result := testInterpret(t, record, nil)
	assert.Contains(t, result.DoctorOpinion, "ควรพักผ่อนให้เพียงพอ")
}
