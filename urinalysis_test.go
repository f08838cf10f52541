package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellUpper(t *testing.T) {
	v := parseCellUpper("3-5")
	require.NotNil(t, v)
	assert.Equal(t, 5.0, *v)

	v = parseCellUpper("2")
	require.NotNil(t, v)
	assert.Equal(t, 2.0, *v)

	assert.Nil(t, parseCellUpper("loaded"))
	assert.Nil(t, parseCellUpper("-"))
	assert.Nil(t, parseCellUpper(nil))
}

func TestMicroscopyBands(t *testing.T) {
	normal := microscopyResult("0-2", 2, 5)
	assert.Equal(t, SeverityNormal, normal.Severity)
	assert.False(t, normal.Flagged)

	mild := microscopyResult("3-5", 2, 5)
	assert.Equal(t, "mildly elevated", mild.Label)
	assert.True(t, mild.Flagged)

	high := microscopyResult("10-20", 2, 5)
	assert.Equal(t, "elevated", high.Label)
	assert.True(t, high.Flagged)
}

func TestQualitativeResult(t *testing.T) {
	assert.Equal(t, SeverityNormal, qualitativeResult("Negative", "negative").Severity)
	assert.Equal(t, SeverityNormal, qualitativeResult("trace", "negative", "trace").Severity)
	assert.True(t, qualitativeResult("1+", "negative").Flagged)
	assert.Equal(t, SeverityNotTested, qualitativeResult("-", "negative").Severity)
}

func TestUrinalysisSugarAndAlbumin(t *testing.T) {
	record := healthyMaleRecord()
	record["sugar"] = "2+"
	record["Alb"] = "trace"
	result := testInterpret(t, record, nil)

	assert.True(t, result.PerTest["sugar"].Flagged)
	assert.False(t, result.PerTest["alb"].Flagged)
	assert.Contains(t, result.Domains["urine"].Summary, "urinalysis abnormal")
	assert.Contains(t, result.Domains["urine"].Summary, "sugar")
}

func TestUrinalysisColour(t *testing.T) {
	record := healthyMaleRecord()
	record["Color"] = "Pale Yellow"
	result := testInterpret(t, record, nil)
	assert.Equal(t, SeverityNormal, result.PerTest["color"].Severity)

	record["Color"] = "red"
	result = testInterpret(t, record, nil)
	assert.True(t, result.PerTest["color"].Flagged)
	assert.Contains(t, result.Domains["urine"].Summary, "colour")
}

func TestUrinalysisSummaryOrderStable(t *testing.T) {
	record := healthyMaleRecord()
	record["RBC1"] = "5-10"
	record["WBC1"] = "10-20"
	result := testInterpret(t, record, nil)

	// Marker names are sorted so repeated runs produce identical text.
	assert.Contains(t, result.Domains["urine"].Summary, "red cells, white cells")
}

func TestUrinalysisSedimentProsePassthrough(t *testing.T) {
	record := healthyMaleRecord()
	record["SQ-epi"] = "1-2"
	result := testInterpret(t, record, nil)

	assert.Equal(t, SeverityNormal, result.PerTest["sq_epi"].Severity)
	assert.Equal(t, "reported", result.PerTest["sq_epi"].Label)
	assert.False(t, result.PerTest["sq_epi"].Flagged)
}

func TestStoolExam(t *testing.T) {
	record := RawRecord{"Stool exam": "ไม่พบความผิดปกติ", "Stool C/S": "no growth"}
	result := testInterpret(t, record, nil)
	assert.Equal(t, "stool examination within normal limits", result.Domains["stool"].Summary)

	record = RawRecord{"Stool exam": "พบไข่พยาธิ"}
	result = testInterpret(t, record, nil)
	assert.Equal(t, "stool examination abnormal", result.Domains["stool"].Summary)
	assert.True(t, result.PerTest["stool_exam"].Flagged)
	assert.Len(t, result.Recommendations.Medium, 1)
}
