package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hepatitisRecord(ag, ab, core any) RawRecord {
	return RawRecord{"HbsAg": ag, "HbsAb": ab, "HBcAB": core}
}

func TestParseSerology(t *testing.T) {
	assert.Equal(t, serologyPositive, parseSerology("Positive"))
	assert.Equal(t, serologyPositive, parseSerology("+"))
	assert.Equal(t, serologyPositive, parseSerology("reactive"))
	assert.Equal(t, serologyNegative, parseSerology("NEG"))
	assert.Equal(t, serologyNegative, parseSerology("non-reactive"))
	assert.Equal(t, serologyMissing, parseSerology("-"))
	assert.Equal(t, serologyMissing, parseSerology(nil))
	assert.Equal(t, serologyOther, parseSerology("1.2 IU/mL"))
}

func TestHepatitisConclusions(t *testing.T) {
	cases := []struct {
		ag, ab, core string
		summary      string
		abnormal     bool
	}{
		{"positive", "negative", "negative", "active infection", true},
		{"positive", "positive", "positive", "active infection", true},
		{"negative", "positive", "negative", "immune to hepatitis B", false},
		{"negative", "positive", "positive", "immune to hepatitis B", false},
		{"negative", "negative", "positive", "past hepatitis B exposure", true},
		{"negative", "negative", "negative", "no hepatitis B immunity", true},
	}
	for _, tc := range cases {
		result := testInterpret(t, hepatitisRecord(tc.ag, tc.ab, tc.core), nil)
		assert.Contains(t, result.Domains["hepatitis"].Summary, tc.summary,
			"%s/%s/%s", tc.ag, tc.ab, tc.core)
		assert.Equal(t, tc.abnormal, result.Domains["hepatitis"].Abnormal,
			"%s/%s/%s", tc.ag, tc.ab, tc.core)
	}
}

func TestHepatitisAllMissing(t *testing.T) {
	result := testInterpret(t, hepatitisRecord(nil, "-", ""), nil)
	assert.Equal(t, "hepatitis B serology not tested", result.Domains["hepatitis"].Summary)
	assert.Equal(t, SeverityNotTested, result.PerTest["hbsag"].Severity)
}

func TestHepatitisUnreadableIsInconclusive(t *testing.T) {
	result := testInterpret(t, hepatitisRecord("see lab report", "negative", "negative"), nil)
	assert.Contains(t, result.Domains["hepatitis"].Summary, "inconclusive")
	assert.True(t, result.Domains["hepatitis"].Abnormal)
	assert.True(t, result.PerTest["hbsag"].Flagged)
	assert.Equal(t, "unreadable result", result.PerTest["hbsag"].Label)
}

func TestHepatitisPositiveAntigenFlagsTest(t *testing.T) {
	result := testInterpret(t, hepatitisRecord("positive", "negative", "negative"), nil)
	assert.True(t, result.PerTest["hbsag"].Flagged)
	assert.Equal(t, SeverityAbnormal, result.PerTest["hbsag"].Severity)
	assert.Len(t, result.Recommendations.High, 1)
}

func TestHepatitisYearSuffixedColumns(t *testing.T) {
	record := RawRecord{
		"Year":    2566.0,
		"HbsAg66": "negative",
		"HbsAb66": "positive",
		"HBcAB66": "negative",
	}
	result := testInterpret(t, record, nil)
	assert.Equal(t, "immune to hepatitis B", result.Domains["hepatitis"].Summary)
}

func TestHepatitisTestYearPassthrough(t *testing.T) {
	record := hepatitisRecord("negative", "positive", "negative")
	record["ปีตรวจHEP"] = 2565.0
	result := testInterpret(t, record, nil)

	assert.Equal(t, SeverityNormal, result.PerTest["hep_year"].Severity)
	assert.Equal(t, "2565", result.PerTest["hep_year"].Display)
}
