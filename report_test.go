package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFlags(t *testing.T) {
	record := healthyMaleRecord()
	record["FBS"] = 130.0
	record["SBP"] = 165.0
	result := testInterpret(t, record, nil)

	flags := reportFlags(result)
	assert.True(t, flags.BloodSugar)
	assert.True(t, flags.BloodPressure)
	assert.False(t, flags.Lipids)
	assert.False(t, flags.STS)
}

func TestReportFlagsSTS(t *testing.T) {
	baseline := RawRecord{"Year": 2565.0, "R2000": 10.0, "R3000": 10.0, "R4000": 10.0}
	current := RawRecord{"Year": 2566.0, "R2000": 25.0, "R3000": 30.0, "R4000": 30.0}
	result := testInterpret(t, current, History{baseline, current})

	flags := reportFlags(result)
	assert.True(t, flags.STS)
	assert.True(t, flags.Hearing)
}

func TestGenerateReportDetail(t *testing.T) {
	result := testInterpret(t, healthyMaleRecord(), nil)

	detail, err := generateReportDetail(structToMap(reportFlags(result)), reportDetailFile)
	require.NoError(t, err)
	assert.Contains(t, detail, "false")
	assert.NotContains(t, detail, "{{")
}

func TestStructToMap(t *testing.T) {
	m := structToMap(ReportFlags{BloodSugar: true})
	assert.Equal(t, "true", m["BloodSugar"])
	assert.Equal(t, "false", m["Hearing"])
	assert.Len(t, m, 17)
}
