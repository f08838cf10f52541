package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workbookFixture() []RawRecord {
	return []RawRecord{
		{
			"HN": "00123", "Year": 2565.0, "วันที่ตรวจ": "10/1/2565",
			"FBS": 92.0, "CHOL": 190.0,
		},
		{
			"HN": "00123", "Year": 2566.0, "วันที่ตรวจ": "5/1/2566",
			"FBS": 101.0,
		},
		{
			"HN": "00123", "Year": 2566.0, "วันที่ตรวจ": "20/6/2566",
			"FBS": 110.0, "CHOL": 205.0,
		},
		{
			"HN": "777", "CID": "1-2345-67890-12-3", "Year": 2566.0,
			"วันที่ตรวจ": "3/3/2566", "FBS": 88.0,
		},
	}
}

func TestFilterPatientByHN(t *testing.T) {
	history := filterPatient(workbookFixture(), "123")
	assert.Len(t, history, 3)

	// Leading zeros on either side do not matter.
	history = filterPatient(workbookFixture(), "00123")
	assert.Len(t, history, 3)
}

func TestFilterPatientByCID(t *testing.T) {
	history := filterPatient(workbookFixture(), "1234567890123")
	require.Len(t, history, 1)
	assert.Equal(t, "777", normalizeHN(history[0]["HN"]))

	// Dashed form of the same identifier matches too.
	history = filterPatient(workbookFixture(), "1-2345-67890-12-3")
	assert.Len(t, history, 1)
}

func TestAssembleRecordDefaultsToLatestYear(t *testing.T) {
	merged, history, err := assembleRecord(workbookFixture(), "123", 0, "")
	require.NoError(t, err)
	assert.Len(t, history, 3)

	// Latest year, latest dated row leads.
	assert.Equal(t, 2566, recordYear(merged))
	assert.Equal(t, 110.0, merged["FBS"])
}

func TestAssembleRecordMergesWithinYearOnly(t *testing.T) {
	merged, _, err := assembleRecord(workbookFixture(), "123", 2566, "5/1/2566")
	require.NoError(t, err)

	// The dated row leads, the other 2566 row fills its CHOL gap.
	assert.Equal(t, 101.0, merged["FBS"])
	assert.Equal(t, 205.0, merged["CHOL"])
}

func TestAssembleRecordExplicitYear(t *testing.T) {
	merged, _, err := assembleRecord(workbookFixture(), "123", 2565, "")
	require.NoError(t, err)
	assert.Equal(t, 92.0, merged["FBS"])
	// No cross-year fill: the 2566 rows never contribute to a 2565 query.
	assert.Equal(t, 190.0, merged["CHOL"])
}

func TestAssembleRecordNoMatch(t *testing.T) {
	_, _, err := assembleRecord(workbookFixture(), "999", 0, "")
	assert.ErrorIs(t, err, ErrNoRecord)

	_, _, err = assembleRecord(workbookFixture(), "123", 2550, "")
	assert.ErrorIs(t, err, ErrNoRecord)

	_, _, err = assembleRecord(workbookFixture(), "123", 2566, "1/1/2560")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestAssembleRecordDateFormsAreNormalized(t *testing.T) {
	// Query date in word form matches a numeric workbook date.
	merged, _, err := assembleRecord(workbookFixture(), "123", 2566, "5 มกราคม 2566")
	require.NoError(t, err)
	assert.Equal(t, 101.0, merged["FBS"])
}

func TestPickRowUnparseableDatesLose(t *testing.T) {
	slice := History{
		{"วันที่ตรวจ": "ไม่ตรวจ", "FBS": 1.0},
		{"วันที่ตรวจ": "5/1/2566", "FBS": 2.0},
		{"วันที่ตรวจ": nil, "FBS": 3.0},
	}
	assert.Equal(t, 1, pickRow(slice, ""))
}

func TestMissingCellsNeverWinMerge(t *testing.T) {
	recordsWithGaps := []RawRecord{
		{"HN": "5", "Year": 2566.0, "วันที่ตรวจ": "9/9/2566", "FBS": "-"},
		{"HN": "5", "Year": 2566.0, "วันที่ตรวจ": "1/1/2566", "FBS": 95.0},
	}
	merged, _, err := assembleRecord(recordsWithGaps, "5", 2566, "")
	require.NoError(t, err)
	assert.Equal(t, 95.0, merged["FBS"])
}
