package main

import (
	"fmt"
	"sort"
)

/*
 * Audiogram aggregation.
 *
 * Current-year thresholds come from the merged record; the baseline for
 * each (ear, frequency) is the earliest readable value in the patient's
 * history by ascending year, independently per frequency. A visit missing
 * 3 kHz can still anchor 4 kHz. With no earlier reading the current value
 * is its own baseline.
 *
 * Per-ear severity: speech band (500/1000/2000) and high band
 * (3000/4000/6000) are averaged separately and the worse band's label
 * wins. A standard threshold shift is a mean worsening of >= 10 dB from
 * baseline across 2000/3000/4000 in the same ear.
 */

var audiogramFrequencies = []int{500, 1000, 2000, 3000, 4000, 6000, 8000}

type earReadings struct {
	Current  map[int]*float64
	Baseline map[int]*float64
}

func (rr *ReportRequest) collectEar(ear string) earReadings {
	readings := earReadings{
		Current:  map[int]*float64{},
		Baseline: map[int]*float64{},
	}

	// History ordered by ascending year; the record's own year may or may
	// not be part of it.
	ordered := append(History(nil), rr.History...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return recordYear(ordered[i]) < recordYear(ordered[j])
	})

	for _, freq := range audiogramFrequencies {
		readings.Current[freq] = earCell(rr.Record, ear, freq)

		var baseline *float64
		for _, row := range ordered {
			if v := earCell(row, ear, freq); v != nil {
				baseline = v
				break
			}
		}
		if baseline == nil {
			baseline = readings.Current[freq]
		}
		readings.Baseline[freq] = baseline
	}
	return readings
}

// bandAverage averages the available readings in one frequency band.
func bandAverage(values map[int]*float64, band []int) *float64 {
	var sum float64
	var n int
	for _, freq := range band {
		if v := values[freq]; v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// earLabel picks the worse of the two band labels for one ear.
func (rr *ReportRequest) earLabel(readings earReadings) string {
	cat := rr.Catalog
	speech := bandAverage(readings.Current, cat.SpeechBand)
	high := bandAverage(readings.Current, cat.HighBand)
	if speech == nil && high == nil {
		return "not tested"
	}

	rank := func(avg *float64) int {
		if avg == nil {
			return 0
		}
		label := cat.hearingLabel(*avg)
		for i, l := range cat.HearingLabels {
			if l == label {
				return i
			}
		}
		return 0
	}
	worse := rank(speech)
	if r := rank(high); r > worse {
		worse = r
	}
	return rr.Catalog.HearingLabels[worse]
}

// earSTS computes the mean shift from baseline across the STS window.
func (rr *ReportRequest) earSTS(readings earReadings) bool {
	var sum float64
	var n int
	for _, freq := range rr.Catalog.STSBand {
		current := readings.Current[freq]
		baseline := readings.Baseline[freq]
		if current == nil || baseline == nil {
			continue
		}
		sum += *current - *baseline
		n++
	}
	return n > 0 && sum/float64(n) >= rr.Catalog.STSShift
}

func (rr *ReportRequest) evaluateAudiogram() {
	cat := rr.Catalog

	right := rr.collectEar("R")
	left := rr.collectEar("L")

	perFrequency := make([]FrequencyReading, 0, len(audiogramFrequencies))
	for _, freq := range audiogramFrequencies {
		perFrequency = append(perFrequency, FrequencyReading{
			FreqHz:          freq,
			RightDB:         right.Current[freq],
			LeftDB:          left.Current[freq],
			BaselineRightDB: right.Baseline[freq],
			BaselineLeftDB:  left.Baseline[freq],
		})
	}

	result := AudiogramResult{
		Right:        rr.earLabel(right),
		Left:         rr.earLabel(left),
		STSRight:     rr.earSTS(right),
		STSLeft:      rr.earSTS(left),
		PerFrequency: perFrequency,
	}
	rr.Result.Audiogram = result

	labelRank := func(label string) int {
		for i, l := range cat.HearingLabels {
			if l == label {
				return i
			}
		}
		return -1 // not tested
	}
	rightRank := labelRank(result.Right)
	leftRank := labelRank(result.Left)
	worst := rightRank
	if leftRank > worst {
		worst = leftRank
	}

	anySTS := result.STSRight || result.STSLeft

	if rightRank < 0 && leftRank < 0 {
		rr.setDomain("hearing", "audiogram not tested", false)
		return
	}

	summary := fmt.Sprintf("hearing right ear %s, left ear %s", result.Right, result.Left)
	if anySTS {
		summary += "; standard threshold shift detected"
	}
	rr.setDomain("hearing", summary, worst >= 1 || anySTS)

	// Advice: moderate-or-worse loss and any STS are high priority; a mild
	// loss alone still earns the protective-equipment reminder.
	bucket := BucketMedium
	if anySTS || worst >= 2 {
		bucket = BucketHigh
	}
	if worst >= 1 {
		rr.addAdvice(bucket, "Hearing thresholds show a loss; wear hearing protection in noisy areas and repeat the audiogram annually.")
	}
	if anySTS {
		rr.addAdvice(BucketHigh, "A standard threshold shift from baseline was detected; see an occupational physician for confirmation and workplace noise review.")
	}
}
