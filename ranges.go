package main

/*
 * The reference-range catalogue. Data only: classifiers consult these
 * tables and nothing else. The catalogue is built once at startup and
 * injected into each report request, never mutated.
 */

type Catalog struct {
	// CBC ranges that do not depend on sex.
	CBC map[string]NumericRange

	// Sex-conditioned lower limits. Unknown sex falls back to the male set
	// with an annotation on the display text.
	HbLow  map[Sex]float64
	HCTLow map[Sex]float64

	Chemistry map[string]NumericRange

	// Urinalysis quantitative limits.
	UrinePH NumericRange
	UrineSG NumericRange

	// Colours considered normal for urine, lowercased.
	UrineColors []string

	// Audiogram severity bands: threshold averages strictly above each cut
	// move to the next label.
	HearingCuts   []float64
	HearingLabels []string

	// Frequencies making up the two summary bands and the STS window.
	SpeechBand []int
	HighBand   []int
	STSBand    []int

	// Mean shift from baseline (dB) that constitutes a standard threshold
	// shift.
	STSShift float64
}

func defaultCatalog() *Catalog {
	return &Catalog{
		CBC: map[string]NumericRange{
			"wbc":   {Low: fp(4000), High: fp(10000)},
			"neut":  {Low: fp(43), High: fp(70)},
			"lymph": {Low: fp(20), High: fp(44)},
			"mono":  {Low: fp(3), High: fp(9)},
			"eos":   {Low: fp(0), High: fp(9)},
			"baso":  {Low: fp(0), High: fp(3)},
			"plt":   {Low: fp(150000), High: fp(500000)},
		},
		HbLow:  map[Sex]float64{SexMale: 13, SexFemale: 12},
		HCTLow: map[Sex]float64{SexMale: 39, SexFemale: 36},
		Chemistry: map[string]NumericRange{
			"fbs":  {Low: fp(74), High: fp(106)},
			"uric": {Low: fp(2.6), High: fp(7.2)},
			"alp":  {Low: fp(30), High: fp(120)},
			"sgot": {High: fp(37)},
			"sgpt": {High: fp(41)},
			"chol": {Low: fp(150), High: fp(200)},
			"tgl":  {Low: fp(35), High: fp(150)},
			"hdl":  {Low: fp(40), HigherIsBetter: true},
			"ldl":  {Low: fp(0), High: fp(160)},
			"bun":  {Low: fp(7.9), High: fp(20)},
			"cr":   {Low: fp(0.5), High: fp(1.17)},
			"gfr":  {Low: fp(60), HigherIsBetter: true},
		},
		UrinePH:     NumericRange{Low: fp(5.0), High: fp(8.0)},
		UrineSG:     NumericRange{Low: fp(1.003), High: fp(1.030)},
		UrineColors: []string{"yellow", "pale yellow", "light yellow", "colorless"},

		HearingCuts:   []float64{25, 40, 55, 70, 90},
		HearingLabels: []string{"normal", "mild", "moderate", "moderately severe", "severe", "profound"},

		SpeechBand: []int{500, 1000, 2000},
		HighBand:   []int{3000, 4000, 6000},
		STSBand:    []int{2000, 3000, 4000},
		STSShift:   10,
	}
}

// hbRange resolves the sex-conditioned hemoglobin limit.
func (cat *Catalog) hbRange(sex Sex) NumericRange {
	low, ok := cat.HbLow[sex]
	if !ok {
		low = cat.HbLow[SexMale]
	}
	return NumericRange{Low: fp(low)}
}

// hctRange resolves the sex-conditioned hematocrit limit.
func (cat *Catalog) hctRange(sex Sex) NumericRange {
	low, ok := cat.HCTLow[sex]
	if !ok {
		low = cat.HCTLow[SexMale]
	}
	return NumericRange{Low: fp(low)}
}

// hearingLabel maps a band average to its severity label.
func (cat *Catalog) hearingLabel(avg float64) string {
	for i, cut := range cat.HearingCuts {
		if avg <= cut {
			return cat.HearingLabels[i]
		}
	}
	return cat.HearingLabels[len(cat.HearingLabels)-1]
}
