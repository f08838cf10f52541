package main

import (
	"encoding/json"
	"sort"
)

/**************************
 ****** Input Record ******
 **************************/

// RawRecord is one row of a patient's annual checkup, keyed by the source
// workbook's Thai/English column names. Cell values arrive as strings,
// JSON numbers, or nothing at all.
type RawRecord map[string]any

// History is the ordered set of checkup rows for one patient.
type History []RawRecord

/*******************************
 ****** Interpretation *********
 *******************************/

type Severity string

const (
	SeverityNormal    Severity = "normal"
	SeverityLow       Severity = "low"
	SeverityHigh      Severity = "high"
	SeverityAbnormal  Severity = "abnormal"
	SeverityNotTested Severity = "not_tested"
)

// Flagged reports whether a severity counts as a finding.
func (s Severity) Flagged() bool {
	return s == SeverityLow || s == SeverityHigh || s == SeverityAbnormal
}

type TestResult struct {
	Raw      any      `json:"raw,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Display  string   `json:"display"`
	Flagged  bool     `json:"isFlagged"`
}

type DomainResult struct {
	Summary      string   `json:"summary"`
	Abnormal     bool     `json:"abnormal"`
	Contributing []string `json:"contributingTests"`
}

// AdviceSet deduplicates advice strings within one priority bucket.
type AdviceSet map[string]struct{}

func (s AdviceSet) Add(text string) {
	if text != "" {
		s[text] = struct{}{}
	}
}

func (s AdviceSet) Contains(text string) bool {
	_, ok := s[text]
	return ok
}

// Entries returns the bucket contents in a stable order for presentation.
func (s AdviceSet) Entries() []string {
	entries := make([]string, 0, len(s))
	for text := range s {
		entries = append(entries, text)
	}
	sort.Strings(entries)
	return entries
}

func (s AdviceSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

func (s *AdviceSet) UnmarshalJSON(data []byte) error {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*s = AdviceSet{}
	for _, text := range entries {
		s.Add(text)
	}
	return nil
}

// Plan holds the composed advice, bucketed by priority.
type Plan struct {
	High   AdviceSet `json:"high"`
	Medium AdviceSet `json:"medium"`
	Low    AdviceSet `json:"low"`
}

func newPlan() Plan {
	return Plan{High: AdviceSet{}, Medium: AdviceSet{}, Low: AdviceSet{}}
}

type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

type AdviceEntry struct {
	Bucket Bucket
	Text   string
}

/*******************************
 ********* Audiogram ***********
 *******************************/

type FrequencyReading struct {
	FreqHz          int      `json:"freqHz"`
	RightDB         *float64 `json:"rightDb"`
	LeftDB          *float64 `json:"leftDb"`
	BaselineRightDB *float64 `json:"baselineRightDb"`
	BaselineLeftDB  *float64 `json:"baselineLeftDb"`
}

type AudiogramResult struct {
	Right        string             `json:"right"`
	Left         string             `json:"left"`
	STSRight     bool               `json:"stsRight"`
	STSLeft      bool               `json:"stsLeft"`
	PerFrequency []FrequencyReading `json:"perFrequency"`
}

// Interpretation is the complete engine output for one record.
type Interpretation struct {
	PerTest         map[string]TestResult   `json:"perTest"`
	Domains         map[string]DomainResult `json:"domains"`
	Recommendations Plan                    `json:"recommendations"`
	DoctorOpinion   string                  `json:"doctorOpinion"`
	Audiogram       AudiogramResult         `json:"audiogram"`
}

func newInterpretation() *Interpretation {
	return &Interpretation{
		PerTest:         map[string]TestResult{},
		Domains:         map[string]DomainResult{},
		Recommendations: newPlan(),
	}
}

/*******************************
 *********** Sex ***************
 *******************************/

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

/********************************
 ********** App Config **********
 ********************************/

// Config carries the curated keyword lists so clinical staff can adjust
// matching without a recompile.
type Config struct {
	FindingKeywords []string          `json:"findingKeywords"`
	VisionNormal    []string          `json:"visionNormal"`
	VisionAbnormal  []string          `json:"visionAbnormal"`
	PhoriaAxis      map[string]string `json:"phoriaAxis"`
}

/*******************************
 ***** Interpret Request *******
 *******************************/

// InterpretBody is the POST payload for the interpret endpoint.
type InterpretBody struct {
	Record  RawRecord   `json:"record"`
	History []RawRecord `json:"history"`
}
