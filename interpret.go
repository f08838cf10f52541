package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
)

// ErrContractViolation is the only hard failure of the engine: the caller
// handed something that is not an interpretable record. Everything else is
// an annotation on the output, never an error.
var ErrContractViolation = errors.New("input is not an interpretable record")

// ReportRequest carries one interpretation pass. All state is request-local;
// the engine reads the record and history but never writes to them.
type ReportRequest struct {
	Context ReportContext
	Record  RawRecord
	History History
	Catalog *Catalog
	Config  *Config
	Sex     Sex
	Result  *Interpretation

	advice []AdviceEntry
}

type ReportContext struct {
	RequestContext context.Context
	HN             string
	Year           int
}

// Interpret runs the full engine over one merged record and its history.
// It is a pure function of its inputs: no I/O, no shared state, and the
// same inputs always produce the same Interpretation.
func Interpret(record RawRecord, history History, cat *Catalog, cfg *Config) (*Interpretation, error) {
	if record == nil {
		return nil, ErrContractViolation
	}

	rr := &ReportRequest{
		Context: ReportContext{
			RequestContext: context.Background(),
			HN:             normalizeHN(record["HN"]),
			Year:           recordYear(record),
		},
		Record:  record,
		History: history,
		Catalog: cat,
		Config:  cfg,
		Sex:     parseSex(record["เพศ"]),
		Result:  newInterpretation(),
	}

	// Panel order is irrelevant; each classifier depends only on the record.
	rr.evaluateVitals()
	rr.evaluateCBC()
	rr.evaluateChemistry()
	rr.evaluateUrinalysis()
	rr.evaluateStool()
	rr.evaluateHepatitis()
	rr.evaluateXray()
	rr.evaluateEKG()
	rr.evaluateVision()
	rr.evaluateSpirometry()
	rr.evaluateAudiogram()

	// The compositor runs last; it only reads classifier and domain output.
	rr.compose()

	return rr.Result, nil
}

// addTest records one classifier output.
func (rr *ReportRequest) addTest(id string, result TestResult) {
	if result.Label == "" {
		result.Label = severityLabel(result.Severity)
	}
	rr.Result.PerTest[id] = result
}

// setDomain records one domain conclusion.
func (rr *ReportRequest) setDomain(id, summary string, abnormal bool, contributing ...string) {
	rr.Result.Domains[id] = DomainResult{
		Summary:      summary,
		Abnormal:     abnormal,
		Contributing: contributing,
	}
}

// addAdvice queues one advice entry for the compositor.
func (rr *ReportRequest) addAdvice(bucket Bucket, text string) {
	rr.advice = append(rr.advice, AdviceEntry{Bucket: bucket, Text: text})
}

func severityLabel(s Severity) string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityLow:
		return "below range"
	case SeverityHigh:
		return "above range"
	case SeverityAbnormal:
		return "abnormal"
	}
	return "not tested"
}

/*******************************
 ******** HTTP handlers ********
 *******************************/

// interpretReport handles POST /report-services/interpret: a record plus
// optional history in, a complete Interpretation out.
func interpretReport(c echo.Context) error {
	r := c.Request()
	ctx := r.Context()

	var body InterpretBody
	if err := c.Bind(&body); err != nil {
		logger(ctx, fmt.Errorf("unable to parse interpret request: %v", err))
		return c.NoContent(http.StatusBadRequest)
	}

	span, _ := apm.StartSpan(ctx, "Interpret Record", "Engine")
	result, err := Interpret(body.Record, body.History, catalog, config)
	span.End()
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusBadRequest)
	}

	sendReportLog(ctx, body.Record, result)

	return c.JSON(http.StatusOK, result)
}

// patientReport handles POST /report-services/patients/:key: resolve the
// merged record for a patient from the loaded workbook, then interpret it.
func patientReport(c echo.Context) error {
	r := c.Request()
	ctx := r.Context()

	if records == nil {
		logger(ctx, errors.New("no checkup workbook loaded"))
		return c.NoContent(http.StatusServiceUnavailable)
	}

	var year int
	if y := c.QueryParam("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		year = parsed
	}

	span, _ := apm.StartSpan(ctx, "Assemble Record", "Engine")
	merged, history, err := assembleRecord(records, c.Param("key"), year, c.QueryParam("date"))
	span.End()
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return c.NoContent(http.StatusNotFound)
		}
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	span, _ = apm.StartSpan(ctx, "Interpret Record", "Engine")
	result, err := Interpret(merged, history, catalog, config)
	span.End()
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	sendReportLog(ctx, merged, result)

	return c.JSON(http.StatusOK, result)
}
