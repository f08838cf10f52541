package main

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"text/template"
)

/*
 * Human-readable evaluation summary for the web log: a flat checklist of
 * domain outcomes rendered through a text template, mirroring what the
 * reviewing physician sees.
 */

// ReportFlags is the per-domain outcome checklist attached to each log entry.
type ReportFlags struct {
	BloodPressure bool
	BodyMass      bool
	BloodSugar    bool
	Lipids        bool
	Liver         bool
	Kidney        bool
	UricAcid      bool
	BloodCount    bool
	Urinalysis    bool
	Stool         bool
	HepatitisB    bool
	Vision        bool
	Hearing       bool
	Lung          bool
	ChestXray     bool
	EKG           bool
	STS           bool
}

// reportFlags flattens an Interpretation into the checklist.
func reportFlags(result *Interpretation) ReportFlags {
	abnormal := func(id string) bool {
		return result.Domains[id].Abnormal
	}
	return ReportFlags{
		BloodPressure: abnormal("bp"),
		BodyMass:      abnormal("bmi"),
		BloodSugar:    abnormal("fbs"),
		Lipids:        abnormal("lipid"),
		Liver:         abnormal("liver"),
		Kidney:        abnormal("kidney"),
		UricAcid:      abnormal("uric"),
		BloodCount:    abnormal("cbc"),
		Urinalysis:    abnormal("urine"),
		Stool:         abnormal("stool"),
		HepatitisB:    abnormal("hepatitis"),
		Vision:        abnormal("vision"),
		Hearing:       abnormal("hearing"),
		Lung:          abnormal("lung"),
		ChestXray:     abnormal("cxr"),
		EKG:           abnormal("ekg"),
		STS:           result.Audiogram.STSRight || result.Audiogram.STSLeft,
	}
}

func generateReportDetail(m map[string]string, fileName string) (string, error) {
	tmpl, err := template.ParseFiles(fileName)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func structToMap(s any) map[string]string {
	// Initialize map
	result := make(map[string]string)

	// Create value and type fields
	val := reflect.ValueOf(s)
	typ := reflect.TypeOf(s)

	// Iterate over struct fields
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		value := val.Field(i)

		// Convert values to string
		var strValue string
		switch value.Kind() {
		case reflect.Bool:
			strValue = strconv.FormatBool(value.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			strValue = strconv.FormatInt(value.Int(), 10)
		case reflect.String:
			strValue = value.String()
		default:
			strValue = fmt.Sprintf("%v", value.Interface()) // Fallback for other types
		}

		// Append result to map
		result[field.Name] = strValue
	}
	return result
}
