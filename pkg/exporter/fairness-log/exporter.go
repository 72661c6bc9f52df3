// Package fairnesslog exports the per-response fairness log as CSV: one row
// per response with timestamp, demographics and the deduplication fingerprint.
// Answer contents are deliberately not exported.
package fairnesslog

import (
	"encoding/csv"
	"io"
	"time"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

// utf8BOM is prepended so spreadsheet tools pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"Time", "ResponseID", "AgeGroup", "Gender", "TimeBucket", "Fingerprint(Hash)"}

type Exporter struct {
	csvWriter *csv.Writer
}

func NewExporter(w io.Writer) (*Exporter, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return nil, err
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return nil, err
	}

	return &Exporter{csvWriter: csvWriter}, nil
}

func (e *Exporter) WriteResponse(r surveyTypes.SurveyResponse) error {
	return e.csvWriter.Write([]string{
		time.Unix(r.SubmittedAt, 0).UTC().Format(time.RFC3339),
		r.ResponseID,
		r.Metadata.AgeGroup,
		r.Metadata.Gender,
		r.Metadata.TimeBucket,
		r.Metadata.Fingerprint,
	})
}

func (e *Exporter) Finish() error {
	e.csvWriter.Flush()
	return e.csvWriter.Error()
}

// Export writes the full log for a response list in one call.
func Export(w io.Writer, responses []surveyTypes.SurveyResponse) error {
	exporter, err := NewExporter(w)
	if err != nil {
		return err
	}
	for _, r := range responses {
		if err := exporter.WriteResponse(r); err != nil {
			return err
		}
	}
	return exporter.Finish()
}
