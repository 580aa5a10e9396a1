package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/go-pdf/fpdf"
	"gopkg.in/yaml.v3"

	"github.com/timetrackerpro/timetracker/internal/apperr"
	"github.com/timetrackerpro/timetracker/tracker"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
	PDF  Format = "pdf"
)

// Formats lists the supported export formats.
var Formats = []Format{CSV, JSON, YAML, PDF}

var (
	errUnknownFormat = &apperr.Error{
		Message: "unknown export format %q: expected csv, json, yaml or pdf",
	}

	errExport = &apperr.Error{
		Message: "failed to export sessions",
	}
)

var csvHeader = []string{
	"Date",
	"Start",
	"End",
	"Category",
	"Duration (min)",
	"App name",
	"App duration (min)",
}

const (
	csvDateLayout = "2006-01-02"
	csvTimeLayout = "15:04"
	runningEnd    = "running"
)

// ParseFormat converts user input into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))

	for _, v := range Formats {
		if v == f {
			return f, nil
		}
	}

	return "", errUnknownFormat.Fmt(s)
}

// Export writes sessions to w in the given format. Sessions are written in
// the order given.
func Export(w io.Writer, sessions []tracker.Session, format Format) error {
	var err error

	switch format {
	case CSV:
		err = writeCSV(w, sessions)
	case JSON:
		err = writeJSON(w, sessions)
	case YAML:
		err = writeYAML(w, sessions)
	case PDF:
		err = writePDF(w, sessions)
	default:
		return errUnknownFormat.Fmt(format)
	}

	if err != nil {
		return errExport.Wrap(err)
	}

	return nil
}

func endColumn(sess *tracker.Session) string {
	if sess.EndTime == nil {
		return runningEnd
	}

	return sess.EndTime.Format(csvTimeLayout)
}

// csvRows flattens sessions into one row per application. Sessions without
// application usage get a single row with empty application columns.
func csvRows(sessions []tracker.Session) [][]string {
	var rows [][]string

	for i := range sessions {
		sess := &sessions[i]

		base := []string{
			sess.StartTime.Format(csvDateLayout),
			sess.StartTime.Format(csvTimeLayout),
			endColumn(sess),
			sess.Category.Label(),
			strconv.Itoa(sess.DurationSeconds / 60),
		}

		if len(sess.AppUsages) == 0 {
			rows = append(rows, append(base, "", ""))
			continue
		}

		for _, u := range sess.AppUsages {
			row := append([]string(nil), base...)
			row = append(row, u.AppName, strconv.Itoa(u.DurationSeconds/60))
			rows = append(rows, row)
		}
	}

	return rows
}

func writeCSV(w io.Writer, sessions []tracker.Session) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	if err := cw.WriteAll(csvRows(sessions)); err != nil {
		return err
	}

	return cw.Error()
}

type exportedApp struct {
	Name     string `json:"name"     yaml:"name"`
	ID       string `json:"id"       yaml:"id"`
	Duration int    `json:"duration" yaml:"duration"`
}

type exportedSession struct {
	Start    time.Time     `json:"start"          yaml:"start"`
	End      *time.Time    `json:"end,omitempty"  yaml:"end,omitempty"`
	ID       string        `json:"id"             yaml:"id"`
	Category string        `json:"category"       yaml:"category"`
	Apps     []exportedApp `json:"apps,omitempty" yaml:"apps,omitempty"`
	Duration int           `json:"duration"       yaml:"duration"`
}

func exported(sessions []tracker.Session) []exportedSession {
	out := make([]exportedSession, 0, len(sessions))

	for i := range sessions {
		sess := &sessions[i]

		e := exportedSession{
			Start:    sess.StartTime,
			End:      sess.EndTime,
			ID:       sess.ID,
			Category: string(sess.Category),
			Duration: sess.DurationSeconds,
		}

		for _, u := range sess.AppUsages {
			e.Apps = append(e.Apps, exportedApp{
				Name:     u.AppName,
				ID:       u.AppID,
				Duration: u.DurationSeconds,
			})
		}

		out = append(out, e)
	}

	return out
}

func writeJSON(w io.Writer, sessions []tracker.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(exported(sessions))
}

func writeYAML(w io.Writer, sessions []tracker.Session) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(exported(sessions)); err != nil {
		return err
	}

	return enc.Close()
}

// pdfColumns are the widths in millimetres of the csv columns on an A4 page.
var pdfColumns = []float64{24, 16, 18, 28, 24, 50, 28}

func writePDF(w io.Writer, sessions []tracker.Session) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Time Tracker export", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Time Tracker export")
	pdf.Ln(12)

	var work, breaks int

	for i := range sessions {
		if sessions[i].Category == tracker.Work {
			work += sessions[i].DurationSeconds
		} else {
			breaks += sessions[i].DurationSeconds
		}
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Sessions: %d\nWork: %d min\nBreaks: %d min",
		len(sessions),
		work/60,
		breaks/60,
	), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)

	for i, h := range csvHeader {
		pdf.CellFormat(pdfColumns[i], 7, h, "1", 0, "C", false, 0, "")
	}

	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)

	// the core fonts only cover latin-1
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, row := range csvRows(sessions) {
		for i, col := range row {
			pdf.CellFormat(pdfColumns[i], 6, tr(ansi.Truncate(col, 28, "…")), "1", 0, "L", false, 0, "")
		}

		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
