package stats

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/timetrackerpro/timetracker/internal/logger"
	"github.com/timetrackerpro/timetracker/internal/testutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

var monday = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

type memRepo struct {
	sessions []tracker.Session
}

func (m *memRepo) LoadSessions() ([]tracker.Session, error) {
	return m.sessions, nil
}

func (m *memRepo) SaveSession(sess *tracker.Session) error {
	m.sessions = append(m.sessions, *sess)
	return nil
}

func (m *memRepo) DeleteSessions([]tracker.Session) error {
	return nil
}

func ptr(t time.Time) *time.Time {
	return &t
}

// history returns a day of sessions, newest first.
func history() []tracker.Session {
	return []tracker.Session{
		{
			ID:              "c",
			Category:        tracker.Work,
			StartTime:       monday.Add(75 * time.Minute),
			DurationSeconds: 125,
		},
		{
			ID:              "b",
			Category:        tracker.Coffee,
			StartTime:       monday.Add(time.Hour),
			EndTime:         ptr(monday.Add(70 * time.Minute)),
			DurationSeconds: 600,
		},
		{
			ID:              "a",
			Category:        tracker.Work,
			StartTime:       monday,
			EndTime:         ptr(monday.Add(45 * time.Minute)),
			DurationSeconds: 2700,
			AppUsages: []tracker.AppUsage{
				{AppID: "pro.editor", AppName: "Editor, Pro", Category: tracker.Work, DurationSeconds: 1800},
				{AppID: "org.browser", AppName: "Browser", Category: tracker.Work, DurationSeconds: 900},
			},
		},
	}
}

type exportTest struct {
	name   string
	output []byte
}

func (e exportTest) Output() ([]byte, string) {
	return e.output, e.name
}

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, history(), CSV))

	testutil.CompareGoldenFile(t, exportTest{
		name:   "export_csv",
		output: buf.Bytes(),
	})
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, history(), JSON))

	var got []exportedSession
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Nil(t, got[0].End)
	assert.Equal(t, "coffee", got[1].Category)
	assert.Len(t, got[2].Apps, 2)
	assert.Equal(t, "pro.editor", got[2].Apps[0].ID)
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, history(), YAML))

	var got []exportedSession
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got, 3)
	assert.True(t, monday.Equal(got[2].Start))
	assert.Equal(t, 2700, got[2].Duration)
}

func TestExportPDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, history(), PDF))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportUnknownFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, history(), Format("xml"))
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestCSVRowsWithoutApps(t *testing.T) {
	rows := csvRows(history()[1:2])

	assert.Equal(t, [][]string{
		{"2026-10-12", "10:00", "10:10", "Coffee break", "10", "", ""},
	}, rows)
}

func TestDayReport(t *testing.T) {
	closed := history()[1:]
	store := tracker.NewSessionStore(&memRepo{sessions: closed}, logger.Discard())

	var buf bytes.Buffer

	Day(store, monday, &Options{
		Stdout:          &buf,
		TargetWorkHours: 1.5,
		TwentyFourHour:  true,
	})

	out := buf.String()

	assert.Contains(t, out, "Monday, October 12, 2026")
	assert.Contains(t, out, "Coffee break")
	assert.Contains(t, out, "09:45")
	assert.Contains(t, out, "Goal: 50%")
	assert.Contains(t, out, "Editor, Pro")
	assert.Contains(t, out, "09:00")
}

func TestDayReportEmpty(t *testing.T) {
	store := tracker.NewSessionStore(&memRepo{}, logger.Discard())

	var buf bytes.Buffer

	Day(store, monday, &Options{Stdout: &buf})

	assert.Contains(t, buf.String(), "No sessions found")
}

func TestDays(t *testing.T) {
	sessions := history()[1:]
	sessions = append(sessions, tracker.Session{
		ID:              "old",
		Category:        tracker.Lunch,
		StartTime:       monday.AddDate(0, 0, -3),
		EndTime:         ptr(monday.AddDate(0, 0, -3).Add(30 * time.Minute)),
		DurationSeconds: 1800,
	})

	store := tracker.NewSessionStore(&memRepo{sessions: sessions}, logger.Discard())

	var buf bytes.Buffer

	Days(store, &Options{Stdout: &buf})

	out := buf.String()
	assert.Contains(t, out, "Mon, Oct 12 2026")
	assert.Contains(t, out, "Fri, Oct 09 2026")
}
