package repository

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SynchronoMedia/english-skills-101/internal/models"
)

// Column headers the schedule file must carry. Extra columns are ignored.
const (
	columnTimestamp = "Date & Time"
	columnFile      = "File Path"
	columnCaption   = "Caption"
)

// timestampLayouts are tried in order. Values without a zone are read as
// UTC, never local time, so runs behave the same on any host.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04",
}

type ScheduleRepository interface {
	List(path string) ([]models.ScheduleEntry, error)
}

type scheduleRepository struct{}

func NewScheduleRepository() ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) List(path string) ([]models.ScheduleEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error opening schedule %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing schedule %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns, err := columnIndexes(records[0])
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", path, err)
	}

	entries := make([]models.ScheduleEntry, 0, len(records)-1)
	for i, record := range records[1:] {
		timestamp, err := parseTimestamp(record[columns[columnTimestamp]])
		if err != nil {
			return nil, fmt.Errorf("schedule %s row %d: %w", path, i+2, err)
		}
		entries = append(entries, models.ScheduleEntry{
			Timestamp: timestamp,
			FileName:  strings.TrimSpace(record[columns[columnFile]]),
			Caption:   record[columns[columnCaption]],
		})
	}
	return entries, nil
}

// columnIndexes maps the required header names to their positions.
func columnIndexes(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnTimestamp, columnFile, columnCaption} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return columns, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
