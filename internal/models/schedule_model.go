package models

import (
	"errors"
	"time"
)

// ErrEmptySchedule is returned when the schedule file holds no data rows.
var ErrEmptySchedule = errors.New("schedule has no entries")

type ScheduleEntry struct {
	Timestamp time.Time `json:"timestamp"` // naive timestamps are read as UTC
	FileName  string    `json:"file_name"`
	Caption   string    `json:"caption"`
}
