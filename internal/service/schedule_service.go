package service

import (
	"time"

	"github.com/SynchronoMedia/english-skills-101/internal/models"
	"github.com/SynchronoMedia/english-skills-101/internal/repository"
)

type ScheduleService interface {
	ClosestEntry(path string) (models.ScheduleEntry, error)
}

type scheduleService struct {
	sr  repository.ScheduleRepository
	now func() time.Time
}

func NewScheduleService(sr repository.ScheduleRepository) ScheduleService {
	return &scheduleService{
		sr:  sr,
		now: time.Now,
	}
}

// ClosestEntry returns the row whose timestamp is nearest to now, in UTC.
// Ties resolve to the earliest row in file order. An empty schedule is
// models.ErrEmptySchedule, which the pipeline treats as "nothing to post".
func (s *scheduleService) ClosestEntry(path string) (models.ScheduleEntry, error) {
	entries, err := s.sr.List(path)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if len(entries) == 0 {
		return models.ScheduleEntry{}, models.ErrEmptySchedule
	}

	now := s.now().UTC()
	closest := entries[0]
	closestDistance := absDuration(closest.Timestamp.Sub(now))
	for _, entry := range entries[1:] {
		if distance := absDuration(entry.Timestamp.Sub(now)); distance < closestDistance {
			closest = entry
			closestDistance = distance
		}
	}
	return closest, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
