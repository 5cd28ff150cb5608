package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rackcity/internal/domains/reservation/model"
	"rackcity/internal/domains/reservation/model/dto"
	"rackcity/shared/constant"
)

// parseClock parses a time-of-day in "15:04" form, tolerating the
// "15:04:05" form Postgres TIME columns come back as.
func parseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time of day: %q", clock)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time of day: %q", clock)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time of day: %q", clock)
	}

	return hour, minute, nil
}

func clockOnDay(day time.Time, clock string) (time.Time, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// generateSlots walks the open-to-close interval in fixed steps. Each step
// is evaluated against a wider window (slot start + window width); a
// reservation counts against the slot when its [start, end) interval
// overlaps that window. Generation is start-time driven: it stops once the
// slot start reaches closing time, and the evaluation window is
// deliberately not clipped to closing time.
func generateSlots(day time.Time, opensAt, closesAt string, stepMinutes, windowMinutes, totalTables int, reservations []model.Reservation) ([]dto.Slot, error) {
	open, err := clockOnDay(day, opensAt)
	if err != nil {
		return nil, err
	}

	closing, err := clockOnDay(day, closesAt)
	if err != nil {
		return nil, err
	}

	step := time.Duration(stepMinutes) * time.Minute
	window := time.Duration(windowMinutes) * time.Minute

	slots := []dto.Slot{}

	for start := open; start.Before(closing); start = start.Add(step) {
		windowEnd := start.Add(window)

		overlapping := 0

		for i := range reservations {
			if reservations[i].Overlaps(start, windowEnd) {
				overlapping++
			}
		}

		free := totalTables - overlapping
		if free < 0 {
			free = 0
		}

		slots = append(slots, dto.Slot{
			StartTime:       start.Format(constant.TimeOnlyFormat),
			Available:       free > 0,
			TablesAvailable: free,
		})
	}

	return slots, nil
}
