package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rackcity/internal/domains/reservation/model"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name       string
		clock      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{
			name:       "plain hour and minute",
			clock:      "10:00",
			wantHour:   10,
			wantMinute: 0,
		},
		{
			name:       "postgres time with seconds",
			clock:      "21:30:00",
			wantHour:   21,
			wantMinute: 30,
		},
		{
			name:    "missing minute",
			clock:   "10",
			wantErr: true,
		},
		{
			name:    "hour out of range",
			clock:   "24:00",
			wantErr: true,
		},
		{
			name:    "minute out of range",
			clock:   "10:61",
			wantErr: true,
		},
		{
			name:    "not a number",
			clock:   "ten:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := parseClock(tt.clock)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reserve := func(startHour, startMin, endHour, endMin int) model.Reservation {
		return model.Reservation{
			StartTime: time.Date(2026, 3, 2, startHour, startMin, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 2, endHour, endMin, 0, 0, time.UTC),
			Status:    model.StatusConfirmed,
		}
	}

	t.Run("empty day yields every slot", func(t *testing.T) {
		slots, err := generateSlots(day, "10:00", "22:00", 30, 60, 5, nil)

		assert.NoError(t, err)
		assert.Len(t, slots, 24)
		assert.Equal(t, "10:00", slots[0].StartTime)
		assert.Equal(t, "21:30", slots[len(slots)-1].StartTime)

		for _, slot := range slots {
			assert.True(t, slot.Available)
			assert.Equal(t, 5, slot.TablesAvailable)
		}
	})

	t.Run("single table blocked by one reservation", func(t *testing.T) {
		slots, err := generateSlots(day, "12:00", "17:00", 30, 60, 1,
			[]model.Reservation{reserve(14, 0, 15, 30)})

		assert.NoError(t, err)

		byStart := map[string]bool{}
		for _, slot := range slots {
			byStart[slot.StartTime] = slot.Available
		}

		assert.True(t, byStart["12:30"])
		assert.False(t, byStart["13:30"])
		assert.False(t, byStart["14:00"])
		assert.False(t, byStart["14:30"])
		assert.False(t, byStart["15:00"])
		assert.True(t, byStart["15:30"])
	})

	t.Run("overlapping reservations reduce the slot count", func(t *testing.T) {
		slots, err := generateSlots(day, "14:00", "16:00", 30, 60, 3,
			[]model.Reservation{
				reserve(14, 0, 15, 0),
				reserve(14, 30, 15, 30),
			})

		assert.NoError(t, err)
		assert.Equal(t, 1, slots[0].TablesAvailable)
		assert.True(t, slots[0].Available)
	})

	t.Run("more reservations than tables floors at zero", func(t *testing.T) {
		slots, err := generateSlots(day, "14:00", "15:00", 30, 60, 1,
			[]model.Reservation{
				reserve(14, 0, 15, 0),
				reserve(14, 0, 15, 0),
			})

		assert.NoError(t, err)
		assert.Equal(t, 0, slots[0].TablesAvailable)
		assert.False(t, slots[0].Available)
	})

	t.Run("last slot window extends past closing", func(t *testing.T) {
		// A reservation after closing still blocks the 21:30 slot because
		// its hour-long window runs to 22:30.
		slots, err := generateSlots(day, "10:00", "22:00", 30, 60, 1,
			[]model.Reservation{reserve(22, 0, 22, 30)})

		assert.NoError(t, err)
		last := slots[len(slots)-1]
		assert.Equal(t, "21:30", last.StartTime)
		assert.False(t, last.Available)
	})

	t.Run("invalid opening time", func(t *testing.T) {
		_, err := generateSlots(day, "bad", "22:00", 30, 60, 1, nil)

		assert.Error(t, err)
	})
}

func TestReservationOverlaps(t *testing.T) {
	res := model.Reservation{
		StartTime: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC),
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	}

	assert.True(t, res.Overlaps(at(14, 30), at(15, 30)))
	assert.True(t, res.Overlaps(at(13, 30), at(14, 30)))
	assert.False(t, res.Overlaps(at(13, 0), at(14, 0)), "window ending at start does not overlap")
	assert.False(t, res.Overlaps(at(15, 30), at(16, 30)), "window starting at end does not overlap")
}
