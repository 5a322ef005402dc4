package session

import (
	"errors"
	"time"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/save"
)

// StatsOwner owns the values written by Stats.
var StatsOwner = ident.FromName("savestate/stats")

const (
	playTimeName  = "play_time"
	saveCountName = "save_count"
)

// Stats is a participant tracking total play time, in seconds, and the
// number of saves made in the slot.
type Stats struct {
	now       func() time.Time
	playTime  time.Duration
	saveCount int
	resumedAt time.Time
}

func NewStats(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{
		now:       now,
		resumedAt: now(),
	}
}

// PlayTime returns the play time stored in the slot plus the time since it
// was loaded or last saved.
func (s *Stats) PlayTime() time.Duration {
	return s.playTime + s.now().Sub(s.resumedAt)
}

func (s *Stats) SaveCount() int {
	return s.saveCount
}

func (s *Stats) OnSaving(m *save.Manager) error {
	now := s.now()
	s.playTime += now.Sub(s.resumedAt)
	s.resumedAt = now
	s.saveCount++

	if err := save.SaveVariable(m, StatsOwner, playTimeName, s.playTime.Seconds()); err != nil {
		return err
	}
	return save.SaveVariable(m, StatsOwner, saveCountName, s.saveCount)
}

// OnLoading restores the counters from the slot. Missing values start at
// zero.
func (s *Stats) OnLoading(m *save.Manager) error {
	s.playTime = 0
	s.saveCount = 0
	s.resumedAt = s.now()

	playTime, err := save.LoadVariable[float64](m, StatsOwner, playTimeName)
	switch {
	case err == nil:
		s.playTime = time.Duration(playTime * float64(time.Second))
	case !errors.Is(err, save.ErrNotFound):
		return err
	}

	saveCount, err := save.LoadVariable[int](m, StatsOwner, saveCountName)
	switch {
	case err == nil:
		s.saveCount = saveCount
	case !errors.Is(err, save.ErrNotFound):
		return err
	}

	return nil
}
