package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"countdown/internal/core/model"
)

// Keys under which the timer record is stored.
const (
	KeyTimerDuration           = "TimerDuration"
	KeyTimerEndDate            = "TimerEndDate"
	KeyTimeRemainingAfterPause = "TimeRemainingAfterPause"
)

// TimerRepository maps a timer record onto three store keys. Durations are
// stored as decimal seconds and the end instant as RFC 3339 in UTC.
type TimerRepository struct {
	store Store
}

// NewTimerRepository returns a repository over store.
func NewTimerRepository(store Store) *TimerRepository {
	return &TimerRepository{store: store}
}

// Save writes record, removing the field that belongs to the other running state.
func (repo *TimerRepository) Save(record model.TimerRecord) error {
	var setKey, setValue, staleKey string
	switch state := record.State.(type) {
	case model.Active:
		setKey = KeyTimerEndDate
		setValue = state.EndAt.UTC().Format(time.RFC3339Nano)
		staleKey = KeyTimeRemainingAfterPause
	case model.Paused:
		setKey = KeyTimeRemainingAfterPause
		setValue = formatSeconds(state.Remaining)
		staleKey = KeyTimerEndDate
	case model.Stopped, nil:
		return ErrStoppedRecord
	}

	if err := repo.store.Set(KeyTimerDuration, formatSeconds(record.Duration)); err != nil {
		return err
	}
	if err := repo.store.Set(setKey, setValue); err != nil {
		return err
	}
	return repo.store.Delete(staleKey)
}

// Load reads the stored record. ok is false unless a positive duration is
// stored together with an end date or a positive paused remainder.
func (repo *TimerRepository) Load() (model.TimerRecord, bool, error) {
	rawDuration, found, err := repo.store.Get(KeyTimerDuration)
	if err != nil {
		return model.TimerRecord{}, false, err
	}
	if !found {
		return model.TimerRecord{}, false, nil
	}
	duration, err := parseSeconds(rawDuration)
	if err != nil {
		return model.TimerRecord{}, false, corrupt(KeyTimerDuration, err)
	}
	if duration <= 0 {
		return model.TimerRecord{}, false, nil
	}

	record := model.TimerRecord{Duration: duration, State: model.Stopped{}}

	rawEnd, found, err := repo.store.Get(KeyTimerEndDate)
	if err != nil {
		return model.TimerRecord{}, false, err
	}
	if found {
		endAt, err := time.Parse(time.RFC3339Nano, rawEnd)
		if err != nil {
			return model.TimerRecord{}, false, corrupt(KeyTimerEndDate, err)
		}
		record.State = model.Active{EndAt: endAt}
		return record, true, nil
	}

	rawRemaining, found, err := repo.store.Get(KeyTimeRemainingAfterPause)
	if err != nil {
		return model.TimerRecord{}, false, err
	}
	if !found {
		return model.TimerRecord{}, false, nil
	}
	remaining, err := parseSeconds(rawRemaining)
	if err != nil {
		return model.TimerRecord{}, false, corrupt(KeyTimeRemainingAfterPause, err)
	}
	if remaining <= 0 {
		return model.TimerRecord{}, false, nil
	}
	record.State = model.Paused{Remaining: remaining}
	return record, true, nil
}

// Clear removes every timer key. Clearing an empty store is not an error.
func (repo *TimerRepository) Clear() error {
	var errs []error
	for _, key := range []string{KeyTimerDuration, KeyTimerEndDate, KeyTimeRemainingAfterPause} {
		if err := repo.store.Delete(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func formatSeconds(duration time.Duration) string {
	return strconv.FormatFloat(duration.Seconds(), 'f', -1, 64)
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

func corrupt(key string, err error) error {
	return &OpError{Op: "load", Key: key, Err: fmt.Errorf("%w: %v", ErrCorruptRecord, err)}
}
