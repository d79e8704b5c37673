package monthseries

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCutoffOrder      = errors.New("validation cutoff is not before test cutoff")
	ErrEmptyPartition   = errors.New("cutoff produces an empty partition")
	ErrCutoffOutOfRange = errors.New("cutoff outside of series range")
)

// Split partitions a series into contiguous, non-overlapping training,
// validation, and held-out test segments. Concatenated in order the three
// segments reconstruct the original series.
type Split struct {
	Train *Series
	Valid *Series
	Test  *Series
}

// SplitAt partitions the series at two month cutoffs: training covers
// [start, validStart), validation [validStart, testStart), and test
// [testStart, end]. All three partitions must be non-empty.
func (s *Series) SplitAt(validStart, testStart time.Time) (*Split, error) {
	validStart = MonthOf(validStart)
	testStart = MonthOf(testStart)

	if !validStart.Before(testStart) {
		return nil, fmt.Errorf(
			"validation start %s, test start %s, %w",
			validStart.Format("2006-01"), testStart.Format("2006-01"), ErrCutoffOrder,
		)
	}
	if validStart.Before(s.Start()) || testStart.After(s.End()) {
		return nil, fmt.Errorf(
			"series spans [%s, %s], %w",
			s.Start().Format("2006-01"), s.End().Format("2006-01"), ErrCutoffOutOfRange,
		)
	}

	train, err := s.Window(s.Start(), validStart)
	if err != nil {
		return nil, fmt.Errorf("training partition, %w", errors.Join(ErrEmptyPartition, err))
	}
	valid, err := s.Window(validStart, testStart)
	if err != nil {
		return nil, fmt.Errorf("validation partition, %w", errors.Join(ErrEmptyPartition, err))
	}
	test, err := s.Window(testStart, s.End().AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("test partition, %w", errors.Join(ErrEmptyPartition, err))
	}

	return &Split{Train: train, Valid: valid, Test: test}, nil
}
