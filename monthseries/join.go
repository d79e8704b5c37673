package monthseries

import "errors"

var ErrNoOverlap = errors.New("series share no months")

// Join restricts two series to their common months and returns them aligned,
// one value pair per shared month. Since both inputs are gap-free the overlap
// is a single contiguous range.
func Join(a, b *Series) (*Series, *Series, error) {
	start := a.Start()
	if b.Start().After(start) {
		start = b.Start()
	}
	end := a.End()
	if b.End().Before(end) {
		end = b.End()
	}
	if end.Before(start) {
		return nil, nil, ErrNoOverlap
	}

	exclEnd := end.AddDate(0, 1, 0)
	aJoined, err := a.Window(start, exclEnd)
	if err != nil {
		return nil, nil, err
	}
	bJoined, err := b.Window(start, exclEnd)
	if err != nil {
		return nil, nil, err
	}
	return aJoined, bJoined, nil
}
