package boardhints

import "github.com/boardgen/boardcore/pkg/schematic"

// StaticAdapter returns a fixed Suggestions value regardless of the
// schematic it is asked about. It exists for tests and for callers that
// want to supply hand-authored hints without standing up a real oracle.
type StaticAdapter struct {
	Suggestions Suggestions
	Err         error
}

// Suggest implements Adapter.
func (a StaticAdapter) Suggest(*schematic.Schematic) (Suggestions, error) {
	if a.Err != nil {
		return Suggestions{}, a.Err
	}
	return a.Suggestions, nil
}

// FailingAdapter always returns Err, used to exercise the core's
// failure-tolerance path in tests.
type FailingAdapter struct {
	Err error
}

// Suggest implements Adapter.
func (a FailingAdapter) Suggest(*schematic.Schematic) (Suggestions, error) {
	return Suggestions{}, a.Err
}
