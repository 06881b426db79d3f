package api_service

import "github.com/zsmartex/tradedesk/types"

// WithFallback runs primary and, only when it fails with a transient error,
// runs fallback instead. degraded reports whether the fallback result was used.
// Permanent errors are returned unchanged.
func WithFallback[T any](primary func() (T, error), fallback func() (T, error)) (result T, degraded bool, err error) {
	result, err = primary()
	if err == nil || !types.IsTemporary(err) {
		return result, false, err
	}

	result, fbErr := fallback()
	if fbErr != nil {
		return result, false, err
	}

	return result, true, nil
}
