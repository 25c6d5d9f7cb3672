package livevalues

import "github.com/livecanvas/dashboard-backend/internal/dashboards/domain"

// PendingMarker is appended to the fallback value of a bound element whose
// code has not been observed yet.
const PendingMarker = " (pending)"

// LookupFunc resolves a data code to its live value.
type LookupFunc func(code string) (string, bool)

// DisplayValue picks the text shown for an element: the literal value when
// it has no code, the live value when one exists, otherwise the literal
// value with the pending marker.
func DisplayValue(el domain.Element, lookup LookupFunc) string {
	if el.DataCode == "" {
		return el.Value
	}
	if lookup != nil {
		if v, ok := lookup(el.DataCode); ok {
			return v
		}
	}
	return el.Value + PendingMarker
}
