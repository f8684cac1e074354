// Package engine is the cessation analytics core: milestone progress,
// behavioural distributions, streaks, financial savings and rule-based
// insights. Every function is pure — it takes an immutable event
// snapshot, an optional quit profile and an explicit reference time,
// and returns freshly derived values. Nothing here reads the wall
// clock or performs I/O, so results are deterministic and the package
// is safe for concurrent use across users.
package engine

import (
	"errors"
	"fmt"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// ErrZeroNow is returned when a caller passes the zero time as the
// reference instant. That is a caller bug rather than dirty user data,
// so it fails fast instead of being absorbed into a diagnostic.
var ErrZeroNow = errors.New("engine: reference time must not be the zero time")

// Diagnostic codes.
const (
	DiagMissingProfile     = "missing_profile"
	DiagMalformedTimestamp = "malformed_timestamp"
	DiagNegativeQuantity   = "negative_quantity"
	DiagZeroUnitsPerPack   = "zero_units_per_pack"
)

// Diagnostic is a non-fatal note about input data that was normalized
// to a safe default instead of causing a failure.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	EventID string `json:"event_id,omitempty"`
}

func missingProfileDiag() Diagnostic {
	return Diagnostic{
		Code:    DiagMissingProfile,
		Message: "no quit profile set; elapsed time defaults to zero",
	}
}

func malformedTimestampDiag(e *internal.ConsumptionEvent) Diagnostic {
	return Diagnostic{
		Code:    DiagMalformedTimestamp,
		Message: fmt.Sprintf("event has unparsable timestamp %q; excluded from time-based computations", e.ConsumptionTimestamp),
		EventID: e.ID,
	}
}

func negativeQuantityDiag(e *internal.ConsumptionEvent) Diagnostic {
	return Diagnostic{
		Code:    DiagNegativeQuantity,
		Message: fmt.Sprintf("event has negative quantity %d", e.Quantity),
		EventID: e.ID,
	}
}

// VetEvents reports every malformed field in the snapshot without
// excluding anything: unparsable timestamps and negative quantities.
// Computations that depend on a malformed field exclude the event
// themselves and report their own diagnostics.
func VetEvents(events []internal.ConsumptionEvent) []Diagnostic {
	var diags []Diagnostic
	for i := range events {
		e := &events[i]
		if _, ok := e.OccurredAt(); !ok {
			diags = append(diags, malformedTimestampDiag(e))
		}
		if e.Quantity < 0 {
			diags = append(diags, negativeQuantityDiag(e))
		}
	}
	return diags
}
