package courier

import (
	"errors"
	"fmt"
	"math"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

// ErrPositionIsNotConstructed is returned when a zero-value Position is used.
var ErrPositionIsNotConstructed = errs.NewValueIsRequiredError("position must be created via NewPosition")

// Position is one geolocation fix of the courier device.
type Position struct {
	point      kernel.GeoPoint
	accuracy   float64
	capturedAt time.Time
	guard      guard.ConstructorGuard
}

// NewPosition validates a fix. accuracy is the radius in metres and must be a
// finite non-negative number; capturedAt must be set.
func NewPosition(point kernel.GeoPoint, accuracy float64, capturedAt time.Time) (Position, error) {
	var errList []error
	if err := point.Validate(); err != nil {
		errList = append(errList, err)
	}
	if math.IsNaN(accuracy) || math.IsInf(accuracy, 0) || accuracy < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"accuracy", fmt.Errorf("%v is not a finite non-negative number", accuracy)))
	}
	if capturedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("captured at"))
	}
	if err := errors.Join(errList...); err != nil {
		return Position{}, err
	}

	return Position{
		point:      point,
		accuracy:   accuracy,
		capturedAt: capturedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (p Position) Validate() error {
	return p.guard.Validate(ErrPositionIsNotConstructed)
}

func (p Position) Point() kernel.GeoPoint { return p.point }
func (p Position) Accuracy() float64      { return p.accuracy }
func (p Position) CapturedAt() time.Time  { return p.capturedAt }

// IsFresh reports whether the fix is no older than maxAge at now.
func (p Position) IsFresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(p.capturedAt) <= maxAge
}
