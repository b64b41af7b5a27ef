package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"procurement/internal/pkg/errs"
)

var trackingNumberPattern = regexp.MustCompile(`^TRK-[A-Z0-9]{8}$`)

// DispatchInfo records how the goods left the supplier.
type DispatchInfo struct {
	driverName     string
	vehicleID      string
	trackingNumber string
	dispatchedAt   time.Time
}

// NewDispatchInfo validates the dispatch details.
//
// Parameters:
//   - driverName: required
//   - vehicleID: required, usually the licence plate
//   - trackingNumber: generated reference in the form TRK-XXXXXXXX
//   - dispatchedAt: time the order left, required
func NewDispatchInfo(driverName, vehicleID, trackingNumber string, dispatchedAt time.Time) (DispatchInfo, error) {
	driverName = strings.TrimSpace(driverName)
	vehicleID = strings.TrimSpace(vehicleID)

	var driverErr, vehicleErr, trackingErr, timeErr error
	if driverName == "" {
		driverErr = errs.NewValueIsRequiredError("driver name")
	}
	if vehicleID == "" {
		vehicleErr = errs.NewValueIsRequiredError("vehicle id")
	}
	if !trackingNumberPattern.MatchString(trackingNumber) {
		trackingErr = errs.NewValueIsInvalidErrorWithCause(
			"tracking number",
			fmt.Errorf("%q does not match TRK-XXXXXXXX", trackingNumber),
		)
	}
	if dispatchedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("dispatch time")
	}
	if err := errors.Join(driverErr, vehicleErr, trackingErr, timeErr); err != nil {
		return DispatchInfo{}, err
	}

	return DispatchInfo{
		driverName:     driverName,
		vehicleID:      vehicleID,
		trackingNumber: trackingNumber,
		dispatchedAt:   dispatchedAt.UTC(),
	}, nil
}

func (d DispatchInfo) DriverName() string      { return d.driverName }
func (d DispatchInfo) VehicleID() string       { return d.vehicleID }
func (d DispatchInfo) TrackingNumber() string  { return d.trackingNumber }
func (d DispatchInfo) DispatchedAt() time.Time { return d.dispatchedAt }
