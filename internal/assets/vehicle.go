package assets

import (
	"strings"

	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// Control values are expressed as a 0..100 rating.
const (
	ControlMin = 0
	ControlMax = 100
)

// Vehicle is a rideable asset record as served by the asset API.
type Vehicle struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Horsepower         int    `json:"hp"`
	AccelerationTorque int    `json:"acceleration_torque"`
	Speed              int    `json:"speed"`
	Control            int    `json:"control"`
	Seats              int    `json:"seats"`
	IdealUseCase       string `json:"ideal_use_case"`
	Image              string `json:"image,omitempty"`
}

// Validate checks the client-side invariants for a vehicle submission.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return apperrors.New(apperrors.CodeValidationRequiredField, "vehicle name is required")
	}
	if v.Control < ControlMin || v.Control > ControlMax {
		return apperrors.New(apperrors.CodeValidationInvalidRange, "control must be between 0 and 100")
	}
	if v.Seats <= 0 {
		return apperrors.New(apperrors.CodeValidationInvalidRange, "seat count must be a positive integer")
	}
	return nil
}

// SearchText returns the fields a client-side search matches against.
func (v Vehicle) SearchText() string {
	return strings.Join([]string{v.Name, v.IdealUseCase}, "\n")
}
