package assets

import (
	"strings"

	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// Pet is a companion record as served by the asset API.
type Pet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Subtitle    string `json:"sub_title"`
	Description string `json:"description"`
	AbilityName string `json:"ability_name"`
	Image       string `json:"image,omitempty"`
}

// Validate checks the client-side invariants for a pet submission.
func (p Pet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.New(apperrors.CodeValidationRequiredField, "pet name is required")
	}
	if strings.TrimSpace(p.AbilityName) == "" {
		return apperrors.New(apperrors.CodeValidationRequiredField, "ability name is required")
	}
	return nil
}

// SearchText returns the fields a client-side search matches against.
func (p Pet) SearchText() string {
	return strings.Join([]string{p.Name, p.AbilityName, p.Description}, "\n")
}
