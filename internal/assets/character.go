// Package assets defines the canonical game asset records managed by the
// console and the validation rules applied before any record leaves the
// client.
package assets

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// BirthdayFormat is the canonical wire encoding for character birthdays.
const BirthdayFormat = "2006-01-02"

// birthdayLegacyFormat is the compact encoding older backend iterations
// served. Records carrying it are normalized on the way into a form.
const birthdayLegacyFormat = "02/01/2006"

// Gender enumerates the accepted character genders.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender validates a raw gender value.
func ParseGender(value string) (Gender, error) {
	switch Gender(strings.TrimSpace(value)) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeValidationInvalidGender,
			"gender must be Male, Female or Other",
			map[string]string{"value": value})
	}
}

// Character is a playable character record as served by the asset API. The
// ID and stored image path are server-assigned and treated as opaque.
type Character struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Subtitle           string `json:"sub_title"`
	BioDescription     string `json:"bio_description"`
	CharacterLine      string `json:"character_line"`
	Birthday           string `json:"birthday"`
	AbilityName        string `json:"ability_name"`
	AbilityDescription string `json:"ability_description"`
	Gender             Gender `json:"gender"`
	Age                int    `json:"age"`
	Badge              string `json:"badge"`
	Image              string `json:"image,omitempty"`
}

// Validate checks the client-side invariants before a create or update
// submission is allowed to reach the network.
func (c Character) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.New(apperrors.CodeValidationRequiredField, "character name is required")
	}
	if _, err := ParseGender(string(c.Gender)); err != nil {
		return err
	}
	if c.Age <= 0 {
		return apperrors.New(apperrors.CodeValidationInvalidAge, "age must be a positive integer")
	}
	if strings.TrimSpace(c.AbilityName) == "" {
		return apperrors.New(apperrors.CodeValidationRequiredField, "ability name is required")
	}
	if c.Birthday != "" {
		if _, err := ParseBirthday(c.Birthday); err != nil {
			return err
		}
	}
	return nil
}

// SearchText returns the fields a client-side search matches against.
func (c Character) SearchText() string {
	return strings.Join([]string{c.Name, c.AbilityName, c.BioDescription}, "\n")
}

// ParseBirthday parses a birthday in the canonical wire format, tolerating
// the legacy compact encoding, and returns a structured date value.
func ParseBirthday(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(BirthdayFormat, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(birthdayLegacyFormat, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.WithMetadata(apperrors.CodeValidationInvalidDate,
		"birthday must be formatted as "+BirthdayFormat,
		map[string]string{"value": value})
}

// FormatBirthday renders a structured date back into the wire encoding.
func FormatBirthday(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(BirthdayFormat)
}
