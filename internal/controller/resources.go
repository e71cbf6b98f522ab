package controller

import (
	"strconv"
	"strings"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/assets"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// Characters builds the controller managing the character list.
func Characters(client *api.Client) *Controller[assets.Character] {
	return New(Resource[assets.Character]{
		Name:       "characters",
		List:       client.ListCharacters,
		Create:     client.CreateCharacter,
		Update:     client.UpdateCharacter,
		Delete:     client.DeleteCharacter,
		ID:         func(c assets.Character) string { return c.ID },
		SearchText: assets.Character.SearchText,
		ToForm:     characterToForm,
		FromForm:   characterFromForm,
	})
}

// Pets builds the controller managing the pet list.
func Pets(client *api.Client) *Controller[assets.Pet] {
	return New(Resource[assets.Pet]{
		Name:       "pets",
		List:       client.ListPets,
		Create:     client.CreatePet,
		Update:     client.UpdatePet,
		Delete:     client.DeletePet,
		ID:         func(p assets.Pet) string { return p.ID },
		SearchText: assets.Pet.SearchText,
		ToForm:     petToForm,
		FromForm:   petFromForm,
	})
}

// Vehicles builds the controller managing the vehicle list.
func Vehicles(client *api.Client) *Controller[assets.Vehicle] {
	return New(Resource[assets.Vehicle]{
		Name:       "vehicles",
		List:       client.ListVehicles,
		Create:     client.CreateVehicle,
		Update:     client.UpdateVehicle,
		Delete:     client.DeleteVehicle,
		ID:         func(v assets.Vehicle) string { return v.ID },
		SearchText: assets.Vehicle.SearchText,
		ToForm:     vehicleToForm,
		FromForm:   vehicleFromForm,
	})
}

func characterToForm(c assets.Character) Form {
	birthday := c.Birthday
	if t, err := assets.ParseBirthday(birthday); err == nil {
		birthday = assets.FormatBirthday(t)
	}
	return Form{
		Values: map[string]string{
			"name":                c.Name,
			"sub_title":           c.Subtitle,
			"bio_description":     c.BioDescription,
			"character_line":      c.CharacterLine,
			"birthday":            birthday,
			"ability_name":        c.AbilityName,
			"ability_description": c.AbilityDescription,
			"gender":              string(c.Gender),
			"age":                 strconv.Itoa(c.Age),
			"badge":               c.Badge,
		},
		ImagePreview: c.Image,
	}
}

func characterFromForm(form Form) (assets.Character, error) {
	record := assets.Character{
		Name:               formValue(form, "name"),
		Subtitle:           formValue(form, "sub_title"),
		BioDescription:     formValue(form, "bio_description"),
		CharacterLine:      formValue(form, "character_line"),
		AbilityName:        formValue(form, "ability_name"),
		AbilityDescription: formValue(form, "ability_description"),
		Gender:             assets.Gender(formValue(form, "gender")),
		Badge:              formValue(form, "badge"),
	}
	if raw := formValue(form, "age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return assets.Character{}, apperrors.WithMetadata(apperrors.CodeValidationInvalidAge,
				"age must be a number", map[string]string{"value": raw})
		}
		record.Age = age
	}
	if raw := formValue(form, "birthday"); raw != "" {
		birthday, err := assets.ParseBirthday(raw)
		if err != nil {
			return assets.Character{}, err
		}
		record.Birthday = assets.FormatBirthday(birthday)
	}
	if err := record.Validate(); err != nil {
		return assets.Character{}, err
	}
	return record, nil
}

func petToForm(p assets.Pet) Form {
	return Form{
		Values: map[string]string{
			"name":         p.Name,
			"sub_title":    p.Subtitle,
			"description":  p.Description,
			"ability_name": p.AbilityName,
		},
		ImagePreview: p.Image,
	}
}

func petFromForm(form Form) (assets.Pet, error) {
	record := assets.Pet{
		Name:        formValue(form, "name"),
		Subtitle:    formValue(form, "sub_title"),
		Description: formValue(form, "description"),
		AbilityName: formValue(form, "ability_name"),
	}
	if err := record.Validate(); err != nil {
		return assets.Pet{}, err
	}
	return record, nil
}

func vehicleToForm(v assets.Vehicle) Form {
	return Form{
		Values: map[string]string{
			"name":                v.Name,
			"hp":                  strconv.Itoa(v.Horsepower),
			"acceleration_torque": strconv.Itoa(v.AccelerationTorque),
			"speed":               strconv.Itoa(v.Speed),
			"control":             strconv.Itoa(v.Control),
			"seats":               strconv.Itoa(v.Seats),
			"ideal_use_case":      v.IdealUseCase,
		},
		ImagePreview: v.Image,
	}
}

func vehicleFromForm(form Form) (assets.Vehicle, error) {
	record := assets.Vehicle{
		Name:         formValue(form, "name"),
		IdealUseCase: formValue(form, "ideal_use_case"),
	}
	for _, field := range []struct {
		key string
		dst *int
	}{
		{"hp", &record.Horsepower},
		{"acceleration_torque", &record.AccelerationTorque},
		{"speed", &record.Speed},
		{"control", &record.Control},
		{"seats", &record.Seats},
	} {
		raw := formValue(form, field.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return assets.Vehicle{}, apperrors.WithMetadata(apperrors.CodeValidationInvalidRange,
				field.key+" must be a number", map[string]string{"value": raw})
		}
		*field.dst = n
	}
	if err := record.Validate(); err != nil {
		return assets.Vehicle{}, err
	}
	return record, nil
}

func formValue(form Form, key string) string {
	return strings.TrimSpace(form.Values[key])
}
