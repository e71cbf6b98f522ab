package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/louisbranch/assetdeck/internal/assets"
)

func petFields(p assets.Pet) url.Values {
	fields := url.Values{}
	fields.Set("name", p.Name)
	fields.Set("sub_title", p.Subtitle)
	fields.Set("description", p.Description)
	fields.Set("ability_name", p.AbilityName)
	return fields
}

// ListPets returns the full current pet set in server order.
func (c *Client) ListPets(ctx context.Context) ([]assets.Pet, error) {
	var out []assets.Pet
	if err := c.do(ctx, http.MethodGet, petsPath, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPet fetches a single pet by its server-assigned id.
func (c *Client) GetPet(ctx context.Context, id string) (assets.Pet, error) {
	var out assets.Pet
	if err := c.do(ctx, http.MethodGet, petsPath+"/"+url.PathEscape(id), nil, "", &out); err != nil {
		return assets.Pet{}, err
	}
	return out, nil
}

// CreatePet submits a new pet, multipart when an image file is attached.
func (c *Client) CreatePet(ctx context.Context, record assets.Pet, file *Upload) (MutationResult[assets.Pet], error) {
	body, contentType, err := encodePayload(petFields(record), file)
	if err != nil {
		return MutationResult[assets.Pet]{}, err
	}
	var envelope mutationEnvelope[assets.Pet]
	if err := c.do(ctx, http.MethodPost, petsPath, body, contentType, &envelope); err != nil {
		return MutationResult[assets.Pet]{}, err
	}
	return MutationResult[assets.Pet]{Record: envelope.Data, Message: envelope.Message}, nil
}

// UpdatePet submits changed fields for an existing pet.
func (c *Client) UpdatePet(ctx context.Context, id string, record assets.Pet, file *Upload) (MutationResult[assets.Pet], error) {
	body, contentType, err := encodePayload(petFields(record), file)
	if err != nil {
		return MutationResult[assets.Pet]{}, err
	}
	var envelope mutationEnvelope[assets.Pet]
	if err := c.do(ctx, http.MethodPut, petsPath+"/"+url.PathEscape(id), body, contentType, &envelope); err != nil {
		return MutationResult[assets.Pet]{}, err
	}
	return MutationResult[assets.Pet]{Record: envelope.Data, Message: envelope.Message}, nil
}

// DeletePet removes a pet by id.
func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, petsPath+"/"+url.PathEscape(id), nil, "", nil)
}
