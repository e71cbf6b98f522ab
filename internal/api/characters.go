package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/louisbranch/assetdeck/internal/assets"
)

func characterFields(c assets.Character) url.Values {
	fields := url.Values{}
	fields.Set("name", c.Name)
	fields.Set("sub_title", c.Subtitle)
	fields.Set("bio_description", c.BioDescription)
	fields.Set("character_line", c.CharacterLine)
	fields.Set("birthday", c.Birthday)
	fields.Set("ability_name", c.AbilityName)
	fields.Set("ability_description", c.AbilityDescription)
	fields.Set("gender", string(c.Gender))
	fields.Set("age", strconv.Itoa(c.Age))
	fields.Set("badge", c.Badge)
	return fields
}

// ListCharacters returns the full current character set in server order.
func (c *Client) ListCharacters(ctx context.Context) ([]assets.Character, error) {
	var out []assets.Character
	if err := c.do(ctx, http.MethodGet, charactersPath, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCharacter fetches a single character by its server-assigned id.
func (c *Client) GetCharacter(ctx context.Context, id string) (assets.Character, error) {
	var out assets.Character
	if err := c.do(ctx, http.MethodGet, charactersPath+"/"+url.PathEscape(id), nil, "", &out); err != nil {
		return assets.Character{}, err
	}
	return out, nil
}

// CreateCharacter submits a new character, multipart when an image file is
// attached.
func (c *Client) CreateCharacter(ctx context.Context, record assets.Character, file *Upload) (MutationResult[assets.Character], error) {
	body, contentType, err := encodePayload(characterFields(record), file)
	if err != nil {
		return MutationResult[assets.Character]{}, err
	}
	var envelope mutationEnvelope[assets.Character]
	if err := c.do(ctx, http.MethodPost, charactersPath, body, contentType, &envelope); err != nil {
		return MutationResult[assets.Character]{}, err
	}
	return MutationResult[assets.Character]{Record: envelope.Data, Message: envelope.Message}, nil
}

// UpdateCharacter submits changed fields for an existing character. A stale
// id surfaces as NOT_FOUND; the caller displays it and never retries.
func (c *Client) UpdateCharacter(ctx context.Context, id string, record assets.Character, file *Upload) (MutationResult[assets.Character], error) {
	body, contentType, err := encodePayload(characterFields(record), file)
	if err != nil {
		return MutationResult[assets.Character]{}, err
	}
	var envelope mutationEnvelope[assets.Character]
	if err := c.do(ctx, http.MethodPut, charactersPath+"/"+url.PathEscape(id), body, contentType, &envelope); err != nil {
		return MutationResult[assets.Character]{}, err
	}
	return MutationResult[assets.Character]{Record: envelope.Data, Message: envelope.Message}, nil
}

// DeleteCharacter removes a character by id. Deleting an already-deleted id
// surfaces NOT_FOUND, never a crash.
func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, charactersPath+"/"+url.PathEscape(id), nil, "", nil)
}
