package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/louisbranch/assetdeck/internal/assets"
)

func vehicleFields(v assets.Vehicle) url.Values {
	fields := url.Values{}
	fields.Set("name", v.Name)
	fields.Set("hp", strconv.Itoa(v.Horsepower))
	fields.Set("acceleration_torque", strconv.Itoa(v.AccelerationTorque))
	fields.Set("speed", strconv.Itoa(v.Speed))
	fields.Set("control", strconv.Itoa(v.Control))
	fields.Set("seats", strconv.Itoa(v.Seats))
	fields.Set("ideal_use_case", v.IdealUseCase)
	return fields
}

// ListVehicles returns the full current vehicle set in server order.
func (c *Client) ListVehicles(ctx context.Context) ([]assets.Vehicle, error) {
	var out []assets.Vehicle
	if err := c.do(ctx, http.MethodGet, vehiclesPath, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVehicle fetches a single vehicle by its server-assigned id.
func (c *Client) GetVehicle(ctx context.Context, id string) (assets.Vehicle, error) {
	var out assets.Vehicle
	if err := c.do(ctx, http.MethodGet, vehiclesPath+"/"+url.PathEscape(id), nil, "", &out); err != nil {
		return assets.Vehicle{}, err
	}
	return out, nil
}

// CreateVehicle submits a new vehicle, multipart when an image file is
// attached.
func (c *Client) CreateVehicle(ctx context.Context, record assets.Vehicle, file *Upload) (MutationResult[assets.Vehicle], error) {
	body, contentType, err := encodePayload(vehicleFields(record), file)
	if err != nil {
		return MutationResult[assets.Vehicle]{}, err
	}
	var envelope mutationEnvelope[assets.Vehicle]
	if err := c.do(ctx, http.MethodPost, vehiclesPath, body, contentType, &envelope); err != nil {
		return MutationResult[assets.Vehicle]{}, err
	}
	return MutationResult[assets.Vehicle]{Record: envelope.Data, Message: envelope.Message}, nil
}

// UpdateVehicle submits changed fields for an existing vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, id string, record assets.Vehicle, file *Upload) (MutationResult[assets.Vehicle], error) {
	body, contentType, err := encodePayload(vehicleFields(record), file)
	if err != nil {
		return MutationResult[assets.Vehicle]{}, err
	}
	var envelope mutationEnvelope[assets.Vehicle]
	if err := c.do(ctx, http.MethodPut, vehiclesPath+"/"+url.PathEscape(id), body, contentType, &envelope); err != nil {
		return MutationResult[assets.Vehicle]{}, err
	}
	return MutationResult[assets.Vehicle]{Record: envelope.Data, Message: envelope.Message}, nil
}

// DeleteVehicle removes a vehicle by id.
func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, vehiclesPath+"/"+url.PathEscape(id), nil, "", nil)
}
