package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
)

// imageFieldName is the fixed multipart part name the backend expects for
// uploaded images.
const imageFieldName = "image"

// Upload is an optional image attachment for a create or update submission.
type Upload struct {
	Filename string
	Content  []byte
}

// encodePayload builds the request body for a create or update call. With a
// file attached the payload is multipart with every scalar field as a form
// field; otherwise it is a plain URL-encoded form.
func encodePayload(fields url.Values, file *Upload) (io.Reader, string, error) {
	if file == nil {
		return strings.NewReader(fields.Encode()), "application/x-www-form-urlencoded", nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", key, err)
			}
		}
	}
	part, err := writer.CreateFormFile(imageFieldName, file.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart payload: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
