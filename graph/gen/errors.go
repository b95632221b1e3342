package gen

import "errors"

// ErrEmptyResponse indicates the provider returned no usable candidate
// content.
var ErrEmptyResponse = errors.New("model returned an empty response")

// ErrNoImage indicates a generation call succeeded but no image part
// came back.
var ErrNoImage = errors.New("model did not return an image")

// ErrUnsupported indicates the provider cannot perform the requested
// operation (e.g. image synthesis on a text-only provider).
var ErrUnsupported = errors.New("operation not supported by this provider")

// ErrMissingAPIKey indicates a provider was constructed without
// credentials.
var ErrMissingAPIKey = errors.New("API key is required")
