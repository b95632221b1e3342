package graph

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Value is the payload that flows over a connection during a run.
// Exactly which fields are set depends on the producing port:
//
//   - image ports set Base64Image+MIMEType (raw transforms) or ImageURL
//     (generator results, already in data-URL form)
//   - text ports set Text
//   - any ports may set any combination (generator results carry both
//     an image and the model's accompanying text)
//
// The zero Value means "no payload".
type Value struct {
	Base64Image string `json:"base64Image,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Text        string `json:"text,omitempty"`
}

// IsZero reports whether the value carries no payload at all.
func (v Value) IsZero() bool {
	return v.Base64Image == "" && v.ImageURL == "" && v.Text == ""
}

// ImagePayload is a decoded reference to an embedded image: raw base64
// bytes plus their MIME type.
type ImagePayload struct {
	Base64   string
	MIMEType string
}

// DataURL renders the payload in data-URL form for display layers.
func (p ImagePayload) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + p.Base64
}

// Bytes decodes the base64 content.
func (p ImagePayload) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.Base64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return data, nil
}

// Value converts the payload back into connection form.
func (p ImagePayload) Value() Value {
	return Value{Base64Image: p.Base64, MIMEType: p.MIMEType}
}

// NormalizeImage extracts an image payload from a connection value.
// It accepts inline base64 content or a data URL, in that order of
// preference, and fails with ErrBadPayload for anything else. This is
// the single place malformed image inputs are detected.
func NormalizeImage(v Value) (ImagePayload, error) {
	if v.Base64Image != "" && v.MIMEType != "" {
		return ImagePayload{Base64: v.Base64Image, MIMEType: v.MIMEType}, nil
	}
	if v.ImageURL != "" {
		return ParseDataURL(v.ImageURL)
	}
	return ImagePayload{}, fmt.Errorf("%w: value carries no recognizable image", ErrBadPayload)
}

// ParseDataURL splits a "data:<mime>;base64,<content>" URL into its
// payload parts.
func ParseDataURL(url string) (ImagePayload, error) {
	if !strings.HasPrefix(url, "data:") {
		return ImagePayload{}, fmt.Errorf("%w: not a data URL", ErrBadPayload)
	}
	header, content, found := strings.Cut(url, ",")
	if !found || content == "" {
		return ImagePayload{}, fmt.Errorf("%w: malformed data URL", ErrBadPayload)
	}
	mime, ok := strings.CutSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !ok || mime == "" {
		return ImagePayload{}, fmt.Errorf("%w: data URL is not base64 encoded", ErrBadPayload)
	}
	return ImagePayload{Base64: content, MIMEType: mime}, nil
}

// displayURL resolves a value to a displayable image reference, or ""
// when the value holds no image. Used by the preview executor and the
// history emission path.
func displayURL(v Value) string {
	if v.ImageURL != "" {
		return v.ImageURL
	}
	if v.Base64Image != "" && v.MIMEType != "" {
		return ImagePayload{Base64: v.Base64Image, MIMEType: v.MIMEType}.DataURL()
	}
	return ""
}
