package pkg

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotDataURI      = errors.New("not a base64 data uri")
	ErrNotImageMIME    = errors.New("data uri mime type is not an image")
	ErrInvalidBase64   = errors.New("data uri payload is not valid base64")
	ErrPayloadNotImage = errors.New("data uri payload is not an image")
)

// DataURI is a parsed data:<mimetype>;base64,<payload> reference.
type DataURI struct {
	MIMEType string
	// DeclaredMIMEType is the type written in the uri. It only differs from
	// MIMEType when ParseImageDataURI corrected it from the payload.
	DeclaredMIMEType string
	// DetectedMIMEType is sniffed from the decoded payload and may differ from MIMEType.
	DetectedMIMEType string
	Data             []byte
	Raw              string

	detected *mimetype.MIME
}

// Base64 returns the payload exactly as it appeared in the uri.
func (d *DataURI) Base64() string {
	_, payload, _ := strings.Cut(d.Raw, ",")
	return payload
}

// ParseDataURI parses a base64 data uri. Parameters between the mime type and
// ";base64" (e.g. charset) are tolerated and dropped.
func ParseDataURI(raw string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, ErrNotDataURI
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrNotDataURI
	}

	params := strings.Split(header, ";")
	if len(params) < 2 || params[len(params)-1] != "base64" {
		return nil, ErrNotDataURI
	}

	mimeType := strings.ToLower(strings.TrimSpace(params[0]))
	if mimeType == "" || !strings.Contains(mimeType, "/") {
		return nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidBase64
	}

	detected := mimetype.Detect(data)
	return &DataURI{
		MIMEType:         mimeType,
		DeclaredMIMEType: mimeType,
		DetectedMIMEType: detected.String(),
		Data:             data,
		Raw:              raw,
		detected:         detected,
	}, nil
}

// ParseImageDataURI is ParseDataURI restricted to images. Both the declared
// type and the sniffed payload must be image/*. When they disagree MIMEType is
// set to the sniffed type, since that is what the bytes really are.
func ParseImageDataURI(raw string) (*DataURI, error) {
	d, err := ParseDataURI(raw)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(d.MIMEType, "image/") {
		return nil, ErrNotImageMIME
	}

	if !strings.HasPrefix(d.detected.String(), "image/") {
		return nil, ErrPayloadNotImage
	}
	if !d.detected.Is(d.MIMEType) {
		d.MIMEType = d.detected.String()
	}
	return d, nil
}
