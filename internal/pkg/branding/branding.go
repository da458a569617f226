package branding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Maximum logo edge in pixels. Anything larger gets downscaled, smaller
// logos are kept as-is.
const MaxLogoSize = 512

// Allowed logo content types.
var allowedLogoTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// LogoExtension maps an uploaded content type to the stored file extension.
// Returns false for unsupported types.
func LogoExtension(contentType string) (string, bool) {
	ext, ok := allowedLogoTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// ProcessLogo decodes an uploaded organization logo, downscales it to fit
// within MaxLogoSize and re-encodes it as PNG. The returned bytes are what
// gets stored.
func ProcessLogo(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxLogoSize || bounds.Dy() > MaxLogoSize {
		img = imaging.Fit(img, MaxLogoSize, MaxLogoSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode logo: %w", err)
	}
	return buf.Bytes(), nil
}
