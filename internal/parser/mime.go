package parser

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"invoicescan/internal/config"
)

var imageMIMETypes = []string{"image/png", "image/gif", "image/webp", "image/jpeg"}

// MIMETypeFromFilename guesses the image type from the filename suffix, case-insensitively.
// Anything that is not .png, .gif or .webp is reported as image/jpeg.
func MIMETypeFromFilename(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".gif"):
		return "image/gif"
	case strings.HasSuffix(name, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// DetectMIMEType picks the image type for an upload. With the content strategy the
// bytes are sniffed first and the filename rule is only used when they are not a
// recognized image.
func DetectMIMEType(data []byte, filename, strategy string) string {
	if strategy == config.MIMEDetectionContent {
		detected := mimetype.Detect(data)
		for _, t := range imageMIMETypes {
			if detected.Is(t) {
				return t
			}
		}
	}
	return MIMETypeFromFilename(filename)
}
