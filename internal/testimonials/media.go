package testimonial

import (
	"strings"

	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

// KindFromContentType classifies freshly uploaded media by its MIME type.
func KindFromContentType(contentType string) enums.MediaKind {
	if strings.HasPrefix(contentType, "video/") {
		return enums.MediaKindVideo
	}
	return enums.MediaKindImage
}

// KindFromURL classifies a stored media URL when no MIME type is available.
// Only the video extensions we actually serve are checked.
func KindFromURL(url string) enums.MediaKind {
	if url == "" {
		return enums.MediaKindNoMedia
	}
	trimmed := url
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, ".mp4") || strings.HasSuffix(lower, ".webm") {
		return enums.MediaKindVideo
	}
	return enums.MediaKindImage
}

// validateMediaState enforces the per-kind field requirements against the
// merged record: image needs description, rating, and a media URL; video needs
// only a media URL; no-media needs description, rating, and spread. Callers
// clear the media URL before validating a no-media record.
func validateMediaState(kind enums.MediaKind, media, description string, rating int, spread string) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown media type "+string(kind))
	}
	if rating < 0 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	switch kind {
	case enums.MediaKindImage:
		if media == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "media url is required for image testimonials")
		}
		if strings.TrimSpace(description) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "description is required for image testimonials")
		}
	case enums.MediaKindVideo:
		if media == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "media url is required for video testimonials")
		}
	case enums.MediaKindNoMedia:
		if strings.TrimSpace(description) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "description is required for no-media testimonials")
		}
		if strings.TrimSpace(spread) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "spread is required for no-media testimonials")
		}
	}
	return nil
}
