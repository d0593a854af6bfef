package enums

import "fmt"

// MediaKind discriminates what a testimonial's media field must contain.
type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindNoMedia MediaKind = "no-media"

	// legacyMediaKindNone predates MediaKindNoMedia in stored records.
	legacyMediaKindNone = "none"
)

var validMediaKinds = []MediaKind{
	MediaKindImage,
	MediaKindVideo,
	MediaKindNoMedia,
}

// String returns the literal string for the kind.
func (m MediaKind) String() string {
	return string(m)
}

// IsValid reports whether the kind is known.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// NormalizeMediaKind maps empty and legacy values onto the canonical set.
// Unknown values pass through so callers can reject them.
func NormalizeMediaKind(value string) MediaKind {
	if value == "" || value == legacyMediaKindNone {
		return MediaKindNoMedia
	}
	return MediaKind(value)
}

// ParseMediaKind converts raw input into a MediaKind, accepting legacy aliases.
func ParseMediaKind(value string) (MediaKind, error) {
	kind := NormalizeMediaKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid media kind %q", value)
	}
	return kind, nil
}
