package intake

import "github.com/mmahmood233/buy-01/internal/dto"

const MaxFileSize = 2097152

const (
	ReasonSizeExceeded    = "size-exceeded"
	ReasonUnsupportedType = "unsupported-type"
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Verdict is the outcome of classifying a candidate upload. Reason and
// Message are only set on rejection.
type Verdict struct {
	Accepted bool
	Reason   string
	Message  string
}

// Classify applies the acceptance rules in order, first match wins.
// It reads only the declared size and content type, so it is safe to
// run before the file content is ever looked at.
func Classify(file dto.MediaFile) Verdict {
	if file.Size > MaxFileSize {
		return Verdict{
			Reason:  ReasonSizeExceeded,
			Message: "File size exceeds 2MB limit",
		}
	}

	if _, ok := allowedTypes[file.ContentType]; !ok {
		return Verdict{
			Reason:  ReasonUnsupportedType,
			Message: "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed",
		}
	}

	return Verdict{Accepted: true}
}
