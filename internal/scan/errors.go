package scan

import (
	"errors"
	"fmt"
)

// ErrInvalidUpload means the batch itself was unusable: zero files or more
// than MaxImages.
var ErrInvalidUpload = errors.New("invalid upload: between 1 and 5 images required")

// ErrNoExtractableData is the sentinel matched by errors.Is against
// *NoDataError.
var ErrNoExtractableData = errors.New("no extractable data in any image")

// NoDataError reports a batch where no image yielded an extraction record.
// AllHEIC distinguishes the case where every upload was an HEIC/HEIF photo,
// which deserves a remediation hint rather than a generic failure.
type NoDataError struct {
	AllHEIC   bool
	Processed int
	Total     int
}

func (e *NoDataError) Error() string {
	if e.AllHEIC {
		return fmt.Sprintf("no extractable data: %d/%d images, all HEIC/HEIF", e.Processed, e.Total)
	}
	return fmt.Sprintf("no extractable data: %d/%d images processed", e.Processed, e.Total)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoExtractableData
}
