package validation

import (
	"fmt"

	dErrors "secureid/pkg/domain-errors"
)

// Document image limits
const (
	// MaxImageBytes is the largest document or face image accepted, before
	// base64 encoding. Three encoded images stay under the service's body limit.
	MaxImageBytes = 10 << 20
)

// CheckByteSize rejects a payload larger than max bytes.
func CheckByteSize(fieldName string, size, max int64) error {
	if size > max {
		return dErrors.New(dErrors.CodeIllegalArgument, fmt.Sprintf("%s exceeds max size of %d bytes", fieldName, max))
	}
	return nil
}
