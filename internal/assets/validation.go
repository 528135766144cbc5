package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a name is safe to join into an embedded
// filesystem path. Names must be simple identifiers without separators,
// traversal sequences, or null bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q contains path separator", ErrInvalidAssetName, name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrInvalidAssetName, name)
	}
	return nil
}
