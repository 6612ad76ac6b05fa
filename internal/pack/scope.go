package pack

import (
	"fmt"
	"path/filepath"
	"strings"
)

// scopesDirName is the folder under the storage root holding one
// subfolder per named scope.
const scopesDirName = "scopes"

// ValidateScope accepts the default scope ("") and any name that is a
// single path element.
func ValidateScope(scope string) error {
	if scope == "" {
		return nil
	}
	if !isPathElement(scope) {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	return nil
}

func validatePackID(packID string) error {
	if packID == "" || !isPathElement(packID) {
		return fmt.Errorf("%w: %q", ErrInvalidPackID, packID)
	}
	return nil
}

func isPathElement(name string) bool {
	if name == "." || name == ".." || strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "default"
	}
	return scope
}
