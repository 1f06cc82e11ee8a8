package engine

import (
	"fmt"
	"strings"
)

// UnsupportedLanguageError reports a language code outside the supported set.
type UnsupportedLanguageError struct {
	Code      string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q; supported: %s", e.Code, strings.Join(e.Supported, ", "))
}

// ModelNotInstalledError reports missing model data for a supported language
// when auto-install was not requested. Remediation tells the user how to fix it.
type ModelNotInstalledError struct {
	Code        string
	Model       string
	Remediation string
}

func (e *ModelNotInstalledError) Error() string {
	return fmt.Sprintf("model %q for language %q is not installed: %s", e.Model, e.Code, e.Remediation)
}

// ModelInstallFailedError reports that an attempted model installation did
// not leave a loadable model behind.
type ModelInstallFailedError struct {
	Code  string
	Model string
	Err   error
}

func (e *ModelInstallFailedError) Error() string {
	return fmt.Sprintf("install of model %q for language %q failed: %v", e.Model, e.Code, e.Err)
}

func (e *ModelInstallFailedError) Unwrap() error { return e.Err }
