package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a credential comes from. The cli resolves the
// platform api key and the Gemini key through it.
type Source struct {
	// Name appears in error messages so the user knows which credential
	// failed to load.
	Name string
	// Value is an inline credential provided via configuration.
	Value string
	// File points to a file holding the credential. When set it wins over
	// Value.
	File string
}

// Load resolves the credential from the source. File content takes precedence
// over the inline value and the result is always trimmed; a blank result is an
// error naming the source.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "credential"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	value := strings.TrimSpace(src.Value)
	if value == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
