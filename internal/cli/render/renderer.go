package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// Renderer writes a use case result to the terminal
type Renderer[T any] interface {
	Render(result T) error
}

// writeJSON prints v as indented JSON followed by a newline
func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
