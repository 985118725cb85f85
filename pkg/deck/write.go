package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

// WriteResults encodes results as an indented JSON array.
func WriteResults(w io.Writer, results []pipeline.SlideResult) error {
	if results == nil {
		results = []pipeline.SlideResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes results to path, creating or truncating the file.
func Export(path string, results []pipeline.SlideResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
