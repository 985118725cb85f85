package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

// Shape reports which input shape a document used.
type Shape int

const (
	ShapeSlide Shape = iota
	ShapeArray
	ShapeDeck
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeDeck:
		return "deck"
	default:
		return "slide"
	}
}

// Parse decodes a deck document.
func Parse(data []byte) ([]content.Slide, Shape, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ShapeSlide, errors.New(errors.ErrCodeInvalidInput, "empty document")
	}

	switch data[0] {
	case '[':
		slides, err := decodeArray(data)
		return slides, ShapeArray, err
	case '{':
		var shape struct {
			Slides json.RawMessage `json:"slides"`
		}
		if err := json.Unmarshal(data, &shape); err != nil {
			return nil, ShapeSlide, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode deck")
		}
		if s := bytes.TrimSpace(shape.Slides); len(s) > 0 && s[0] == '[' {
			slides, err := decodeArray(s)
			return slides, ShapeDeck, err
		}
		var s content.Slide
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, ShapeSlide, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode slide")
		}
		return []content.Slide{s}, ShapeSlide, nil
	default:
		return nil, ShapeSlide, errors.New(errors.ErrCodeInvalidFormat, "expected a slide object, an array of slides or {\"slides\": [...]}")
	}
}

func decodeArray(data []byte) ([]content.Slide, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode slides")
	}
	slides := make([]content.Slide, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &slides[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "slide %d", i)
		}
	}
	return slides, nil
}

// ReadJSON reads a whole deck document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]content.Slide, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	slides, _, err := Parse(data)
	return slides, err
}

// Import reads the deck at path. The path "-" reads standard input.
func Import(path string) ([]content.Slide, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	slides, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return slides, nil
}
