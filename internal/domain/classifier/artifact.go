package classifier

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/careerlens/internal/domain/features"
	"github.com/xeipuuv/gojsonschema"
)

// artifact is the on-disk JSON form of a Bundle.
type artifact struct {
	Kind      string   `json:"kind"`
	Features  []string `json:"features"`
	Interests []string `json:"interests"`
	Careers   []string `json:"careers"`
	Accuracy  float64  `json:"accuracy"`
	Scaler    *Scaler  `json:"scaler,omitempty"`
	Forest    *Forest  `json:"forest,omitempty"`
	Softmax   *Softmax `json:"softmax,omitempty"`
}

const artifactSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kind", "features", "interests", "careers"],
  "properties": {
    "kind": {"type": "string", "enum": ["forest", "softmax"]},
    "features": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "interests": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "careers": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "accuracy": {"type": "number", "minimum": 0, "maximum": 1},
    "scaler": {
      "type": "object",
      "required": ["mean", "scale"],
      "properties": {
        "mean": {"type": "array", "items": {"type": "number"}},
        "scale": {"type": "array", "items": {"type": "number"}}
      }
    },
    "forest": {
      "type": "object",
      "required": ["trees", "classes"],
      "properties": {
        "classes": {"type": "integer", "minimum": 1},
        "trees": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["nodes"],
            "properties": {
              "nodes": {
                "type": "array",
                "minItems": 1,
                "items": {
                  "type": "object",
                  "required": ["feature", "threshold", "left", "right", "cover", "value"],
                  "properties": {
                    "feature": {"type": "integer", "minimum": 0},
                    "left": {"type": "integer", "minimum": -1},
                    "right": {"type": "integer", "minimum": -1},
                    "cover": {"type": "number", "minimum": 0},
                    "value": {"type": "array", "items": {"type": "number"}}
                  }
                }
              }
            }
          }
        }
      }
    },
    "softmax": {
      "type": "object",
      "required": ["weights", "bias"],
      "properties": {
        "weights": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}},
        "bias": {"type": "array", "items": {"type": "number"}}
      }
    }
  },
  "oneOf": [
    {"properties": {"kind": {"const": "forest"}}, "required": ["forest"]},
    {"properties": {"kind": {"const": "softmax"}}, "required": ["softmax"]}
  ]
}`

var schemaLoader = gojsonschema.NewStringLoader(artifactSchema)

// Load reads and validates a JSON artifact from path.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a JSON artifact.
func Decode(r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(msgs, "; "))
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	b := &Bundle{
		Scaler:    a.Scaler,
		Interests: a.Interests,
		Careers:   a.Careers,
		Features:  a.Features,
		Accuracy:  a.Accuracy,
	}
	switch a.Kind {
	case KindForest:
		b.Model = a.Forest
	case KindSoftmax:
		b.Model = a.Softmax
	}
	if err := check(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Save writes b to path as JSON.
func Save(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes b as JSON.
func Encode(w io.Writer, b *Bundle) error {
	if b == nil || b.Model == nil {
		return ErrModelUnavailable
	}
	a := artifact{
		Kind:      b.Model.Kind(),
		Features:  b.Features,
		Interests: b.Interests,
		Careers:   b.Careers,
		Accuracy:  b.Accuracy,
		Scaler:    b.Scaler,
	}
	switch m := b.Model.(type) {
	case *Forest:
		a.Forest = m
	case *Softmax:
		a.Softmax = m
	default:
		return fmt.Errorf("%w: unsupported model %T", ErrInvalidArtifact, b.Model)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// check verifies the shape constraints a schema cannot express.
func check(b *Bundle) error {
	d := len(b.Features)
	if d != features.Count {
		return fmt.Errorf("%w: %d features, want %d", ErrInvalidArtifact, d, features.Count)
	}
	if b.Scaler != nil && (len(b.Scaler.Mean) != d || len(b.Scaler.Scale) != d) {
		return fmt.Errorf("%w: scaler width does not match %d features", ErrInvalidArtifact, d)
	}
	if b.Scaler != nil {
		for _, s := range b.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("%w: zero scale", ErrInvalidArtifact)
			}
		}
	}
	k := len(b.Careers)
	switch m := b.Model.(type) {
	case *Forest:
		if m.NClasses != k {
			return fmt.Errorf("%w: forest has %d classes, %d careers", ErrInvalidArtifact, m.NClasses, k)
		}
		for ti, t := range m.Trees {
			for ni, n := range t.Nodes {
				if len(n.Value) != k {
					return fmt.Errorf("%w: tree %d node %d value width", ErrInvalidArtifact, ti, ni)
				}
				if n.Leaf() {
					continue
				}
				if n.Feature >= d || n.Left <= ni || n.Right <= ni ||
					n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
					return fmt.Errorf("%w: tree %d node %d links", ErrInvalidArtifact, ti, ni)
				}
			}
		}
	case *Softmax:
		if len(m.Weights) != k || len(m.Bias) != k {
			return fmt.Errorf("%w: softmax has %d rows, %d careers", ErrInvalidArtifact, len(m.Weights), k)
		}
		for _, w := range m.Weights {
			if len(w) != d {
				return fmt.Errorf("%w: softmax row width", ErrInvalidArtifact)
			}
		}
	}
	return nil
}
