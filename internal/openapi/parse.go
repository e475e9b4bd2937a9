package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"apiglass/internal/errdef"
)

var (
	ErrEmptySpec         = errdef.New(errdef.CodeParse, "please provide a Swagger/OpenAPI specification")
	ErrInvalidSpecFormat = errdef.New(errdef.CodeParse, "please provide a valid JSON or YAML OpenAPI specification")
	ErrNotOpenAPI        = errdef.New(errdef.CodeSpec, `invalid OpenAPI/Swagger specification: missing "openapi" or "swagger" field`)
	ErrNoEndpoints       = errdef.New(errdef.CodeSpec, "no valid endpoints found in the specification")
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	DialectOpenAPI = "openapi"
	DialectSwagger = "swagger"
)

// Document is a decoded, version-checked spec.
type Document struct {
	Format string

	root    Object
	dialect string
	version string
}

func (d *Document) Root() Object { return d.root }

func (d *Document) Dialect() string { return d.dialect }

func (d *Document) Version() string { return d.version }

func (d *Document) Title() string {
	info, _ := getObject(d.root, "info")
	return strings.TrimSpace(getString(info, "title"))
}

type parseAttempt struct {
	format string
	decode func(text string) (any, error)
}

// JSON goes first: it is the stricter grammar, and YAML would happily accept
// a lot of broken JSON-looking input.
var parseChain = []parseAttempt{
	{format: FormatJSON, decode: decodeJSON},
	{format: FormatYAML, decode: decodeYAML},
}

// Parse decodes raw spec text and checks for the version marker.
func Parse(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySpec
	}

	root, format, err := decode(text)
	if err != nil {
		return nil, ErrInvalidSpecFormat
	}

	obj, ok := root.(Object)
	if !ok {
		return nil, ErrNotOpenAPI
	}

	doc := &Document{Format: format, root: obj}
	for _, dialect := range []string{DialectOpenAPI, DialectSwagger} {
		v, ok := lookup(obj, dialect)
		if !ok {
			continue
		}
		if _, isBool := v.(bool); isBool {
			continue
		}
		if version := scalarString(v); version != "" {
			doc.dialect = dialect
			doc.version = version
			return doc, nil
		}
	}
	return nil, ErrNotOpenAPI
}

func decode(text string) (any, string, error) {
	var errs []error
	for _, attempt := range parseChain {
		v, err := attempt.decode(text)
		if err == nil {
			return v, attempt.format, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", attempt.format, err))
	}
	return nil, "", errors.Join(errs...)
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	v, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, float64, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// alias chains deeper than this are treated as cycles
const maxYAMLDepth = 512

func decodeYAML(text string) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return convertYAML(&root, 0)
}

func convertYAML(n *yaml.Node, depth int) (any, error) {
	if n == nil {
		return nil, nil
	}
	if depth > maxYAMLDepth {
		return nil, errors.New("yaml document nests too deeply")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return convertYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := convertYAML(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			val, err := convertYAML(valNode, depth+1)
			if err != nil {
				return nil, err
			}
			if keyNode.ShortTag() == "!!merge" {
				mergeYAML(obj, val)
				continue
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
}

// mergeYAML applies a "<<" merge: keys already present win.
func mergeYAML(dst Object, src any) {
	switch t := src.(type) {
	case Object:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if _, exists := dst.Get(pair.Key); !exists {
				dst.Set(pair.Key, pair.Value)
			}
		}
	case []any:
		for _, item := range t {
			mergeYAML(dst, item)
		}
	}
}

// yamlScalar maps scalars onto the same value set the JSON decoder produces.
func yamlScalar(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil, string, bool, float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case time.Time:
		return n.Value, nil
	default:
		if f, ok := t.(float32); ok && !math.IsNaN(float64(f)) {
			return float64(f), nil
		}
		return n.Value, nil
	}
}
