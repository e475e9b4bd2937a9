package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// Validate runs the structural OpenAPI check and returns its findings.
// Nothing here blocks an import.
func Validate(ctx context.Context, doc *Document) []string {
	if doc == nil {
		return nil
	}

	data, err := json.Marshal(plain(doc.root))
	if err != nil {
		return []string{fmt.Sprintf("validation skipped: %v", err)}
	}

	var v3 *openapi3.T
	switch doc.Dialect() {
	case DialectSwagger:
		var v2 openapi2.T
		if err := json.Unmarshal(data, &v2); err != nil {
			return []string{fmt.Sprintf("swagger %s: %v", doc.Version(), err)}
		}
		v3, err = openapi2conv.ToV3(&v2)
		if err != nil {
			return []string{fmt.Sprintf("swagger %s: convert: %v", doc.Version(), err)}
		}
	default:
		loader := openapi3.NewLoader()
		loader.Context = ctx
		v3, err = loader.LoadFromData(data)
		if err != nil {
			return []string{fmt.Sprintf("openapi %s: %v", doc.Version(), err)}
		}
	}

	if err := v3.Validate(ctx); err != nil {
		return []string{fmt.Sprintf("%s %s: %v", doc.Dialect(), doc.Version(), err)}
	}
	return nil
}
