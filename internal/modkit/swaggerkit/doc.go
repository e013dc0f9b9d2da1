package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kweimann/poe-stash-filter/internal/platform/config"
)

// readDoc is the generated swagger document; builds with -tags swag replace the skeleton
var readDoc = func() string {
	return `{"openapi":"3.0.3","info":{"title":"stash filter API","version":"0.0.0"},"paths":{}}`
}

const errorRef = "#/components/schemas/Envelope"

// serveDoc lifts the document to OAS 3.0.3 and documents the error envelope on every operation
func serveDoc(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(readDoc()), &spec); err != nil {
			http.Error(w, "swagger document is not valid json", http.StatusInternalServerError)
			return
		}
		normalize(spec, "/api/v1", titleSuffix)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func titleSuffix() string { return config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", "") }

func normalize(spec map[string]any, base, suffix string) {
	// http-swagger's ui cannot render 3.1
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	delete(spec, "swagger")
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
	if info, ok := spec["info"].(map[string]any); ok && suffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + suffix
		}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = envelopeSchema()
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			setDefault(resps, "400", "Bad Request", map[string]any{
				"status_code": 400, "status": "Bad Request", "code": 5,
				"error": "highlighted must contain at least 1 item", "field": "highlighted",
			})
			setDefault(resps, "500", "Internal Server Error", map[string]any{
				"status_code": 500, "status": "Internal Server Error", "code": 1, "error": "internal error",
			})
		}
	}
}

func envelopeSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Response envelope; data on success, code and error otherwise",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
			"data":        map[string]any{},
		},
		"required": []any{"status_code", "status"},
	}
}

func setDefault(resps map[string]any, status, desc string, example map[string]any) {
	if _, ok := resps[status]; ok {
		return
	}
	resps[status] = map[string]any{
		"description": desc,
		"content": map[string]any{"application/json": map[string]any{
			"schema":  map[string]any{"$ref": errorRef},
			"example": example,
		}},
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
