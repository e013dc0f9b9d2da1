//go:build swag

package swaggerkit

import docs "github.com/kweimann/poe-stash-filter/internal/services/api/docs"

func init() { readDoc = docs.SwaggerInfo.ReadDoc }
