package homeassistant

import (
	"github.com/home-assistant-tools/automation-lint-go/internal/engine"
)

// Catalog is a service catalog built from a get_services response.
type Catalog struct {
	services map[string]engine.ServiceSchema
}

func newCatalog(domains map[string]map[string]serviceDef) *Catalog {
	services := make(map[string]engine.ServiceSchema)
	for domain, defs := range domains {
		for name, def := range defs {
			fields := make(map[string]engine.ServiceField, len(def.Fields))
			for fieldName, field := range def.Fields {
				fields[fieldName] = engine.ServiceField{Required: field.Required}
			}
			services[domain+"."+name] = engine.ServiceSchema{Fields: fields}
		}
	}
	return &Catalog{services: services}
}

// NewCatalogFromSchemas builds a catalog directly from schemas, for tests
// and file-backed sources.
func NewCatalogFromSchemas(schemas map[string]engine.ServiceSchema) *Catalog {
	return &Catalog{services: schemas}
}

// Ready reports whether the catalog holds any services.
func (c *Catalog) Ready() bool {
	return c != nil && len(c.services) > 0
}

// Service looks up one domain.service name.
func (c *Catalog) Service(name string) (engine.ServiceSchema, bool) {
	if c == nil {
		return engine.ServiceSchema{}, false
	}
	schema, ok := c.services[name]
	return schema, ok
}
