package bundler

import "github.com/erraggy/oasbundle/internal/pathutil"

// slot describes what a $ref at a given position in a document stands for.
type slot struct {
	// category receives a component reference found here; "" means the
	// target is spliced in place instead.
	category string
	// schema is sticky: everything below a schema is a schema.
	schema bool
	// members is the slot of map values or sequence items when the node at
	// this position is a collection (parameters, responses, paths, ...).
	members *slot
}

var (
	rootSlot     = slot{category: pathutil.CategorySchemas}
	schemaSlot   = slot{category: pathutil.CategorySchemas, schema: true}
	pathItemSlot = slot{}
	callbackSlot = slot{members: &pathItemSlot}
	linkSlot     = slot{}
)

func collectionOf(category string) slot {
	member := slot{category: category}
	return slot{category: category, members: &member}
}

var keySlots = map[string]slot{
	"schema":               schemaSlot,
	"schemas":              schemaSlot,
	"items":                schemaSlot,
	"prefixItems":          schemaSlot,
	"properties":           schemaSlot,
	"patternProperties":    schemaSlot,
	"additionalProperties": schemaSlot,
	"allOf":                schemaSlot,
	"oneOf":                schemaSlot,
	"anyOf":                schemaSlot,
	"not":                  schemaSlot,
	"$defs":                schemaSlot,
	"definitions":          schemaSlot,

	"parameters":      collectionOf(pathutil.CategoryParameters),
	"responses":       collectionOf(pathutil.CategoryResponses),
	"headers":         collectionOf(pathutil.CategoryHeaders),
	"examples":        collectionOf(pathutil.CategoryExamples),
	"securitySchemes": collectionOf(pathutil.CategorySecuritySchemes),
	"requestBodies":   collectionOf(pathutil.CategoryRequestBodies),
	"requestBody":     {category: pathutil.CategoryRequestBodies},

	"paths":     {members: &pathItemSlot},
	"webhooks":  {members: &pathItemSlot},
	"pathItems": {members: &pathItemSlot},
	"callbacks": {members: &callbackSlot},
	"links":     {members: &linkSlot},
}

// childSlot returns the slot of the value stored under key (or of a
// sequence item when key is "").
func childSlot(parent slot, key string) slot {
	if parent.schema {
		return schemaSlot
	}
	if parent.members != nil {
		return *parent.members
	}
	if s, ok := keySlots[key]; ok {
		return s
	}
	return rootSlot
}

// componentSlot returns the slot in which a component of category lives.
func componentSlot(category string) slot {
	if category == pathutil.CategorySchemas {
		return schemaSlot
	}
	return slot{category: category}
}

// classify decides whether ref, found in slot s, names a component.
// A pointer of the form components/<category>/<name> names its category
// directly; otherwise the slot decides and the name is the last segment.
// Whole-document references are never components.
func classify(ref Reference, s slot) (ComponentKey, bool) {
	p := ref.Pointer
	if len(p) == 0 {
		return ComponentKey{}, false
	}
	if len(p) == 3 && p[0] == "components" && pathutil.IsCategory(p[1]) {
		return ComponentKey{Category: p[1], Name: p[2]}, true
	}
	if s.category == "" {
		return ComponentKey{}, false
	}
	return ComponentKey{Category: s.category, Name: p[len(p)-1]}, true
}
