// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// ComponentsPrefix is the pointer prefix shared by every canonical
// component reference.
const ComponentsPrefix = "#/components/"

// OAS 3.x component categories.
const (
	CategorySchemas         = "schemas"
	CategoryResponses       = "responses"
	CategoryParameters      = "parameters"
	CategoryExamples        = "examples"
	CategoryRequestBodies   = "requestBodies"
	CategoryHeaders         = "headers"
	CategorySecuritySchemes = "securitySchemes"
	CategoryLinks           = "links"
	CategoryCallbacks       = "callbacks"
	CategoryPathItems       = "pathItems"
)

// Categories lists the component categories in the order they are written
// under "components" and searched when normalizing shorthand references.
var Categories = []string{
	CategorySchemas,
	CategoryResponses,
	CategoryParameters,
	CategoryExamples,
	CategoryRequestBodies,
	CategoryHeaders,
	CategorySecuritySchemes,
	CategoryLinks,
	CategoryCallbacks,
	CategoryPathItems,
}

// IsCategory reports whether name is a known component category.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryIndex returns the position of category in [Categories], or
// len(Categories) for unknown names so they sort last.
func CategoryIndex(category string) int {
	for i, c := range Categories {
		if c == category {
			return i
		}
	}
	return len(Categories)
}

// ComponentRef builds "#/components/{category}/{name}". The name is escaped
// as a JSON Pointer segment.
func ComponentRef(category, name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return ComponentsPrefix + category + "/" + name
}
