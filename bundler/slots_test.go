package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// slotAt follows keys from the document root.
func slotAt(keys ...string) slot {
	s := rootSlot
	for _, k := range keys {
		s = childSlot(s, k)
	}
	return s
}

func TestChildSlot(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		category string
		schema   bool
	}{
		{"path item", []string{"paths", "/pets"}, "", false},
		{"operation", []string{"paths", "/pets", "get"}, "schemas", false},
		{"parameter", []string{"paths", "/pets", "get", "parameters", ""}, "parameters", false},
		{"response", []string{"paths", "/pets", "get", "responses", "200"}, "responses", false},
		{"response header", []string{"paths", "/pets", "get", "responses", "200", "headers", "X-Rate"}, "headers", false},
		{"request body", []string{"paths", "/pets", "post", "requestBody"}, "requestBodies", false},
		{"media schema", []string{"paths", "/pets", "get", "responses", "200", "content", "application/json", "schema"}, "schemas", true},
		{"schema property named parameters", []string{"components", "schemas", "Pet", "properties", "parameters"}, "schemas", true},
		{"callback", []string{"paths", "/pets", "post", "callbacks", "onEvent", "{$request.body#/url}"}, "", false},
		{"link", []string{"paths", "/pets", "get", "responses", "200", "links", "next"}, "", false},
		{"webhook", []string{"webhooks", "newPet"}, "", false},
		{"component parameter", []string{"components", "parameters", "limit"}, "parameters", false},
		{"component path item", []string{"components", "pathItems", "shared"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := slotAt(tt.keys...)
			assert.Equal(t, tt.category, s.category)
			assert.Equal(t, tt.schema, s.schema)
		})
	}
}

func TestClassify(t *testing.T) {
	ref := func(p ...string) Reference {
		return Reference{File: "/a.yaml", Pointer: p}
	}

	key, ok := classify(ref("components", "responses", "NotFound"), schemaSlot)
	assert.True(t, ok)
	assert.Equal(t, ComponentKey{Category: "responses", Name: "NotFound"}, key, "explicit category beats the slot")

	key, ok = classify(ref("Limit"), slot{category: "parameters"})
	assert.True(t, ok)
	assert.Equal(t, ComponentKey{Category: "parameters", Name: "Limit"}, key)

	key, ok = classify(ref("definitions", "Pet"), schemaSlot)
	assert.True(t, ok)
	assert.Equal(t, "Pet", key.Name)

	_, ok = classify(ref("paths", "/pets"), pathItemSlot)
	assert.False(t, ok, "path items are spliced")

	_, ok = classify(Reference{File: "/a.yaml"}, schemaSlot)
	assert.False(t, ok, "whole documents are spliced")

	_, ok = classify(ref("components", "x-unknown", "Y"), pathItemSlot)
	assert.False(t, ok)
}

func TestComponentSlot(t *testing.T) {
	assert.True(t, componentSlot("schemas").schema)
	assert.Equal(t, "headers", componentSlot("headers").category)
	assert.False(t, componentSlot("headers").schema)
}
