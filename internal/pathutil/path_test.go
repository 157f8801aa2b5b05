package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasURLScheme(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/api.yaml#/components/schemas/Pet", true},
		{"http://example.com/pet.yaml", true},
		{"file:///tmp/pet.yaml", true},
		{"urn:example:pet", true},
		{"./common.yaml#/components/schemas/Pet", false},
		{"../shared/errors.yaml", false},
		{"#/components/schemas/Pet", false},
		{"common.yaml", false},
		{`C:\specs\api.yaml`, false},
		{"proto/openapi/common.yaml", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, HasURLScheme(tt.ref))
		})
	}
}
