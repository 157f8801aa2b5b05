package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitedSetBranchesAreIndependent(t *testing.T) {
	root := NewVisitedSet("/api/openapi.yaml#")
	left := root.With("/api/a.yaml#A")
	right := root.With("/api/b.yaml#B")

	assert.Equal(t, 1, root.Len())
	assert.True(t, left.Contains("/api/a.yaml#A"))
	assert.False(t, right.Contains("/api/a.yaml#A"))
	assert.False(t, root.Contains("/api/b.yaml#B"))

	deeper := left.With("/api/z.yaml#Z")
	assert.Equal(t, []string{"/api/openapi.yaml#", "/api/a.yaml#A", "/api/z.yaml#Z"}, deeper.Path())
	assert.Equal(t, 2, left.Len(), "With never grows the receiver")
}

func TestVisitedSetPathIsCopy(t *testing.T) {
	ids := []string{"x"}
	v := NewVisitedSet(ids...)
	ids[0] = "changed"
	assert.True(t, v.Contains("x"))

	p := v.Path()
	p[0] = "changed"
	assert.True(t, v.Contains("x"))
}
