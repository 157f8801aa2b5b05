package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", ComponentRef(CategorySchemas, "Pet"))
	assert.Equal(t, "#/components/responses/NotFound", ComponentRef(CategoryResponses, "NotFound"))
	assert.Equal(t, "#/components/schemas/a~1b~0c", ComponentRef(CategorySchemas, "a/b~c"))
}

func TestCategories(t *testing.T) {
	assert.True(t, IsCategory(CategoryRequestBodies))
	assert.False(t, IsCategory("definitions"))
	assert.Equal(t, 0, CategoryIndex(CategorySchemas))
	assert.Equal(t, len(Categories), CategoryIndex("unknown"))
}
