package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerBuilder(t *testing.T) {
	t.Run("segments are escaped", func(t *testing.T) {
		p := &PointerBuilder{}
		p.Push("paths")
		p.Push("/pets/{id}")
		p.Push("get")
		assert.Equal(t, "/paths/~1pets~1{id}/get", p.String())
		assert.Equal(t, 3, p.Depth())
	})

	t.Run("indexes", func(t *testing.T) {
		p := &PointerBuilder{}
		p.Push("parameters")
		p.PushIndex(12)
		assert.Equal(t, "/parameters/12", p.String())
	})

	t.Run("push pop", func(t *testing.T) {
		p := &PointerBuilder{}
		p.Push("a~b")
		p.Push("b")
		p.Pop()
		p.Push("c")
		assert.Equal(t, "/a~0b/c", p.String())
		assert.Equal(t, len("/a~0b/c"), p.length)
	})

	t.Run("empty and pop on empty", func(t *testing.T) {
		p := &PointerBuilder{}
		p.Pop()
		assert.Equal(t, "", p.String())
		assert.Equal(t, 0, p.length)
	})
}

func TestPool(t *testing.T) {
	p := Get()
	p.Push("components")
	Put(p)

	again := Get()
	defer Put(again)
	assert.Equal(t, "", again.String(), "pooled builders are reset")

	Put(nil)
}
