package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "no path", err: errors.New("bad format"), want: "bad format"},
		{
			name: "home path",
			err:  errors.New("open /home/alice/api/openapi.yaml: no such file"),
			want: "open <path>: no such file",
		},
		{
			name: "temp path",
			err:  errors.New("missing file /tmp/x/shared.yaml referenced from /tmp/x/root.yaml"),
			want: "missing file <path> referenced from <path>",
		},
		{name: "relative path kept", err: errors.New("./schemas/pet.yaml"), want: "./schemas/pet.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("cannot read /var/lib/api.yaml"))
	assert.True(t, result.IsError)
	assert.Equal(t, "cannot read <path>", textContent(t, result))
}

func TestGroupAndSort(t *testing.T) {
	items := []string{"resolved", "cycle", "resolved", "missing-file", "resolved", "cycle"}
	groups := groupAndSort(items, func(s string) string { return s })

	assert.Equal(t, []groupCount{
		{Key: "resolved", Count: 3},
		{Key: "cycle", Count: 2},
		{Key: "missing-file", Count: 1},
	}, groups)

	tied := groupAndSort([]string{"b", "a"}, func(s string) string { return s })
	assert.Equal(t, []groupCount{{Key: "a", Count: 1}, {Key: "b", Count: 1}}, tied)

	assert.Empty(t, groupAndSort(nil, func(s string) string { return s }))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0 files", formatCount(0, "file"))
	assert.Equal(t, "1 file", formatCount(1, "file"))
	assert.Equal(t, "3 cycle edges", formatCount(3, "cycle edge"))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](4)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 4, cap(s))
}
