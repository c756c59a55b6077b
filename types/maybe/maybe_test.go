package maybe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaybe(t *testing.T) {
	some := Some(4)
	assert.True(t, some.IsValid())
	assert.Equal(t, 4, some.Value())
	assert.Equal(t, 4, some.ValueOrDefault(8))

	none := None[int]()
	assert.False(t, none.IsValid())
	assert.Equal(t, 8, none.ValueOrDefault(8))
	_, ok := none.Get()
	assert.False(t, ok)

	n := 2
	assert.Equal(t, Some(2), FromPointer(&n))
	assert.Equal(t, None[int](), FromPointer[int](nil))
}
