package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	f := NewFields(NewField("code", 401), NewField("uri", "/api/products/"))
	f.AppendKV("retry", true)
	assert.Equal(t, "code=401 uri=/api/products/ retry=true", f.ToText())
	assert.Len(t, f.ToPairs(), 3)

	var empty *Fields
	assert.Equal(t, "", empty.ToText())
	assert.Nil(t, empty.ToPairs())
}

func TestSecret(t *testing.T) {
	assert.Equal(t, "<empty>", Secret("access", "").V)
	assert.Equal(t, "****", Secret("access", "short").V)
	assert.Equal(t, "****wxyz", Secret("access", "abcdefghijklmnopqrstuvwxyz").V)
}
