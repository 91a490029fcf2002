package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNVPairs(t *testing.T) {
	p := NewNVPairs([]string{"Server_URL=http://x?a=b", "junk", "=nokey", "debug=true"})
	assert.Equal(t, map[string]string{"server_url": "http://x?a=b", "debug": "true"}, p.Pairs)
	assert.Equal(t, []string{"debug", "server_url"}, p.Keys())
}

func TestQuery(t *testing.T) {
	var nilPairs *NVPairs
	assert.Equal(t, "", nilPairs.Query())
	assert.Equal(t, "", NewNVPairs(nil).Add("search", "").Query())
	assert.Equal(t, "?search=dark+roast", NewNVPairs(nil).Add("search", "dark roast").Query())
}
