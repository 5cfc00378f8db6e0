package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Registration checks email uniqueness with no exclusion; the query must not
// carry a $2 then, because "" cannot be encoded as a uuid parameter.
func TestEmailTakenQueryWithoutExclusion(t *testing.T) {
	q, args := emailTakenQuery("amina@example.com", "")

	require.Len(t, args, 1)
	assert.Equal(t, "amina@example.com", args[0])
	assert.False(t, strings.Contains(q, "$2"))
	assert.False(t, strings.Contains(q, "id"))
}

func TestEmailTakenQueryWithExclusion(t *testing.T) {
	id := "6d7a4a1e-0000-0000-0000-000000000001"
	q, args := emailTakenQuery("amina@example.com", id)

	require.Len(t, args, 2)
	assert.Equal(t, id, args[1])
	assert.Contains(t, q, "id <> $2")
}
