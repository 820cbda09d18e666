package masterlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/confbot/internal/domain"
)

func TestRenderListsEveryIdentity(t *testing.T) {
	t.Parallel()

	ids := []domain.Identity{
		domain.Identity(strings.Repeat("A1", 32)),
		domain.Identity(strings.Repeat("B2", 32)),
	}

	out := Render(ids, RenderOptions{Path: "/tmp/masterkeys"})

	assert.Contains(t, out, "Authorized masters")
	assert.Contains(t, out, "/tmp/masterkeys")
	assert.Contains(t, out, "entries: 2")
	for _, id := range ids {
		assert.Contains(t, out, string(id))
	}
	assert.Contains(t, out, "  1  ")
	assert.Contains(t, out, "  2  ")
}

func TestRenderEmptyList(t *testing.T) {
	t.Parallel()

	out := Render(nil, RenderOptions{Path: "/tmp/masterkeys"})

	assert.Contains(t, out, "entries: 0")
	assert.Contains(t, out, "No master identities registered.")
}
