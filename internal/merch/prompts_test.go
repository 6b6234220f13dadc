package merch

import (
	"testing"

	"ap-merch-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaMessages(t *testing.T) {
	msgs := IdeaMessages("")
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.NotContains(t, msgs[1].Content, "niche or theme")

	withNiche := IdeaMessages("cottagecore animal mugs")
	assert.Contains(t, withNiche[1].Content, `"cottagecore animal mugs"`)
}

func TestImagePrompt(t *testing.T) {
	p := ImagePrompt(domain.ProductMug, "Funny Cat Mug idea")

	assert.Contains(t, p, "A mug design featuring: Funny Cat Mug idea.")
	assert.Contains(t, p, "centered composition")
	assert.Contains(t, p, "vector-style")
	assert.Contains(t, p, DefaultImageSize)
}
