package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromIdea_TruncatesFirstLine(t *testing.T) {
	line := strings.Repeat("a", 150)
	idea := line + "\nsecond line"

	title := TitleFromIdea(idea)

	assert.Len(t, title, MaxTitleLength)
	assert.Equal(t, line[:MaxTitleLength], title)
}

func TestTitleFromIdea_ShortFirstLine(t *testing.T) {
	assert.Equal(t, "Funny Cat Mug", TitleFromIdea("Funny Cat Mug\r\nA mug for cat people"))
	assert.Equal(t, "single", TitleFromIdea("single"))
}

func TestTitleFromIdea_CountsRunes(t *testing.T) {
	line := strings.Repeat("猫", 120)

	title := TitleFromIdea(line)

	assert.Equal(t, MaxTitleLength, len([]rune(title)))
}

func TestCategoryFromType(t *testing.T) {
	tests := []struct {
		in   ProductType
		want string
	}{
		{ProductMug, "Mug"},
		{ProductTShirt, "T-shirt"},
		{ProductPoster, "Poster"},
		{ProductGeneric, "Product"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromType(tt.in))
		})
	}
}

func TestNewPayload(t *testing.T) {
	p := NewPayload("Funny Cat Mug idea", "https://img.example.com/cat.png", ProductMug, "17.99")

	assert.Equal(t, Payload{
		Title:       "Funny Cat Mug idea",
		Description: "Funny Cat Mug idea",
		ImageURL:    "https://img.example.com/cat.png",
		Price:       "17.99",
		Category:    "Mug",
	}, p)
	require.NoError(t, p.Validate())
}

func TestPayloadValidate_RejectsBrokenFields(t *testing.T) {
	p := NewPayload("idea", "not a url", ProductMug, "cheap")

	assert.Error(t, p.Validate())
}
