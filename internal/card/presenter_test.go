package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techfacts/factbot/internal/botframework"
)

var released = Content{
	Title:    "First Released",
	Body:     "According to Wikipedia, Azure was released on February 1, 2010.",
	ImageRef: "image-11.png",
}

func TestPresenter_Thumbnail(t *testing.T) {
	p := NewPresenter("https://icons.example.com/azure/")

	att := p.Thumbnail(released)
	assert.Equal(t, botframework.ContentTypeThumbnailCard, att.ContentType)

	c, ok := att.Content.(botframework.Card)
	require.True(t, ok)
	assert.Equal(t, "Azure Tech Facts", c.Title)
	assert.Equal(t, released.Title, c.Subtitle)
	assert.Equal(t, released.Body, c.Text)
	assert.Equal(t, []botframework.CardImage{{URL: "https://icons.example.com/azure/image-11.png"}}, c.Images)
	assert.Equal(t, []botframework.CardAction{{Type: "openUrl", Title: "Learn more...", Value: "https://azure.microsoft.com"}}, c.Buttons)
}

func TestPresenter_HeroSharesContent(t *testing.T) {
	p := NewPresenter("https://icons.example.com")

	hero := p.Hero(released)
	thumb := p.Thumbnail(released)

	assert.Equal(t, botframework.ContentTypeHeroCard, hero.ContentType)
	assert.Equal(t, thumb.Content, hero.Content)
}

func TestPresenter_Deterministic(t *testing.T) {
	p := NewPresenter("https://icons.example.com")

	a, err := json.Marshal(p.Thumbnail(released))
	require.NoError(t, err)
	b, err := json.Marshal(p.Thumbnail(released))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Contains(t, string(a), `"contentType":"application/vnd.microsoft.card.thumbnail"`)
}
