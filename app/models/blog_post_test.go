package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaid(t *testing.T) {
	assert.True(t, (&BlogPost{Type: POST_TYPE_PAID}).IsPaid())
	assert.False(t, (&BlogPost{Type: POST_TYPE_FREE}).IsPaid())
	assert.False(t, (&BlogPost{}).IsPaid())
}

func TestDefaultExcerpt(t *testing.T) {
	t.Run("explicit excerpt wins", func(t *testing.T) {
		p := &BlogPost{Excerpt: "short teaser", Content: strings.Repeat("x", 500)}
		assert.Equal(t, "short teaser", p.DefaultExcerpt())
	})

	t.Run("short content returned whole", func(t *testing.T) {
		p := &BlogPost{Content: "brief"}
		assert.Equal(t, "brief", p.DefaultExcerpt())
	})

	t.Run("long content truncated to 200 runes", func(t *testing.T) {
		p := &BlogPost{Content: strings.Repeat("a", 300)}
		assert.Len(t, p.DefaultExcerpt(), 200)
	})

	t.Run("multibyte content cut at rune boundary", func(t *testing.T) {
		p := &BlogPost{Content: strings.Repeat("ü", 300)}
		excerpt := p.DefaultExcerpt()
		assert.Equal(t, 200, len([]rune(excerpt)))
		assert.True(t, strings.HasPrefix(p.Content, excerpt))
	})
}

func TestBlogPostValidation(t *testing.T) {
	valid := &BlogPost{
		AuthorID: 1,
		Title:    "On Writing",
		Content:  "Some content",
		Topic:    TOPIC_TECHNOLOGY,
		Type:     POST_TYPE_FREE,
	}
	assert.NoError(t, valid.Validate())

	badTopic := *valid
	badTopic.Topic = "SPORTS"
	assert.Error(t, badTopic.Validate())

	badType := *valid
	badType.Type = "TRIAL"
	assert.Error(t, badType.Validate())

	noTitle := *valid
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())
}
