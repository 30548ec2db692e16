package suggest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigportal/internal/models"
)

func TestStripTags(t *testing.T) {
	got := stripTags("<p>Первый  абзац.</p><p>Второй</p>")
	assert.Equal(t, "Первый абзац. Второй", got)
}

func TestCleanerNode_FallbackLead(t *testing.T) {
	out, err := cleanerNode(context.Background(), Input{
		Article: models.News{Title: "Т", Content: "<p>" + strings.Repeat("текст ", 100) + "</p>"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Lead)
	assert.LessOrEqual(t, len(out.Lead), 200)
}

func TestFormatterNode_Caps(t *testing.T) {
	out, err := formatterNode(context.Background(), Output{
		Rubric:  []string{"a", "b", "c", "d", "e", "f"},
		Tags:    make([]string, 15),
		Summary: "  итог  ",
	})
	require.NoError(t, err)
	assert.Len(t, out.Rubric, 4)
	assert.Len(t, out.Tags, 10)
	assert.Equal(t, "итог", out.Summary)
}

func TestPipeline_RequiresLLM(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)

	_, err = p.Run(context.Background(), Input{Article: models.News{Title: "Т"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm not configured")
}
