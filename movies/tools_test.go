package movies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTools_ManifestOrderAndNames(t *testing.T) {
	tools := Tools(NewInMemoryCatalog())

	require.Len(t, tools, 3)
	assert.Equal(t, ToolFetchPastReviews, tools[0].Name())
	assert.Equal(t, ToolFetchMoviesGenre, tools[1].Name())
	assert.Equal(t, ToolMoviesWithGenre, tools[2].Name())

	for _, tl := range tools {
		assert.NotEmpty(t, tl.Description())
		assert.Equal(t, "object", tl.Parameters()["type"])
	}
}

func TestFetchPastReviewsTool(t *testing.T) {
	tl := NewFetchPastReviewsTool(NewInMemoryCatalog())

	result, err := tl.Call(context.Background(), map[string]any{"user_id": "101A"})
	require.NoError(t, err)

	reviews, ok := result.([]Review)
	require.True(t, ok)
	require.Len(t, reviews, 3)
	assert.Equal(t, "John Wick", reviews[1].Movie)
}

func TestFetchPastReviewsTool_MissingUserID(t *testing.T) {
	tl := NewFetchPastReviewsTool(NewInMemoryCatalog())

	_, err := tl.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestFetchMoviesGenreTool(t *testing.T) {
	tl := NewFetchMoviesGenreTool(NewInMemoryCatalog())

	result, err := tl.Call(context.Background(), map[string]any{"movie_name": "Bellarina"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Action"}, result)
}

func TestMoviesWithGenreTool(t *testing.T) {
	tl := NewMoviesWithGenreTool(NewInMemoryCatalog())

	// Arguments arrive as loosely typed JSON, so the list is []any.
	result, err := tl.Call(context.Background(), map[string]any{"liked_genre": []any{"Action"}})
	require.NoError(t, err)

	movies, ok := result.(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, movies, "Rowdy Rathore")
	assert.Contains(t, movies, "Avengers : End Game")
}

func TestMoviesWithGenreTool_SchemaDeclaresArrayItems(t *testing.T) {
	tl := NewMoviesWithGenreTool(NewInMemoryCatalog())

	props, ok := tl.Parameters()["properties"].(map[string]any)
	require.True(t, ok)
	genre, ok := props["liked_genre"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", genre["type"])
	assert.NotNil(t, genre["items"])
}
