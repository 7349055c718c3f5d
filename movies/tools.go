package movies

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/tool"
)

// Tool names exposed to the model. Kept stable: the system prompt refers to
// them and conversations recorded against one manifest should replay.
const (
	ToolFetchPastReviews = "fetch_past_reviews"
	ToolFetchMoviesGenre = "fetch_movies_genre"
	ToolMoviesWithGenre  = "movies_with_genre"
)

type fetchPastReviewsArgs struct {
	UserID string `json:"user_id" mapstructure:"user_id" description:"user_id of the user for which past reviews are needed to be fetched"`
}

type fetchMoviesGenreArgs struct {
	MovieName string `json:"movie_name" mapstructure:"movie_name" description:"name of movie for which genres are needed to be fetched"`
}

type moviesWithGenreArgs struct {
	LikedGenre []string `json:"liked_genre" mapstructure:"liked_genre" description:"List of genres for which movie names are needed"`
}

// Tools builds the three catalog tools in manifest order.
func Tools(catalog Catalog) []tool.Tool {
	return []tool.Tool{
		NewFetchPastReviewsTool(catalog),
		NewFetchMoviesGenreTool(catalog),
		NewMoviesWithGenreTool(catalog),
	}
}

// NewFetchPastReviewsTool returns the tool that looks up a user's past
// reviews.
func NewFetchPastReviewsTool(catalog Catalog) tool.Tool {
	return tool.NewFunctionToolFromStruct(
		ToolFetchPastReviews,
		"Fetches past reviews of movies watched by user",
		fetchPastReviewsArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			var in fetchPastReviewsArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return catalog.PastReviews(in.UserID), nil
		},
	)
}

// NewFetchMoviesGenreTool returns the tool that looks up the genres of a
// movie.
func NewFetchMoviesGenreTool(catalog Catalog) tool.Tool {
	return tool.NewFunctionToolFromStruct(
		ToolFetchMoviesGenre,
		"Fetches genres of the movie",
		fetchMoviesGenreArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			var in fetchMoviesGenreArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return catalog.Genres(in.MovieName), nil
		},
	)
}

// NewMoviesWithGenreTool returns the tool that maps liked genres to movie
// names.
func NewMoviesWithGenreTool(catalog Catalog) tool.Tool {
	return tool.NewFunctionToolFromStruct(
		ToolMoviesWithGenre,
		"Fetches movie names that fall inside the requested genres",
		moviesWithGenreArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			var in moviesWithGenreArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return catalog.MoviesByGenres(in.LikedGenre), nil
		},
	)
}

// decodeArgs binds the schema-validated argument map onto a typed struct.
// WeaklyTypedInput tolerates the loose typing of model-produced JSON.
func decodeArgs(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to bind arguments: %w", err)
	}
	return nil
}
