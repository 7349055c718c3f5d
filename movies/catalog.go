// Package movies provides the recommendation domain data source and the
// tools exposed to the model over it.
package movies

// Review is one past movie review left by a user.
type Review struct {
	Movie  string `json:"movie"`
	Review string `json:"review"`
}

// Catalog is the read-mostly data source the tools operate on. It is
// injected rather than global so a real store can replace the in-memory
// tables later and tests can substitute fakes.
type Catalog interface {
	// PastReviews returns the reviews left by a user, empty when unknown.
	PastReviews(userID string) []Review

	// Genres returns every genre the named movie appears under.
	Genres(movieName string) []string

	// MoviesByGenres returns, for each movie in any of the given genres, the
	// subset of those genres it belongs to. An empty genre list yields an
	// empty mapping.
	MoviesByGenres(genres []string) map[string][]string
}

type genreTable struct {
	name   string
	movies []string
}

// InMemoryCatalog is a volatile Catalog over fixed review and genre tables.
// Genre iteration order is deterministic (table order).
type InMemoryCatalog struct {
	reviews map[string][]Review
	genres  []genreTable
}

// NewInMemoryCatalog builds a catalog seeded with the demo review and genre
// tables.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		reviews: map[string][]Review{
			"101A": {
				{Movie: "Tarzan: The wonder car", Review: "a bit boring"},
				{Movie: "John Wick", Review: "amazing,great stunts"},
				{Movie: "Bellarina", Review: "amazing,a great watch!"},
			},
			"102B": {
				{Movie: "Avengers : Infinity War", Review: "a great movie"},
				{Movie: "Jumanji: Welcome to jungle", Review: "good movie"},
				{Movie: "DDLJ", Review: "boring"},
			},
			"103": {
				{Movie: "Star Wars", Review: "a great movie"},
				{Movie: "A quiet place", Review: "good movie"},
			},
		},
		genres: []genreTable{
			{name: "Action", movies: []string{
				"John Wick",
				"Rowdy Rathore",
				"Bellarina",
				"Avengers : Infinity War",
				"Avengers : End Game",
			}},
			{name: "Adventure", movies: []string{
				"Jumanji : Welcome to jungle",
				"Jumanji : Next level",
				"Avengers : End Game",
			}},
			{name: "Romance", movies: []string{
				"DDLJ",
				"Jab tak hey jaan",
				"Raja Hindustani",
				"Tarzan: The wonder car",
			}},
		},
	}
}

// PastReviews implements Catalog.
func (c *InMemoryCatalog) PastReviews(userID string) []Review {
	reviews := c.reviews[userID]
	out := make([]Review, len(reviews))
	copy(out, reviews)
	return out
}

// Genres implements Catalog.
func (c *InMemoryCatalog) Genres(movieName string) []string {
	genres := []string{}
	for _, table := range c.genres {
		for _, movie := range table.movies {
			if movie == movieName {
				genres = append(genres, table.name)
				break
			}
		}
	}
	return genres
}

// MoviesByGenres implements Catalog.
func (c *InMemoryCatalog) MoviesByGenres(genres []string) map[string][]string {
	wanted := make(map[string]bool, len(genres))
	for _, g := range genres {
		wanted[g] = true
	}

	movies := map[string][]string{}
	for _, table := range c.genres {
		if !wanted[table.name] {
			continue
		}
		for _, movie := range table.movies {
			movies[movie] = append(movies[movie], table.name)
		}
	}
	return movies
}
