package tmdb

import "tableflip.dev/abcinema/pkg/movie"

// Details is the full record for one movie.
type Details struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	PosterPath          *string             `json:"poster_path"`
	BackdropPath        *string             `json:"backdrop_path"`
	ReleaseDate         string              `json:"release_date"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	Genres              []movie.Genre       `json:"genres"`
	Runtime             int                 `json:"runtime"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	IMDbID              string              `json:"imdb_id"`
	Homepage            string              `json:"homepage"`
	OriginalLanguage    string              `json:"original_language"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
}

// Summary converts the record to a catalog summary so it can be added to a
// list.
func (d Details) Summary() movie.Movie {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return movie.Movie{
		ID:               d.ID,
		Title:            d.Title,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		BackdropPath:     d.BackdropPath,
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		GenreIDs:         ids,
		OriginalLanguage: d.OriginalLanguage,
	}
}

// MovieID implements movie.Item.
func (d Details) MovieID() int { return d.ID }

// ListFields implements movie.Item.
func (d Details) ListFields() movie.ListEntry { return d.Summary().ListFields() }

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

// CastMember is one credited actor.
type CastMember struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Character          string  `json:"character"`
	ProfilePath        *string `json:"profile_path"`
	Order              int     `json:"order"`
	KnownForDepartment string  `json:"known_for_department"`
}

// CrewMember is one credited crew member.
type CrewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// Credits is the cast and crew of a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer, teaser or clip hosted on a video site.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// Review is a user review.
type Review struct {
	ID            string        `json:"id"`
	Author        string        `json:"author"`
	AuthorDetails AuthorDetails `json:"author_details"`
	Content       string        `json:"content"`
	CreatedAt     string        `json:"created_at"`
	URL           string        `json:"url"`
}

type AuthorDetails struct {
	Name       string   `json:"name"`
	Username   string   `json:"username"`
	AvatarPath *string  `json:"avatar_path"`
	Rating     *float64 `json:"rating"`
}

// Person is a cast or crew member's biography.
type Person struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Biography          string   `json:"biography"`
	Birthday           *string  `json:"birthday"`
	Deathday           *string  `json:"deathday"`
	PlaceOfBirth       *string  `json:"place_of_birth"`
	ProfilePath        *string  `json:"profile_path"`
	KnownForDepartment string   `json:"known_for_department"`
	AlsoKnownAs        []string `json:"also_known_as"`
	Homepage           *string  `json:"homepage"`
}

// ActingCredit is a movie a person appeared in.
type ActingCredit struct {
	movie.Movie
	Character string `json:"character"`
}

// CrewCredit is a movie a person worked on.
type CrewCredit struct {
	movie.Movie
	Job string `json:"job"`
}

// PersonCredits is a person's filmography.
type PersonCredits struct {
	Cast []ActingCredit `json:"cast"`
	Crew []CrewCredit   `json:"crew"`
}

type resultList[T any] struct {
	Results []T `json:"results"`
}
