package entities

// The types below describe the shapes plugin entry points are expected to
// resolve to. They exist for schema generation and optional result
// validation; the host itself treats resolved values as opaque JSON and
// prints them verbatim. Plugins evolve independently of the host, so these
// shapes are deliberately permissive: only the structurally load-bearing
// fields are required, everything else is optional.

// DiscoverSection is one titled section of a plugin's discover page.
// The discover verb resolves to a list of these.
type DiscoverSection struct {
	Title string         `json:"title"`
	Type  int            `json:"type,omitempty"`
	List  []SearchResult `json:"list"`
}

// SearchResult is a single entry in a search or discover listing.
// The search verb resolves to a list of these.
type SearchResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Img           string `json:"img,omitempty"`
	IndicatorText string `json:"indicatorText,omitempty"`
	CurrentCount  *int   `json:"currentCount,omitempty"`
	TotalCount    *int   `json:"totalCount,omitempty"`
}

// Titles holds the primary and optional secondary title of a work.
type Titles struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// InfoData is the detail page of a single work, resolved by the info verb.
type InfoData struct {
	ID              string       `json:"id,omitempty"`
	Titles          Titles       `json:"titles"`
	AltTitles       []string     `json:"altTitles,omitempty"`
	Description     string       `json:"description,omitempty"`
	Poster          string       `json:"poster,omitempty"`
	Banner          string       `json:"banner,omitempty"`
	Status          string       `json:"status,omitempty"`
	TotalMediaCount int          `json:"totalMediaCount,omitempty"`
	MediaType       string       `json:"mediaType,omitempty"`
	Seasons         []SeasonData `json:"seasons,omitempty"`
	MediaList       []MediaList  `json:"mediaList,omitempty"`
}

// SeasonData points at an alternative season of the same work.
type SeasonData struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MediaList is one titled group of media entries (e.g. a season or a
// chapter range). The media verb resolves to a list of these.
type MediaList struct {
	Title string      `json:"title"`
	List  []MediaInfo `json:"list"`
}

// MediaInfo is a single playable or readable media entry.
type MediaInfo struct {
	URL         string  `json:"url"`
	Number      float64 `json:"number"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// ServerData is one titled group of servers hosting a media entry.
// The servers verb resolves to a list of these.
type ServerData struct {
	Title string   `json:"title"`
	List  []Server `json:"list"`
}

// Server is a single named server embed.
type Server struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SourceSet is the playable payload resolved by the sources verb:
// stream URLs plus optional subtitles and skip markers.
type SourceSet struct {
	Sources   []Source   `json:"sources"`
	Subtitles []Subtitle `json:"subtitles,omitempty"`
	SkipTimes []SkipTime `json:"skips,omitempty"`
}

// Source is a single stream variant.
type Source struct {
	File string `json:"file"`
	Type string `json:"type,omitempty"`
}

// Subtitle is a single subtitle track.
type Subtitle struct {
	URL      string `json:"url"`
	Language string `json:"language,omitempty"`
}

// SkipTime marks a skippable segment (intro, outro) in seconds.
type SkipTime struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type,omitempty"`
}
