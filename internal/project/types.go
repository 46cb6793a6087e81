package project

import "gopkg.in/yaml.v3"

// Scalar decodes any YAML scalar (string, int, float) as its literal text.
type Scalar string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	*s = Scalar(node.Value)
	return nil
}

func (s Scalar) String() string { return string(s) }

// Character is a recurring cast member.
type Character struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// EpisodeBeat is one structural phase of an episode as authored in the bible.
type EpisodeBeat struct {
	Beat    string `yaml:"beat"`
	Minutes Scalar `yaml:"minutes"`
	Goal    string `yaml:"goal"`
}

// Format holds the series-wide episode structure.
type Format struct {
	EpisodeBeats []EpisodeBeat `yaml:"episode_beats"`
}

// SeriesBible is specs/series_bible.yaml.
type SeriesBible struct {
	Title      string      `yaml:"title"`
	Logline    string      `yaml:"logline"`
	Characters []Character `yaml:"characters"`
	Format     Format      `yaml:"format"`
}

// CharacterName resolves a character id to its display name, falling back to
// the id itself.
func (b SeriesBible) CharacterName(id string) string {
	for _, c := range b.Characters {
		if c.ID == id {
			if c.Name != "" {
				return c.Name
			}
			return id
		}
	}
	return id
}

// HasCharacter reports whether the bible defines id.
func (b SeriesBible) HasCharacter(id string) bool {
	for _, c := range b.Characters {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Platform is specs/platform/douyin.yaml.
type Platform struct {
	Name        string `yaml:"name"`
	AspectRatio string `yaml:"aspect_ratio"`
	Resolution  string `yaml:"resolution"`
}

// Required lists elements an episode must cover.
type Required struct {
	Characters []string `yaml:"characters"`
	Locations  []string `yaml:"locations"`
	PlotPoints []string `yaml:"plot_points"`
}

// Brief is episodes/epNNNN/brief.yaml.
type Brief struct {
	TitleWorking string   `yaml:"title_working"`
	Purpose      string   `yaml:"purpose"`
	Required     Required `yaml:"required"`
}
