package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"reel/internal/services"
)

// Project is the loaded config source for one project root.
type Project struct {
	Root     string
	Bible    SeriesBible
	Platform Platform
	Budget   Budget
}

// SeriesBiblePath returns specs/series_bible.yaml under root.
func SeriesBiblePath(root string) string {
	return filepath.Join(root, "specs", "series_bible.yaml")
}

// PlatformPath returns specs/platform/douyin.yaml under root.
func PlatformPath(root string) string {
	return filepath.Join(root, "specs", "platform", "douyin.yaml")
}

// BudgetPath returns specs/budget.yaml under root.
func BudgetPath(root string) string {
	return filepath.Join(root, "specs", "budget.yaml")
}

// Load reads the three project-level files. Absent files are not an error.
func Load(root string) (*Project, error) {
	p := &Project{Root: root}

	if err := decodeFile(SeriesBiblePath(root), &p.Bible); err != nil {
		return nil, err
	}
	p.Bible.normalize()

	if err := decodeFile(PlatformPath(root), &p.Platform); err != nil {
		return nil, err
	}

	var bf budgetFile
	if err := decodeFile(BudgetPath(root), &bf); err != nil {
		return nil, err
	}
	p.Budget = bf.resolve()
	if err := p.Budget.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadBrief reads an episode brief. A missing brief yields an empty Brief.
func LoadBrief(path string) (Brief, error) {
	var brief Brief
	if err := decodeFile(path, &brief); err != nil {
		return Brief{}, err
	}
	brief.normalize()
	return brief, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return services.Wrap(services.ErrIO, "project", "read", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return services.Wrap(services.ErrConfiguration, "project", "parse", fmt.Sprintf("invalid YAML in %s", path), err)
	}
	return nil
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

func nfcAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		out = append(out, nfc(v))
	}
	return out
}

func (b *SeriesBible) normalize() {
	b.Title = nfc(b.Title)
	b.Logline = nfc(b.Logline)
	for i := range b.Characters {
		b.Characters[i].Name = nfc(b.Characters[i].Name)
	}
	for i := range b.Format.EpisodeBeats {
		b.Format.EpisodeBeats[i].Goal = nfc(b.Format.EpisodeBeats[i].Goal)
	}
}

func (b *Brief) normalize() {
	b.TitleWorking = nfc(b.TitleWorking)
	b.Purpose = nfc(b.Purpose)
	b.Required.Characters = nfcAll(b.Required.Characters)
	b.Required.Locations = nfcAll(b.Required.Locations)
	b.Required.PlotPoints = nfcAll(b.Required.PlotPoints)
}
