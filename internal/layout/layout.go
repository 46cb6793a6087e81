// Package layout owns the on-disk shape of an episode directory and the
// relative output paths written into shot lists and task manifests.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

const (
	EpisodesDir = "episodes"

	BriefFile    = "brief.yaml"
	OutlineFile  = "outline.md"
	ScriptFile   = "script.md"
	ShotlistFile = "shotlist.csv"

	PromptsDir    = "prompts"
	StoryboardDir = "storyboard"
	ClipsDir      = "clips"
	AssetsDir     = "assets"
	DeliveryDir   = "delivery"

	StoryboardTasksFile = "storyboard_tasks.jsonl"
	VideoTasksFile      = "video_tasks.jsonl"
	RenderPlanFile      = "RENDER_PLAN.md"
	ChecklistFile       = "DELIVERY_CHECKLIST.md"
)

// OutputDirs is the standard per-episode directory skeleton.
var OutputDirs = []string{PromptsDir, StoryboardDir, ClipsDir, AssetsDir, DeliveryDir}

var episodeDirPattern = regexp.MustCompile(`^ep[0-9]{4}$`)

// Episode addresses one episode directory under a project root.
type Episode struct {
	Root   string
	Number int
}

// NewEpisode builds an Episode for root and episode number.
func NewEpisode(root string, number int) Episode {
	return Episode{Root: root, Number: number}
}

// DirName returns the zero-padded directory name, e.g. ep0007.
func DirName(number int) string {
	return fmt.Sprintf("ep%04d", number)
}

// Label returns the display label, e.g. EP0007.
func Label(number int) string {
	return fmt.Sprintf("EP%04d", number)
}

// Dir returns the absolute episode directory.
func (e Episode) Dir() string {
	return filepath.Join(e.Root, EpisodesDir, DirName(e.Number))
}

// Path joins elems under the episode directory.
func (e Episode) Path(elems ...string) string {
	return filepath.Join(append([]string{e.Dir()}, elems...)...)
}

// Rel returns the root-relative, slash-separated path of elems under the
// episode directory. These paths are written into artifacts and must not
// depend on where the project is checked out.
func (e Episode) Rel(elems ...string) string {
	return filepath.ToSlash(filepath.Join(append([]string{EpisodesDir, DirName(e.Number)}, elems...)...))
}

// ShotOutputPath returns the render target for a shot: clips/<id>.mp4 for
// video shots and storyboard/<id>.png otherwise.
func (e Episode) ShotOutputPath(shotID string, video bool) string {
	if video {
		return e.Rel(ClipsDir, shotID+".mp4")
	}
	return e.Rel(StoryboardDir, shotID+".png")
}

// Exists reports whether path exists. Errors other than not-exist are
// returned so callers do not treat an unreadable artifact as absent.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// EpisodeRef is a discovered episode directory.
type EpisodeRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// ListEpisodes returns ep[0-9]{4} directories under root/episodes, sorted.
// A missing episodes directory yields an empty list.
func ListEpisodes(root string) ([]EpisodeRef, error) {
	entries, err := os.ReadDir(filepath.Join(root, EpisodesDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []EpisodeRef{}, nil
		}
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	refs := make([]EpisodeRef, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !episodeDirPattern.MatchString(entry.Name()) {
			continue
		}
		refs = append(refs, EpisodeRef{
			ID:   entry.Name(),
			Path: EpisodesDir + "/" + entry.Name(),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// ListFiles returns every regular file under the episode directory as
// root-relative slash paths, sorted.
func (e Episode) ListFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(e.Dir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(e.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
