package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"reel/internal/layout"
	"reel/internal/services"
)

// ErrEpisodeLocked marks a run refused because another run holds the episode.
var ErrEpisodeLocked = errors.New("episode locked")

// LockPath returns the advisory lock file guarding episode.
func LockPath(dir string, episode int) string {
	return filepath.Join(dir, layout.DirName(episode)+".lock")
}

// lockEpisode takes the per-episode lock without blocking. A lock held by
// another run is a configuration error so callers fail fast instead of
// interleaving writes.
func lockEpisode(dir string, episode int) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "pipeline", "lock", "create lock directory", err)
	}
	path := LockPath(dir, episode)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "pipeline", "lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock",
			fmt.Sprintf("%s is busy in another run (%s)", layout.Label(episode), path), ErrEpisodeLocked)
	}
	return lock, nil
}
