package shell

import (
	"os"

	"github.com/josephlewis42/minibash/core/config"
	"github.com/josephlewis42/minibash/core/vos"
	"golang.org/x/sys/unix"
)

// Resolver finds the executable for a bare command name.
//
// The home directory is searched before the system directory and no PATH
// lookup happens at all.
type Resolver struct {
	// Env is consulted on every resolution, values are never cached.
	Env vos.VEnv
	// HomeEnv names the variable holding the first directory to search.
	HomeEnv string
	// SystemDir is searched after the home directory.
	SystemDir string
	// MaxPathLength is the size of the path buffer, candidates are truncated
	// to MaxPathLength-1 bytes.
	MaxPathLength int
}

// NewResolver creates a resolver using the limits in cfg.
func NewResolver(cfg *config.Configuration, env vos.VEnv) *Resolver {
	return &Resolver{
		Env:           env,
		HomeEnv:       cfg.HomeEnv,
		SystemDir:     cfg.SystemDir,
		MaxPathLength: cfg.MaxPathLength,
	}
}

// Candidates lists the paths checked for name, in order.
func (r *Resolver) Candidates(name string) []string {
	var out []string

	// A defined but empty home still counts, it resolves against the root.
	if home, ok := r.Env.LookupEnv(r.HomeEnv); ok {
		out = append(out, r.joinPath(home, name))
	}

	return append(out, r.joinPath(r.SystemDir, name))
}

// Resolve returns the first candidate for name that the current user can
// execute, or ErrCommandNotFound.
func (r *Resolver) Resolve(name string) (string, error) {
	for _, candidate := range r.Candidates(name) {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", ErrCommandNotFound
}

func (r *Resolver) joinPath(dir, name string) string {
	path := dir + "/" + name
	if r.MaxPathLength > 0 && len(path) > r.MaxPathLength-1 {
		path = path[:r.MaxPathLength-1]
	}
	return path
}

func isExecutable(path string) bool {
	if err := unix.Access(path, unix.X_OK); err != nil {
		return false
	}

	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
