package config

import (
	"os"
	"path/filepath"
	"sync"
)

// RootEnvVar overrides the jsshelper root directory
const RootEnvVar = "JSSHELPER_ROOT"

// Paths holds the directories jsshelper uses
type Paths struct {
	Root   string
	Config string
}

var (
	cachedPaths     *Paths
	cachedPathsOnce sync.Once
)

// DefaultPaths returns the jsshelper directories.
// The root is $JSSHELPER_ROOT, or ~/.jsshelper when unset.
func DefaultPaths() *Paths {
	cachedPathsOnce.Do(func() {
		cachedPaths = computePaths()
	})
	return cachedPaths
}

func computePaths() *Paths {
	root := os.Getenv(RootEnvVar)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		root = filepath.Join(home, ".jsshelper")
	}

	root, err := filepath.Abs(root)
	if err != nil {
		root = filepath.Clean(root)
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config"),
	}
}

// ResetPathsCache forgets the computed paths so the next DefaultPaths call
// re-reads the environment. Used by tests.
func ResetPathsCache() {
	cachedPathsOnce = sync.Once{}
	cachedPaths = nil
}
