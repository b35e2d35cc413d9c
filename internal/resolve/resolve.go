// Package resolve computes the on-disk location of a named state document.
// Resolution is a pure function of its inputs; no I/O is performed.
package resolve

import (
	"errors"
	"path/filepath"
)

// ErrMissingFilename indicates resolution was attempted without a filename.
var ErrMissingFilename = errors.New("missing filename")

// Request carries the inputs of one path resolution.
type Request struct {
	// Filename is the document file name, e.g. "config.json". Required.
	Filename string
	// IsGlobal places the document under the global home-state directory.
	IsGlobal bool
	// IsState places a project-local document under the state folder.
	IsState bool
	// FilePath, when set, overrides the directory segment below RootFolder.
	FilePath string
	// RootFolder is the base directory for non-global documents. Global
	// documents use GlobalDir instead.
	RootFolder string
	// GlobalDir is the global home-state directory from the run context.
	GlobalDir string
	// StateFolder is the state directory name, e.g. ".statekit".
	StateFolder string
}

// Path resolves the absolute path of the document described by req.
//
// Precedence: global documents always live directly under the global
// home-state directory, regardless of IsState. Otherwise an explicit
// FilePath wins over the state folder, and a plain root placement is the
// fallback.
func Path(req Request) (string, error) {
	if req.Filename == "" {
		return "", ErrMissingFilename
	}

	switch {
	case req.IsGlobal:
		return filepath.Join(req.GlobalDir, req.Filename), nil
	case req.FilePath != "":
		return filepath.Join(req.RootFolder, req.FilePath, req.Filename), nil
	case req.IsState:
		return filepath.Join(req.RootFolder, req.StateFolder, req.Filename), nil
	default:
		return filepath.Join(req.RootFolder, req.Filename), nil
	}
}
