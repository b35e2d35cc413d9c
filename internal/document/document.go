package document

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/statekit-labs/statekit/internal/home"
	"github.com/statekit-labs/statekit/internal/lock"
	"github.com/statekit-labs/statekit/internal/resolve"
)

// Migrator upgrades a parsed document to the current format. Implemented
// by internal/migrate; declared here so the store stays decoupled from
// the migration registry.
type Migrator interface {
	// Apply migrates the contents in place. Reports whether anything changed.
	Apply(c *Contents) (bool, error)
}

// Options configures one File. All fields except Filename are optional.
type Options struct {
	// Filename is the document file name, e.g. "config.json". Required.
	Filename string
	// IsGlobal places the document under the global home-state directory.
	IsGlobal bool
	// IsState places a project-local document under the state folder.
	IsState bool
	// FilePath overrides the directory segment below RootFolder.
	FilePath string
	// RootFolder is the base directory for non-global documents.
	// Defaults to the current working directory.
	RootFolder string
	// ThrowOnNotFound makes Read fail on a missing file instead of
	// degrading to an empty document.
	ThrowOnNotFound bool
	// DisableLock skips cross-process locking around writes. Single
	// process and test scenarios only; concurrent writers may then lose
	// data on overwrite conflicts.
	DisableLock bool
	// SchemaPath, when set, validates the document against a JSON schema
	// on every read and write.
	SchemaPath string
	// Migrator, when set, upgrades the document format after each read.
	Migrator Migrator
}

// ReadOptions controls one read.
type ReadOptions struct {
	// Force re-reads from disk even when cached contents exist.
	Force bool
	// MustExist fails with ErrFileNotFound when the file is absent.
	MustExist bool
}

// File is a structured document bound to one resolved path. Methods are
// safe for concurrent use within a process; cross-process safety comes
// from the advisory lock taken during Write.
type File struct {
	path  string
	opts  Options
	locks *lock.Manager

	mu       sync.Mutex
	contents *Contents
	base     *Contents
	hasRead  bool
}

// New resolves the document path from opts and the run context and returns
// an unread File. No disk I/O is performed beyond working-directory lookup.
func New(env *home.Context, opts Options) (*File, error) {
	root := opts.RootFolder
	if root == "" && !opts.IsGlobal {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root = wd
	}

	path, err := resolve.Path(resolve.Request{
		Filename:    opts.Filename,
		IsGlobal:    opts.IsGlobal,
		IsState:     opts.IsState,
		FilePath:    opts.FilePath,
		RootFolder:  root,
		GlobalDir:   env.Dir,
		StateFolder: env.StateFolder,
	})
	if err != nil {
		return nil, err
	}

	locks := lock.NewManager(env.Lock)
	if opts.DisableLock {
		locks = lock.Disabled()
	}

	return &File{
		path:     path,
		opts:     opts,
		locks:    locks,
		contents: NewContents(),
		base:     NewContents(),
	}, nil
}

// Path returns the resolved absolute path of the document.
func (f *File) Path() string {
	return f.path
}

// Read loads the document using the File's configured not-found behavior.
// A cached result is returned without touching disk.
func (f *File) Read(ctx context.Context) (*Contents, error) {
	return f.ReadWith(ctx, ReadOptions{MustExist: f.opts.ThrowOnNotFound})
}

// ReadWith loads the document. Unless Force is set, a prior successful
// read is returned from cache. A missing file yields an empty document
// when MustExist is false, and ErrFileNotFound otherwise. Unparseable
// content fails with CorruptDocumentError.
func (f *File) ReadWith(ctx context.Context, ro ReadOptions) (*Contents, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasRead && !ro.Force {
		return f.contents, nil
	}

	c, err := f.loadLocked(ro.MustExist)
	if err != nil {
		return nil, err
	}

	if f.opts.Migrator != nil {
		if _, err := f.opts.Migrator.Apply(c); err != nil {
			return nil, fmt.Errorf("migrating %s: %w", f.path, err)
		}
	}

	f.contents = c
	f.base = c.Clone()
	f.hasRead = true
	return f.contents, nil
}

// loadLocked reads and parses the file without consulting the cache.
// Caller holds f.mu.
func (f *File) loadLocked(mustExist bool) (*Contents, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		if mustExist {
			return nil, &NotFoundError{Path: f.path, Op: "read"}
		}
		return NewContents(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	c := NewContents()
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, &CorruptDocumentError{Path: f.path, Err: err}
	}

	if f.opts.SchemaPath != "" {
		if err := validateAgainstSchema(data, f.opts.SchemaPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the value addressed by a dot-path key, reporting absence
// instead of failing. Missing intermediate segments count as absent.
func (f *File) Get(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return getPath(f.contents, key)
}

// Set stores a value at a dot-path key, creating intermediate objects on
// demand. A nil value unsets the key. The mutation is in-memory only;
// nothing reaches disk until Write.
func (f *File) Set(key string, value any) {
	if value == nil {
		f.Unset(key)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	setPath(f.contents, key, value)
}

// Unset removes the property addressed by a dot-path key. Reports whether
// anything was removed; absent keys are a no-op.
func (f *File) Unset(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return unsetPath(f.contents, key)
}

// Contents returns the live in-memory document.
func (f *File) Contents() *Contents {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contents
}

// SetContents replaces the whole in-memory document. The base snapshot is
// untouched, so the replacement is reconciled like any other local edit.
func (f *File) SetContents(c *Contents) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c == nil {
		c = NewContents()
	}
	f.contents = c
}

// Exists reports whether the document exists on disk.
func (f *File) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(f.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return true, nil
}

// Stat returns file metadata. Fails with ErrFileNotFound when absent.
func (f *File) Stat(ctx context.Context) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(f.path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: f.path, Op: "stat"}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return info, nil
}

// Access verifies the document can be opened for reading. Fails with
// ErrFileNotFound when absent.
func (f *File) Access(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fh, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return &NotFoundError{Path: f.path, Op: "access"}
	}
	if err != nil {
		return fmt.Errorf("access %s: %w", f.path, err)
	}
	return fh.Close()
}

// Unlink removes the document from disk. Fails with ErrFileNotFound when
// the file does not exist.
func (f *File) Unlink(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return &NotFoundError{Path: f.path, Op: "unlink"}
	}
	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("unlink %s: %w", f.path, err)
	}
	return nil
}
