package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/statekit-labs/statekit/internal/platform"
	"github.com/statekit-labs/statekit/internal/schema"
)

// The reconciling write path. Overwriting the file with the in-memory
// contents would discard anything another process persisted since this
// instance last read, so Write instead re-reads the file under the lock,
// computes the delta between the base snapshot and the local contents,
// and replays that delta onto the just-read state.
//
// Changed nested objects are merged one level deep: only the sub-keys
// that actually changed locally are applied, so two processes editing
// different sub-keys of the same object both survive. When both sides
// changed the same leaf, the later writer wins; merging protects
// disjoint edits only.

// Write persists the local changes, reconciled onto the current on-disk
// state, and returns the merged document. On failure the in-memory state
// is left unchanged so the caller may retry.
func (f *File) Write(ctx context.Context) (*Contents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(ctx)
}

// WriteContents replaces the in-memory document and persists it, as a
// bulk-set convenience over SetContents followed by Write.
func (f *File) WriteContents(ctx context.Context, c *Contents) (*Contents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c == nil {
		c = NewContents()
	}
	f.contents = c
	return f.writeLocked(ctx)
}

// writeLocked runs the read-merge-write critical section. Caller holds f.mu.
func (f *File) writeLocked(ctx context.Context) (*Contents, error) {
	// The lock sentinel lives next to the document, so the parent
	// directory must exist before the first write can acquire it.
	if err := platform.EnsureSecureDir(filepath.Dir(f.path)); err != nil {
		return nil, err
	}

	handle, err := f.locks.Acquire(ctx, f.path)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	onDisk, err := f.loadLocked(false)
	if err != nil {
		return nil, err
	}

	merged := applyDelta(onDisk, computeDelta(f.base, f.contents))

	data, err := merged.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", f.path, err)
	}
	if f.opts.SchemaPath != "" {
		if err := validateAgainstSchema(data, f.opts.SchemaPath); err != nil {
			return nil, err
		}
	}
	if err := atomicPersist(f.path, data); err != nil {
		return nil, err
	}

	f.contents = merged
	f.base = merged.Clone()
	f.hasRead = true
	return f.contents, nil
}

type opKind int

const (
	opSet opKind = iota
	opMerge
	opRemove
)

// deltaOp is one reconciliation step for a top-level key.
type deltaOp struct {
	key   string
	kind  opKind
	value any // replacement value for opSet, fallback for opMerge
	sub   *subDelta
}

// subDelta carries the one-level-deep changes of a nested object.
type subDelta struct {
	set    map[string]any
	remove []string
}

// computeDelta diffs the local contents against the base snapshot taken at
// the last read. Keys changed locally become set or merge ops; keys removed
// locally become remove ops.
func computeDelta(base, cur *Contents) []deltaOp {
	var ops []deltaOp

	for _, k := range cur.Keys() {
		cv, _ := cur.Get(k)
		bv, had := base.Get(k)
		if had && reflect.DeepEqual(bv, cv) {
			continue
		}

		cm, curIsMap := cv.(map[string]any)
		bm, baseIsMap := bv.(map[string]any)
		if had && curIsMap && baseIsMap {
			ops = append(ops, deltaOp{key: k, kind: opMerge, value: cv, sub: diffObject(bm, cm)})
			continue
		}
		ops = append(ops, deltaOp{key: k, kind: opSet, value: cv})
	}

	for _, k := range base.Keys() {
		if !cur.Has(k) {
			ops = append(ops, deltaOp{key: k, kind: opRemove})
		}
	}
	return ops
}

// diffObject computes the changed and removed sub-keys of a nested object.
// Comparison below the first level is by deep equality; the sub-values
// themselves are applied wholesale.
func diffObject(base, cur map[string]any) *subDelta {
	d := &subDelta{set: make(map[string]any)}
	for sk, sv := range cur {
		if bv, ok := base[sk]; !ok || !reflect.DeepEqual(bv, sv) {
			d.set[sk] = sv
		}
	}
	for sk := range base {
		if _, ok := cur[sk]; !ok {
			d.remove = append(d.remove, sk)
		}
	}
	return d
}

// applyDelta replays local changes onto the just-read on-disk state.
func applyDelta(onDisk *Contents, ops []deltaOp) *Contents {
	for _, op := range ops {
		switch op.kind {
		case opSet:
			onDisk.Set(op.key, deepCopyValue(op.value))
		case opRemove:
			onDisk.Delete(op.key)
		case opMerge:
			dv, ok := onDisk.Get(op.key)
			dm, isMap := dv.(map[string]any)
			if !ok || !isMap {
				// The other side removed or retyped the key; fall back to
				// the full local value.
				onDisk.Set(op.key, deepCopyValue(op.value))
				continue
			}
			for sk, sv := range op.sub.set {
				dm[sk] = deepCopyValue(sv)
			}
			for _, sk := range op.sub.remove {
				delete(dm, sk)
			}
		}
	}
	return onDisk
}

// atomicPersist writes data to path via a temp file and rename, creating
// the parent directory with owner-only permissions. A crashed writer can
// never leave a half-written document behind.
func atomicPersist(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := platform.EnsureSecureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := tmp.Chmod(platform.FilePermSecure); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// validateAgainstSchema checks serialized document bytes against the JSON
// schema configured on the File.
func validateAgainstSchema(data []byte, schemaPath string) error {
	result, err := schema.Validate(data, schemaPath)
	if err != nil {
		return err
	}
	if !result.Valid {
		return result.AsError()
	}
	return nil
}
