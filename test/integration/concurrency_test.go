//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/statekit-labs/statekit/internal/document"
)

// Many writers, one document, every writer editing its own key. With
// reconciling writes and locking enabled, no edit may be lost regardless
// of interleaving.
func TestConcurrentWritersDisjointKeys(t *testing.T) {
	env := setupTestEnv(t)
	root := t.TempDir()
	ctx := context.Background()

	const writers = 16

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := document.New(env, document.Options{
				Filename:   "shared.json",
				RootFolder: root,
			})
			if err != nil {
				errs <- err
				return
			}
			if _, err := f.Read(ctx); err != nil {
				errs <- err
				return
			}
			f.Set(fmt.Sprintf("writer-%02d", i), float64(i))
			if _, err := f.Write(ctx); err != nil {
				errs <- fmt.Errorf("writer %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	fresh, err := document.New(env, document.Options{
		Filename:   "shared.json",
		RootFolder: root,
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := fresh.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != writers {
		t.Fatalf("expected %d keys, got %d: %v", writers, c.Len(), c.Keys())
	}
	for i := 0; i < writers; i++ {
		key := fmt.Sprintf("writer-%02d", i)
		if v, ok := c.Get(key); !ok || v != float64(i) {
			t.Errorf("%s = %v, %v", key, v, ok)
		}
	}
}

// Writers hammering the same nested object's different sub-keys. The
// one-level-deep merge must preserve all of them.
func TestConcurrentWritersSameObject(t *testing.T) {
	env := setupTestEnv(t)
	root := t.TempDir()
	ctx := context.Background()

	const writers = 8

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := document.New(env, document.Options{
				Filename:   "org.json",
				RootFolder: root,
			})
			if err != nil {
				errs <- err
				return
			}
			if _, err := f.Read(ctx); err != nil {
				errs <- err
				return
			}
			f.Set(fmt.Sprintf("org.field-%d", i), true)
			if _, err := f.Write(ctx); err != nil {
				errs <- fmt.Errorf("writer %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	fresh, err := document.New(env, document.Options{
		Filename:   "org.json",
		RootFolder: root,
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := fresh.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := c.Get("org")
	if !ok {
		t.Fatal("org object missing")
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		t.Fatalf("org = %T, want object", v)
	}
	if len(m) != writers {
		t.Errorf("expected %d sub-keys, got %d: %v", writers, len(m), m)
	}
}

// Writers add keys, then remove their own in a second round; removals
// must propagate through the merge like adds do.
func TestConcurrentAddThenRemove(t *testing.T) {
	env := setupTestEnv(t)
	root := t.TempDir()
	ctx := context.Background()

	const writers = 6

	open := func() (*document.File, error) {
		return document.New(env, document.Options{
			Filename:   "churn.json",
			RootFolder: root,
		})
	}

	run := func(phase string, action func(f *document.File, i int)) {
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				f, err := open()
				if err != nil {
					errs <- err
					return
				}
				if _, err := f.Read(ctx); err != nil {
					errs <- err
					return
				}
				action(f, i)
				if _, err := f.Write(ctx); err != nil {
					errs <- fmt.Errorf("%s writer %d: %w", phase, i, err)
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatal(err)
		}
	}

	run("add", func(f *document.File, i int) {
		f.Set(fmt.Sprintf("key-%d", i), "present")
	})
	run("remove", func(f *document.File, i int) {
		f.Unset(fmt.Sprintf("key-%d", i))
	})

	fresh, err := open()
	if err != nil {
		t.Fatal(err)
	}
	c, err := fresh.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty document, got %v", c.Keys())
	}
}
