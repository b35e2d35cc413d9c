package document

import (
	"context"
	"os"
)

// Promise is the deferred result of one store operation. The operation
// runs in its own goroutine; Await blocks until it settles. A Promise
// may be awaited any number of times.
type Promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Await blocks until the operation settles and returns its outcome.
func (p *Promise[T]) Await() (T, error) {
	<-p.done
	return p.val, p.err
}

// Done returns a channel closed when the operation has settled, for use
// in select statements.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

func deferred[T any](fn func() (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.val, p.err = fn()
	}()
	return p
}

// Async is the deferred-call facade over a File. Every method schedules
// the corresponding blocking operation on a goroutine and returns a
// Promise; semantics are identical to the blocking forms.
type Async struct {
	f *File
}

// Async returns the deferred-call facade for the file.
func (f *File) Async() Async {
	return Async{f: f}
}

// Read is the deferred form of File.Read.
func (a Async) Read(ctx context.Context) *Promise[*Contents] {
	return deferred(func() (*Contents, error) { return a.f.Read(ctx) })
}

// ReadWith is the deferred form of File.ReadWith.
func (a Async) ReadWith(ctx context.Context, ro ReadOptions) *Promise[*Contents] {
	return deferred(func() (*Contents, error) { return a.f.ReadWith(ctx, ro) })
}

// Write is the deferred form of File.Write.
func (a Async) Write(ctx context.Context) *Promise[*Contents] {
	return deferred(func() (*Contents, error) { return a.f.Write(ctx) })
}

// WriteContents is the deferred form of File.WriteContents.
func (a Async) WriteContents(ctx context.Context, c *Contents) *Promise[*Contents] {
	return deferred(func() (*Contents, error) { return a.f.WriteContents(ctx, c) })
}

// Exists is the deferred form of File.Exists.
func (a Async) Exists(ctx context.Context) *Promise[bool] {
	return deferred(func() (bool, error) { return a.f.Exists(ctx) })
}

// Stat is the deferred form of File.Stat.
func (a Async) Stat(ctx context.Context) *Promise[os.FileInfo] {
	return deferred(func() (os.FileInfo, error) { return a.f.Stat(ctx) })
}

// Access is the deferred form of File.Access.
func (a Async) Access(ctx context.Context) *Promise[struct{}] {
	return deferred(func() (struct{}, error) { return struct{}{}, a.f.Access(ctx) })
}

// Unlink is the deferred form of File.Unlink.
func (a Async) Unlink(ctx context.Context) *Promise[struct{}] {
	return deferred(func() (struct{}, error) { return struct{}{}, a.f.Unlink(ctx) })
}
