package proccache_test

import (
	"context"
	"fmt"

	"github.com/proclet/go-proccache/proccache"
	"github.com/proclet/go-proccache/process"
)

// localHandle is a handle for a process running in this program. The
// process is alive until its done channel is closed.
type localHandle struct {
	pid  process.PID
	done chan struct{}
}

func (h *localHandle) PID() process.PID {
	return h.pid
}

func (h *localHandle) Alive(ctx context.Context) bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// localResolver resolves names registered within this program.
type localResolver map[string]*localHandle

func (r localResolver) WhereIs(ctx context.Context, name string) (process.Handle, error) {
	h, ok := r[name]
	if !ok || !h.Alive(ctx) {
		return nil, nil
	}
	return h, nil
}

func (r localResolver) String() string {
	return "localResolver"
}

func Example() {
	// A worker goroutine registered under a well-known name.
	done := make(chan struct{})
	registry := localResolver{
		"counter-process": {pid: process.NewPID(), done: done},
	}
	go func() {
		<-done // stands in for the worker's message loop
	}()

	counter, err := proccache.New("counter-process", proccache.WithResolver(registry))
	if err != nil {
		panic(err)
	}

	// First call looks the process up in the registry.
	h, _ := counter.Get(context.Background())
	fmt.Println("registered:", h != nil)

	// Subsequent calls are served from the cache.
	h, _ = counter.Get(context.Background())
	fmt.Println("cached:", h != nil)

	// Once the process stops, the cache stops serving its handle.
	close(done)
	h, _ = counter.Get(context.Background())
	fmt.Println("after stop:", h != nil)

	// Output:
	// registered: true
	// cached: true
	// after stop: false
}

func ExampleRef_Set() {
	registry := localResolver{}

	ref, err := proccache.New("counter-process", proccache.WithResolver(registry))
	if err != nil {
		panic(err)
	}

	// Seed the slot directly; Get serves it without a lookup.
	h := &localHandle{pid: process.NewPID(), done: make(chan struct{})}
	ref.Set(h)

	got, _ := ref.Get(context.Background())
	fmt.Println("seeded:", got.PID() == h.PID())

	// Reset forces the next Get to consult the registry again.
	ref.Reset()
	got, _ = ref.Get(context.Background())
	fmt.Println("after reset:", got != nil)

	// Output:
	// seeded: true
	// after reset: false
}
