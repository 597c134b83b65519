package proccache

import (
	"context"
	"errors"

	"github.com/hashicorp/go-multierror"
	logging "github.com/ipfs/go-log/v2"
	"github.com/proclet/go-proccache/process"
)

var log = logging.Logger("proccache")

// Resolver is an interface that a Ref uses to look up the process
// registered under its name. Each Resolver is a specific supplier of
// registry lookups. A Ref can be configured with any number of resolvers
// to consult, in order.
type Resolver interface {
	// WhereIs returns a handle for the process currently registered under
	// name, or nil if no process is registered. A non-nil error means the
	// resolver itself failed, not that the name is missing.
	WhereIs(ctx context.Context, name string) (process.Handle, error)
	// String returns a description of the resolver.
	String() string
}

// Ref is a cache slot holding at most one handle for the process
// registered under a fixed name.
//
// A Ref is owned by the execution context that created it and is not safe
// for concurrent use. Each goroutine that needs cached lookups of the
// same name should hold its own Ref.
type Ref struct {
	name      string
	resolvers []Resolver
	validate  bool
	negative  bool

	cached   process.Handle
	notFound bool
}

// New creates an empty cache slot for the process registered under name.
func New(name string, options ...Option) (*Ref, error) {
	opts, err := getOpts(options)
	if err != nil {
		return nil, err
	}

	if len(opts.resolvers) == 0 {
		return nil, errors.New("no registry resolvers")
	}

	return &Ref{
		name:      name,
		resolvers: opts.resolvers,
		validate:  opts.validate,
		negative:  opts.negative,
	}, nil
}

// Name returns the symbolic name this slot resolves.
func (r *Ref) Name() string {
	return r.name
}

// Peek returns the currently cached handle without side effects, or nil
// if the slot is empty. The handle is returned as-is, without a liveness
// check.
func (r *Ref) Peek() process.Handle {
	return r.cached
}

// Set replaces the cached value. Passing nil clears the slot. Subsequent
// Gets observe the new value; a non-nil value prevents lookups until the
// handle dies or the slot is reset.
func (r *Ref) Set(h process.Handle) {
	r.cached = h
	r.notFound = false
}

// Reset clears the slot, causing the next Get to look the process up
// again. It also discards a remembered miss when negative caching is
// enabled.
func (r *Ref) Reset() {
	r.cached = nil
	r.notFound = false
}

// Get returns the best available handle for the slot's name. A cached
// handle that passes the liveness check is returned without a registry
// call. Otherwise the name is resolved afresh and the slot updated with
// the outcome: the new handle, or nil when the name is not currently
// registered.
//
// A nil handle with a nil error means the name is not registered. A
// non-nil error means resolution itself failed; the slot is left empty
// and the caller decides whether and when to call again.
func (r *Ref) Get(ctx context.Context) (process.Handle, error) {
	if r.cached != nil {
		if !r.validate || r.cached.Alive(ctx) {
			return r.cached, nil
		}
		// The referenced process is gone. Clear the slot and resolve
		// again within this same call.
		log.Debugw("Cached process no longer alive", "name", r.name, "pid", r.cached.PID())
		r.cached = nil
	} else if r.negative && r.notFound {
		return nil, nil
	}

	h, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	r.cached = h
	r.notFound = h == nil
	return h, nil
}

// resolve performs one fresh resolution against the configured resolvers.
// The first resolver that knows the name wins. Resolver failures are
// collected and returned only if no resolver produced a handle.
func (r *Ref) resolve(ctx context.Context) (process.Handle, error) {
	var errs error
	for _, res := range r.resolvers {
		h, err := res.WhereIs(ctx, r.name)
		if err != nil {
			log.Errorw("Cannot resolve process", "err", err, "name", r.name, "resolver", res)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			errs = multierror.Append(errs, err)
			continue
		}
		if h != nil {
			return h, nil
		}
	}
	return nil, errs
}
