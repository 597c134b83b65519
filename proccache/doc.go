// Package proccache provides a lazily populated, self-healing cache for
// resolving a registered process name to a live process handle.
//
// A Ref is a single cache slot bound to one symbolic name. The first Get
// looks the name up through the configured registry resolvers and caches
// the resulting handle. Later Gets are served from the slot without a
// registry round-trip, so a Ref makes repeated lookups of a well-known
// process essentially free.
//
// ## Liveness Validation
//
// A cached handle carries no guarantee that the referenced process still
// exists. Every cache hit therefore validates the handle with a liveness
// check before returning it. A handle that is no longer alive is dropped
// and the name is resolved again within the same call, so callers never
// see a stale handle and never manage invalidation themselves. The check
// can be disabled with WithLivenessCheck for callers that tolerate stale
// handles in exchange for zero validation cost.
//
// ## Misses
//
// A name that is not currently registered is not an error; Get returns a
// nil handle. The miss is not cached, so each subsequent Get performs a
// fresh lookup until the name appears. WithNegativeCaching changes this:
// a miss is then remembered and served from the slot until Reset is
// called. Resolver failures (an unreachable registry, as opposed to an
// unregistered name) are returned as errors and leave the slot untouched.
//
// ## Single Owner
//
// A Ref belongs to the execution context that created it. It holds plain
// unsynchronized state and must not be shared between goroutines; give
// each goroutine its own Ref for the same name instead. Independent Refs
// never observe each other's cached state, even for the same name.
package proccache
