package process

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PID is the globally unique identifier of a process managed by the
// runtime. Two handles reference the same process exactly when their PIDs
// are equal.
type PID string

// NewPID generates a new unique process identifier.
func NewPID() PID {
	return PID(uuid.NewString())
}

// ParsePID validates that s is a well-formed process identifier.
func ParsePID(s string) (PID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid pid %q: %s", s, err)
	}
	return PID(id.String()), nil
}

func (p PID) String() string {
	return string(p)
}

// Handle is an opaque reference to a process. It is a copyable capability
// value; holders never mutate the referenced process through it.
type Handle interface {
	// PID returns the identifier of the referenced process.
	PID() PID
	// Alive reports whether the referenced process still exists. It blocks
	// only as long as the underlying runtime check blocks.
	Alive(ctx context.Context) bool
}

// Info describes a process registration.
type Info struct {
	// PID uniquely identifies the registered process.
	PID PID
	// Name is the symbolic name the process is registered under.
	Name string `json:",omitempty"`
	// Node identifies the runtime node that hosts the process.
	Node string `json:",omitempty"`
	// StartedAt is the time the process was started.
	StartedAt string `json:",omitempty"`
}
