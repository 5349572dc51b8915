package di

import "fmt"

// Lifetime controls how often an entry's producer runs.
type Lifetime int

const (
	// Singleton entries are produced once, on first resolution, and cached.
	Singleton Lifetime = iota
	// Transient entries are produced on every resolution.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return fmt.Sprintf("lifetime(%d)", int(l))
	}
}

// lifetimeKey is the services-section key naming a producer's lifetime.
const lifetimeKey = "lifetime"

// ParseLifetime parses "singleton" or "transient".
func ParseLifetime(s string) (Lifetime, error) {
	switch s {
	case "singleton":
		return Singleton, nil
	case "transient":
		return Transient, nil
	default:
		return 0, fmt.Errorf("unknown lifetime %q", s)
	}
}
