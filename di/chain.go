package di

import (
	"context"

	"github.com/kbukum/tinyioc/errors"
)

type producingKey struct{}

// withProducing records e as being produced on the resolution chain in ctx.
func withProducing(ctx context.Context, e *ServiceEntry) context.Context {
	chain, _ := ctx.Value(producingKey{}).([]*ServiceEntry)
	next := make([]*ServiceEntry, len(chain), len(chain)+1)
	copy(next, chain)
	return context.WithValue(ctx, producingKey{}, append(next, e))
}

// checkCycle fails when e is already being produced further up the chain.
// Only dependencies resolved through the producer's context are tracked.
func checkCycle(ctx context.Context, e *ServiceEntry) error {
	chain, _ := ctx.Value(producingKey{}).([]*ServiceEntry)
	for i, p := range chain {
		if p != e {
			continue
		}
		names := make([]string, 0, len(chain)-i+1)
		for _, q := range chain[i:] {
			names = append(names, keyName(q.key))
		}
		return errors.DependencyCycle(append(names, keyName(e.key)))
	}
	return nil
}
