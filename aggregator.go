// aggregator.go
package main

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Aggregator scatter-gathers every registered source. Source evaluations
// are independent: each writes only its own slot, so a fault in one has no
// effect on any other. The Aggregator itself never fails; an empty source
// list yields an empty Aggregate.
type Aggregator struct {
	Concurrency int
}

// Run invokes and decodes every source and returns the complete Aggregate,
// keyed exactly by the registered source IDs in registration order.
func (a Aggregator) Run(ctx context.Context, sources []Descriptor, topics TopicSet) *Aggregate {
	limit := a.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	joined := topics.Join()
	outcomes := make([]Outcome, len(sources))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, source := range sources {
		g.Go(func() error {
			outcomes[i] = evaluate(ctx, source.ID, source.Invoker, joined)
			return nil
		})
	}
	g.Wait()

	aggregate := newAggregate(len(sources))
	for i, source := range sources {
		aggregate.add(source.ID, outcomes[i])
		if outcomes[i].OK() {
			log.Printf("✓ %s", source.ID)
		} else {
			log.Printf("✗ %s: %s (%s)", source.ID, outcomes[i].Failure.Message, outcomes[i].Failure.Stage)
		}
	}

	return aggregate
}
