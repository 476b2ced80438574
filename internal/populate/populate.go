// Package populate computes derived, never-persisted fields and merges them
// into a copy of a fetched user document.
package populate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

// Resolver computes one virtual field. Applies gates the resolver on the base
// document's attributes; when it returns false the field is simply absent
// from the output, not null. Resolve runs concurrently with other resolvers.
type Resolver struct {
	Applies func(user *types.User) bool
	Resolve func(ctx context.Context, user *types.User) (any, error)
}

type Populator struct {
	resolvers map[string]Resolver
}

func New(resolvers map[string]Resolver) *Populator {
	return &Populator{resolvers: resolvers}
}

// Fields resolves the requested virtual fields for the user and merges them
// into a copy of the document. Field names are space-separated; a name with
// no registered resolver is deliberately a no-op rather than an error, so
// clients can over-request. The base document is never mutated.
func (p *Populator) Fields(ctx context.Context, user *types.User, fields string) (map[string]any, error) {
	base, err := toDocument(user)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		resolved = make(map[string]any)
	)
	group, ctx := errgroup.WithContext(ctx)

	for _, name := range strings.Fields(fields) {
		resolver, ok := p.resolvers[name]
		if !ok || !resolver.Applies(user) {
			continue
		}
		group.Go(func() error {
			value, err := resolver.Resolve(ctx, user)
			if err != nil {
				return fmt.Errorf("failed to resolve field %s: %w", name, err)
			}
			mu.Lock()
			resolved[name] = value
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for name, value := range resolved {
		base[name] = value
	}
	return base, nil
}

func toDocument(user *types.User) (map[string]any, error) {
	raw, err := bson.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	var doc map[string]any
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return doc, nil
}
