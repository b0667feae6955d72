package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dienay/rangos-api/internal/entities"
)

type ActorRepo interface {
	GetCustomerByID(ctx context.Context, id string) (entities.Customer, error)
	GetEstablishmentByID(ctx context.Context, id string) (entities.Establishment, error)
}

// Resolver maps an entity id to the actor kind behind it. Every order
// operation starts here: the caller's claimed id has already been
// authenticated upstream, the resolver only tells the two kinds apart.
type Resolver interface {
	Resolve(ctx context.Context, id string) (entities.Actor, error)
}

type entityResolver struct {
	repo ActorRepo
}

func NewEntityResolver(repo ActorRepo) *entityResolver {
	return &entityResolver{repo: repo}
}

// Resolve probes the customer store first, then establishments. An id
// present in neither fails with ErrEntityNotFound.
func (r *entityResolver) Resolve(ctx context.Context, id string) (entities.Actor, error) {
	if _, err := r.repo.GetCustomerByID(ctx, id); err == nil {
		return entities.Actor{Kind: entities.ActorCustomer, ID: id}, nil
	} else if !errors.Is(err, entities.ErrEntityNotFound) {
		return entities.Actor{}, fmt.Errorf("failed to resolve entity: %w", err)
	}

	if _, err := r.repo.GetEstablishmentByID(ctx, id); err == nil {
		return entities.Actor{Kind: entities.ActorEstablishment, ID: id}, nil
	} else if !errors.Is(err, entities.ErrEntityNotFound) {
		return entities.Actor{}, fmt.Errorf("failed to resolve entity: %w", err)
	}

	return entities.Actor{}, entities.ErrEntityNotFound
}
