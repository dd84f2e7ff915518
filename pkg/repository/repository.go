// Package repository turns domain-entity CRUD into per-source operations
// through a router, defining what "saved", "found", "updated" and "deleted"
// mean when multiple storage backends can disagree.
package repository

import (
	"context"
	"errors"
	"fmt"

	"plotter/pkg/datasource"
	"plotter/pkg/log"
	"plotter/pkg/router"
)

// Repository is a generic multi-source repository for one entity kind. It is
// built from a router over sources storing record type R and a mapper between
// R and the entity type E.
type Repository[DS datasource.Store[R], R any, E any] struct {
	entity string
	router *router.Router[DS]
	mapper Mapper[E, R]
	idOf   func(E) string
}

// New creates a repository. The entity name annotates errors; idOf extracts
// an entity's ID for the same purpose.
func New[DS datasource.Store[R], R any, E any](
	entityName string,
	rt *router.Router[DS],
	mapper Mapper[E, R],
	idOf func(E) string,
) *Repository[DS, R, E] {
	return &Repository[DS, R, E]{entity: entityName, router: rt, mapper: mapper, idOf: idOf}
}

// Router exposes the underlying router for health checks and reconfiguration.
func (r *Repository[DS, R, E]) Router() *router.Router[DS] {
	return r.router
}

// wrap annotates an error with the repository method that produced it.
func (r *Repository[DS, R, E]) wrap(method, id string, err error) error {
	if id == "" {
		return fmt.Errorf("%s repository: %s: %w", r.entity, method, err)
	}
	return fmt.Errorf("%s repository: %s %q: %w", r.entity, method, id, err)
}

// Save maps the entity to a record and writes it to every source the routing
// strategy selects. It succeeds as long as one write landed and returns the
// ID reported by the first source that succeeded, in write order.
func (r *Repository[DS, R, E]) Save(ctx context.Context, e E) (string, error) {
	rec := r.mapper.ToRecord(e)

	results, err := router.ExecuteWrite(ctx, r.router, func(ctx context.Context, ds DS) (string, error) {
		return ds.Save(ctx, rec)
	})
	if err != nil {
		return "", r.wrap("save", r.idOf(e), err)
	}

	for _, res := range results {
		if res.OK() {
			return res.Value, nil
		}
	}
	// Unreachable: ExecuteWrite fails when nothing succeeded.
	return "", r.wrap("save", "", router.ErrAllSourcesFailed)
}

// lookup carries one source's answer through the read fallback loop.
type lookup[R any] struct {
	rec R
}

// FindByID walks the available sources until one holds the record and maps it
// back to an entity. A source that cleanly reports "not present" does not
// stop the fallback; when every source reports a clean miss the repository
// answers (zero, false, nil) rather than an error. When at least one source
// failed and none held the record, the failure is surfaced, since the record
// may live on the failing source.
func (r *Repository[DS, R, E]) FindByID(ctx context.Context, id string) (E, bool, error) {
	var zero E
	sawFailure := false

	found, err := router.ExecuteRead(ctx, r.router, func(ctx context.Context, ds DS) (lookup[R], error) {
		rec, ok, err := ds.FindByID(ctx, id)
		if err != nil {
			sawFailure = true
			return lookup[R]{}, err
		}
		if !ok {
			return lookup[R]{}, errSourceMiss
		}
		return lookup[R]{rec: rec}, nil
	})
	if err == nil {
		return r.mapper.ToEntity(found.rec), true, nil
	}
	if errors.Is(err, router.ErrAllSourcesFailed) && !sawFailure {
		// Every source answered, none holds the record.
		return zero, false, nil
	}
	return zero, false, r.wrap("findById", id, err)
}

// FindAll returns all entities from the first source that answers.
func (r *Repository[DS, R, E]) FindAll(ctx context.Context) ([]E, error) {
	recs, err := router.ExecuteRead(ctx, r.router, func(ctx context.Context, ds DS) ([]R, error) {
		return ds.FindAll(ctx)
	})
	if err != nil {
		return nil, r.wrap("findAll", "", err)
	}

	entities := make([]E, 0, len(recs))
	for _, rec := range recs {
		entities = append(entities, r.mapper.ToEntity(rec))
	}
	return entities, nil
}

// Update writes the entity to every selected source. It succeeds when any
// source reports the record updated; when the targets all answered but none
// held the record it fails with ErrNotFoundAnywhere, and when no target was
// selected at all it fails with ErrNoSources.
func (r *Repository[DS, R, E]) Update(ctx context.Context, e E) error {
	id := r.idOf(e)
	rec := r.mapper.ToRecord(e)

	results, err := router.ExecuteWrite(ctx, r.router, func(ctx context.Context, ds DS) (bool, error) {
		return ds.Update(ctx, rec)
	})
	if err != nil {
		if errors.Is(err, router.ErrNoSourcesAvailable) {
			return r.wrap("update", id, ErrNoSources)
		}
		return r.wrap("update", id, err)
	}

	for _, res := range results {
		if res.OK() && res.Value {
			return nil
		}
	}
	return r.wrap("update", id, ErrNotFoundAnywhere)
}

// DeleteByID removes the record from every selected source. It reports true
// when any source held and deleted the record.
func (r *Repository[DS, R, E]) DeleteByID(ctx context.Context, id string) (bool, error) {
	results, err := router.ExecuteWrite(ctx, r.router, func(ctx context.Context, ds DS) (bool, error) {
		return ds.DeleteByID(ctx, id)
	})
	if err != nil {
		return false, r.wrap("deleteById", id, err)
	}

	for _, res := range results {
		if res.OK() && res.Value {
			return true, nil
		}
	}
	return false, nil
}

// Exists reports whether the record exists according to the first source that
// answers a read. Unlike the other reads it swallows every failure, including
// having no source at all, and reports false.
func (r *Repository[DS, R, E]) Exists(ctx context.Context, id string) bool {
	exists, err := router.ExecuteRead(ctx, r.router, func(ctx context.Context, ds DS) (bool, error) {
		return ds.Exists(ctx, id), nil
	})
	if err != nil {
		log.Debug().
			Str("entity", r.entity).
			Str("id", id).
			Err(err).
			Msg("Existence check suppressed failure")
		return false
	}
	return exists
}

// Clear empties every selected source and returns the total number of records
// removed across them. Used by cache resets and tests.
func (r *Repository[DS, R, E]) Clear(ctx context.Context) (int, error) {
	results, err := router.ExecuteWrite(ctx, r.router, func(ctx context.Context, ds DS) (int, error) {
		return ds.Clear(ctx)
	})
	if err != nil {
		return 0, r.wrap("clear", "", err)
	}

	total := 0
	for _, res := range results {
		if res.OK() {
			total += res.Value
		}
	}
	return total, nil
}
