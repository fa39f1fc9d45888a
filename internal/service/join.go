package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
)

// BatchFetcher loads secondary records for a set of ids in one call.
type BatchFetcher[S any] func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]S, error)

// Joined pairs a primary record with the secondary record its id points at.
// Found is false when the secondary record is missing; Secondary then holds the fallback.
type Joined[P, S any] struct {
	Primary   P
	Secondary S
	Found     bool
}

// JoinByID attaches a secondary record to every primary record. The distinct ids are
// fetched in a single batch. A missing secondary row never fails the join; a failed
// fetch is returned alongside a fully defaulted result so callers may degrade instead.
func JoinByID[P, S any](ctx context.Context, primary []P, idOf func(P) uuid.UUID, fetch BatchFetcher[S], fallback S) ([]Joined[P, S], error) {
	ids := make([]uuid.UUID, 0, len(primary))
	for _, p := range primary {
		ids = append(ids, idOf(p))
	}

	var (
		lookup   map[uuid.UUID]S
		fetchErr error
	)
	if distinct := DistinctIDs(ids); len(distinct) > 0 {
		lookup, fetchErr = fetch(ctx, distinct)
	}

	joined := make([]Joined[P, S], 0, len(primary))
	for _, p := range primary {
		j := Joined[P, S]{Primary: p, Secondary: fallback}
		if s, ok := lookup[idOf(p)]; ok {
			j.Secondary = s
			j.Found = true
		}
		joined = append(joined, j)
	}

	return joined, fetchErr
}

// DistinctIDs removes duplicates and uuid.Nil, keeping first-seen order.
func DistinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func accountsByID(repo AccountRepository) BatchFetcher[*model.Account] {
	return func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Account, error) {
		accounts, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		m := make(map[uuid.UUID]*model.Account, len(accounts))
		for _, acc := range accounts {
			m[acc.ID] = acc
		}
		return m, nil
	}
}

func tutorProfilesByAccountID(repo TutorProfileRepository) BatchFetcher[*model.TutorProfile] {
	return func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.TutorProfile, error) {
		profiles, err := repo.GetByAccountIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		m := make(map[uuid.UUID]*model.TutorProfile, len(profiles))
		for _, t := range profiles {
			if _, dup := m[t.UserID]; !dup {
				m[t.UserID] = t
			}
		}
		return m, nil
	}
}

func postsByID(repo PostRepository) BatchFetcher[*model.TuitionPost] {
	return func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.TuitionPost, error) {
		posts, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		m := make(map[uuid.UUID]*model.TuitionPost, len(posts))
		for _, p := range posts {
			m[p.ID] = p
		}
		return m, nil
	}
}

// orDefault mirrors the "value || fallback" rule used for joined display fields.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
