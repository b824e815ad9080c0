package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/bookgraph/bookgraph/internal/model"
)

// recommendationLimit bounds the number of returned suggestions.
const recommendationLimit = 5

// recommendQuery fetches one row per (co-reader, candidate) pair: co-readers
// share at least one book with the target user, candidates are books the
// target has not read. Scoring happens in process so it can be tested
// directly.
const recommendQuery = `
MATCH (u:User {id: $id})-[:HAS_READ]->(b:Book)
MATCH (peer:User)-[:HAS_READ]->(b)
WHERE peer <> u
MATCH (peer)-[:HAS_READ]->(rec:Book)
WHERE NOT (u)-[:HAS_READ]->(rec)
RETURN DISTINCT peer.id AS peerId, rec.id AS id, rec.title AS title,
       rec.author AS author, rec.genre AS genre, rec.cover AS cover`

// coRead is one co-reader/candidate pair from the traversal.
type coRead struct {
	Peer int64
	Book model.Book
}

// Recommend returns up to 5 books the user has not read, ranked by the
// number of distinct co-readers who have. Ties break on ascending book id so
// the output is deterministic.
func (s *Store) Recommend(ctx context.Context, userID int64) ([]model.Book, error) {
	records, err := s.c.ExecuteRead(ctx, recommendQuery, map[string]any{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("recommend books for user %d: %w", userID, err)
	}
	pairs := make([]coRead, 0, len(records))
	for _, rec := range records {
		pairs = append(pairs, coRead{Peer: rec.Int("peerId"), Book: bookFromRecord(rec)})
	}
	return rankByCoReaders(pairs, recommendationLimit), nil
}

// rankByCoReaders scores each candidate book by the count of distinct peers
// who read it, orders by score descending then book id ascending, and
// truncates to limit. Duplicate (peer, book) pairs count once.
func rankByCoReaders(pairs []coRead, limit int) []model.Book {
	peers := make(map[string]map[int64]struct{})
	books := make(map[string]model.Book)
	for _, p := range pairs {
		id := p.Book.ID
		if _, ok := books[id]; !ok {
			books[id] = p.Book
			peers[id] = make(map[int64]struct{})
		}
		peers[id][p.Peer] = struct{}{}
	}

	ids := make([]string, 0, len(books))
	for id := range books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := len(peers[ids[i]]), len(peers[ids[j]])
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}
	ranked := make([]model.Book, 0, len(ids))
	for _, id := range ids {
		ranked = append(ranked, books[id])
	}
	return ranked
}
