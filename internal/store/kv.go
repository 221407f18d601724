package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Get implements KV.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	b := s.builder()
	query, args := b.Select("payload").
		From(b.Table(kvTable)).
		Where(entsql.EQ("entry_key", key)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("query %s: %w", key, err)
		}
		return "", false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", key, err)
	}
	return value, true, nil
}

// Put implements KV as a single upsert on entry_key.
func (s *Store) Put(ctx context.Context, key, value string) error {
	query, args := s.builder().Insert(kvTable).
		Columns("entry_key", "payload", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("entry_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
