package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// maxSlugSuffix bounds the numeric suffixes tried by UniqueSlug.
const maxSlugSuffix = 100

// UniqueSlug returns base, or base with the lowest free numeric suffix
// ("-2", "-3", ...), such that no row of table other than excludeID uses it.
// Pass excludeID 0 for new rows. Slugs only contain [a-z0-9-], which makes
// them safe in a LIKE pattern.
func UniqueSlug(ctx context.Context, q sqlx.QueryerContext, table, base string, excludeID int64) (string, error) {
	if base == "" {
		return "", fmt.Errorf("empty slug for %s: %w", table, ErrConflict)
	}

	query := fmt.Sprintf("SELECT slug FROM %s WHERE (slug = ? OR slug LIKE ?) AND id <> ?", table)
	var taken []string
	if err := sqlx.SelectContext(ctx, q, &taken, query, base, base+"-%", excludeID); err != nil {
		return "", fmt.Errorf("failed to check slug on %s: %w", table, err)
	}

	used := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base, nil
	}
	for n := 2; n <= maxSlugSuffix; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, ok := used[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q in %s: %w", base, table, ErrConflict)
}
