// Package lockorder imposes one global acquisition order on a set of lock keys.
//
// Two callers that lock the same keys through this package always request them in the
// same sequence, so a wait-for cycle between them cannot form.
package lockorder

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Sequence returns keys de-duplicated and sorted by compare.
// compare must be a total order over the key space.
func Sequence[K comparable](compare func(a, b K) int, keys ...K) []K {
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, compare)
	return out
}

// Ascending is Sequence with the natural order of K.
func Ascending[K cmp.Ordered](keys ...K) []K {
	return Sequence(cmp.Compare[K], keys...)
}

// LockFunc acquires the lock for one key and returns the value guarded by it.
type LockFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// AcquireAll calls lock once per distinct key in ascending order and stops on the first error.
// Locks already taken are not released here; they belong to the caller's transaction.
func AcquireAll[K cmp.Ordered, V any](ctx context.Context, lock LockFunc[K, V], keys ...K) (map[K]V, error) {
	ordered := Ascending(keys...)
	acquired := make(map[K]V, len(ordered))
	for _, k := range ordered {
		if err := ctx.Err(); err != nil {
			return acquired, err
		}
		v, err := lock(ctx, k)
		if err != nil {
			return acquired, fmt.Errorf("lock %v: %w", k, err)
		}
		acquired[k] = v
	}
	return acquired, nil
}
