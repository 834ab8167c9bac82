// Package dict provides dictionary reshaping helpers.
package dict

import (
	"cmp"
	"maps"
	"slices"

	errs "github.com/matzehuels/erm/pkg/errors"
)

// ReverseOneToMany turns a one-to-many dictionary into a many-to-one
// dictionary: every member of every value list becomes a key pointing back
// to the key that listed it.
//
//	{"LABEL_CREATED": {"PU", "PX"}, "OUT_FOR_DELIVERY": {"OD"}}
//	// becomes
//	{"PU": "LABEL_CREATED", "PX": "LABEL_CREATED", "OD": "OUT_FOR_DELIVERY"}
//
// A value listed under two different keys has no single owner and is
// reported as an INVALID_INPUT error naming both keys. Listing a value twice
// under the same key is allowed.
func ReverseOneToMany[K cmp.Ordered, V comparable](m map[K][]V) (map[V]K, error) {
	out := make(map[V]K)
	// Sorted keys make the reported conflict deterministic.
	for _, k := range slices.Sorted(maps.Keys(m)) {
		for _, v := range m[k] {
			if prev, ok := out[v]; ok && prev != k {
				return nil, errs.New(errs.ErrCodeInvalidInput, "value %v is listed under both %v and %v", v, prev, k)
			}
			out[v] = k
		}
	}
	return out, nil
}
