// Package oneormany treats a single value and a non-empty sequence of values
// interchangeably.
//
// A [Value] is either Single (exactly one element) or Multiple (two or more
// elements, in order). Callers never special-case a collection of one: the
// same [Value] answers both "give me the elements" ([Value.Items]) and "is
// this a scalar" ([Value.Single]).
//
//	v := oneormany.Of("uses")           // Single
//	w := oneormany.Of("reads", "writes") // Multiple
//	for _, name := range w.Items() { ... }
//
// Serialization collapses the same way in JSON, YAML and MessagePack: a
// Single value encodes as its sole element, a Multiple value as an array.
//
// The zero Value holds no elements and is only meaningful as "absent"; every
// constructor that is given at least one element returns a non-zero Value.
package oneormany

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	errs "github.com/matzehuels/erm/pkg/errors"
)

// Value is one element or a non-empty ordered sequence of elements.
// Values are immutable; methods never modify the receiver.
type Value[T comparable] struct {
	items []T
}

// Of returns a Value holding items in order. The slice is copied.
// Of with no arguments returns the zero Value.
func Of[T comparable](items ...T) Value[T] {
	if len(items) == 0 {
		return Value[T]{}
	}
	return Value[T]{items: slices.Clone(items)}
}

// Collapse is the strict form of [Of]: it returns an INVALID_INPUT error when
// items is empty instead of the zero Value.
func Collapse[T comparable](items []T) (Value[T], error) {
	if len(items) == 0 {
		return Value[T]{}, errs.New(errs.ErrCodeInvalidInput, "cannot collapse an empty sequence")
	}
	return Of(items...), nil
}

// IsZero reports whether v holds no elements.
func (v Value[T]) IsZero() bool { return len(v.items) == 0 }

// Len returns the number of elements.
func (v Value[T]) Len() int { return len(v.items) }

// Single returns the sole element when v holds exactly one.
func (v Value[T]) Single() (T, bool) {
	if len(v.items) == 1 {
		return v.items[0], true
	}
	var zero T
	return zero, false
}

// Items returns the elements in order as a freshly allocated slice.
func (v Value[T]) Items() []T {
	return slices.Clone(v.items)
}

// Contains reports whether x is one of the elements.
func (v Value[T]) Contains(x T) bool {
	return slices.Contains(v.items, x)
}

// ContainsAny reports whether any element is in xs.
func (v Value[T]) ContainsAny(xs []T) bool {
	for _, it := range v.items {
		if slices.Contains(xs, it) {
			return true
		}
	}
	return false
}

// Filter returns the elements for which keep returns true, in their original
// order. The boolean is false when nothing was kept.
func (v Value[T]) Filter(keep func(T) bool) (Value[T], bool) {
	var kept []T
	for _, it := range v.items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return Value[T]{}, false
	}
	return Value[T]{items: kept}, true
}

// Equal reports whether v and o hold the same elements in the same order.
func (v Value[T]) Equal(o Value[T]) bool {
	return slices.Equal(v.items, o.items)
}

// String formats a Single value as its element and a Multiple value as a list.
func (v Value[T]) String() string {
	if one, ok := v.Single(); ok {
		return fmt.Sprint(one)
	}
	return fmt.Sprint(v.items)
}

// MarshalJSON encodes a Single value as its element and anything else as an array.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.wire())
}

// MarshalYAML mirrors [Value.MarshalJSON] for gopkg.in/yaml.v3.
func (v Value[T]) MarshalYAML() (any, error) {
	return v.wire(), nil
}

// EncodeMsgpack mirrors [Value.MarshalJSON] for vmihailenco/msgpack.
func (v Value[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(v.wire())
}

func (v Value[T]) wire() any {
	if one, ok := v.Single(); ok {
		return one
	}
	if v.items == nil {
		return []T{}
	}
	return v.items
}
