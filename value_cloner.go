package refreshingcache

import (
	"fmt"

	"github.com/goccy/go-reflect"
)

// ValueCloner is an interface for cloning values.
// It is used to clone cached values before they are handed to a caller,
// so that a caller modifying its result does not affect other callers.
type ValueCloner[V any] interface {
	CloneValue(v V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V any] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a cloner that returns the value as is.
// It is only safe for values that hold no references.
type NopValueCloner[V any] struct{}

// CloneValue returns v.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// CloneValues returns a new slice holding a clone of each value.
// It returns nil for a nil slice.
func CloneValues[V any](cloner ValueCloner[V], values []V) []V {
	if values == nil {
		return nil
	}
	cloned := make([]V, len(values))
	for i, v := range values {
		cloned[i] = cloner.CloneValue(v)
	}
	return cloned
}

// DefaultValueCloner returns a cloner for V.
// A Clone or DeepCopy method returning V is used when V has one.
// Otherwise V is copied by assignment, which requires that V holds no pointers,
// slices, maps, channels, functions or interfaces; it panics for any other V.
func DefaultValueCloner[V any]() ValueCloner[V] {
	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	var zero V
	switch any(zero).(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(cloner).Clone()
		})
	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(deepCopier).DeepCopy()
		})
	case nil:
		panic("refreshingcache: value type must be a concrete type")
	}

	if typ := reflect.TypeOf(zero); !isFlat(typ) {
		panic(fmt.Sprintf("refreshingcache: %s holds references and has no Clone or DeepCopy method", typ.String()))
	}
	return NopValueCloner[V]{}
}

// isFlat reports whether a value of typ can be copied by assignment without sharing memory.
func isFlat(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Array:
		return typ.Len() == 0 || isFlat(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if !isFlat(typ.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
