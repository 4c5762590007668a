package arbitrary

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]any{}
)

func init() {
	Register(Int())
	Register(Int64())
	Register(Float64())
	Register(Bool())
	Register(String())
	Register(SliceOf(Int()))
	Register(SliceOf(String()))
	Register(SliceOf(Bool()))
}

// Register makes t the default description of T for property builders that
// infer argument types. A later registration for the same T replaces the earlier one.
func Register[T any](t Type[T]) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typeOf[T]()] = t
}

// Lookup returns the registered description of T.
func Lookup[T any]() (Type[T], bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[typeOf[T]()]
	if !ok {
		return Type[T]{}, false
	}
	return t.(Type[T]), true
}

// For is Lookup that panics when T was never registered.
func For[T any]() Type[T] {
	t, ok := Lookup[T]()
	if !ok {
		panic(fmt.Sprintf("arbitrary: no generator registered for %s; call arbitrary.Register or use property.TestThatUsing", typeOf[T]()))
	}
	return t
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
