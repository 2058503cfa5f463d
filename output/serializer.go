package output

import (
	"reflect"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig is tuned for failure-message rendering: no pointer addresses
// (they aren't reproducible across runs, which would make diagnostic
// files noisy to diff) and a stable method-call disabled so the output
// only reflects storage, not behavior.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableMethods:          true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Serializer produces the textual form of a T used only when reporting a
// mismatch.
type Serializer[T any] func(T) string

var serializers sync.Map // map[reflect.Type]any (boxed Serializer[T])

// RegisterSerializer installs a custom Serializer for T, overriding the
// go-spew fallback used by Render.
func RegisterSerializer[T any](fn Serializer[T]) {
	serializers.Store(reflect.TypeOf((*T)(nil)).Elem(), fn)
}

// Render renders v for display in a failure message: a registered
// Serializer[T] if one exists, otherwise a go-spew dump.
func Render[T any](v T) string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if raw, ok := serializers.Load(typ); ok {
		if fn, ok := raw.(Serializer[T]); ok {
			return fn(v)
		}
	}
	return dumpConfig.Sdump(v)
}

// RenderAny is Render for values whose static type has already been
// erased to interface{}, used by the reflection-driven range/struct
// fallback path in package valuetester. Registered serializers are
// invoked dynamically via reflection since the static T is unknown here.
func RenderAny(v any) string {
	if typ := reflect.TypeOf(v); typ != nil {
		if raw, ok := serializers.Load(typ); ok {
			fn := reflect.ValueOf(raw)
			if fn.Kind() == reflect.Func && fn.Type().NumIn() == 1 && fn.Type().In(0) == typ {
				out := fn.Call([]reflect.Value{reflect.ValueOf(v)})
				if len(out) == 1 {
					if s, ok := out[0].Interface().(string); ok {
						return s
					}
				}
			}
		}
	}
	return dumpConfig.Sdump(v)
}
