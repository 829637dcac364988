package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty; otherwise returns p.
// Only p == "" is checked, surrounding whitespace is not trimmed.
//
// Called from constructors and adapters (registryhttp.NewClient, service.NewRegistryRouterSource, cmd config loading).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func); otherwise returns v.
// Return type T, so no type assertion is needed at the call site.
//
// Called from every service constructor when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil reports whether v is nil or a typed nil hidden in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
