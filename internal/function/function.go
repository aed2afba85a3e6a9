package function

// Nest wraps a value in a chain of decorator functions, applying them from
// right to left: Nest(v, a, b, c) == a(b(c(v))). It keeps middleware chains
// readable where a(b(c(handler))) would not be.
func Nest[T any](value T, decorators ...func(T) T) T {
	for i := range decorators {
		value = decorators[len(decorators)-1-i](value)
	}
	return value
}
