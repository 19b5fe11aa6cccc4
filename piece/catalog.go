package piece

import "math/rand/v2"

// Source supplies uniformly distributed integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// catalog holds the canonical shapes indexed by Kind. It is never mutated after
// package initialization.
var catalog = [...]Shape{
	O: newShape(O, "11", "11"),
	T: newShape(T, "010", "111", "000"),
	Z: newShape(Z, "011", "110", "000"),
	S: newShape(S, "110", "011", "000"),
	I: newShape(I, "1", "1", "1", "1"),
	J: newShape(J, "10", "10", "11"),
	L: newShape(L, "01", "01", "11"),
}

// Count is the number of canonical shapes.
const Count = len(catalog)

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	return []Kind{O, T, Z, S, I, J, L}
}

// Canonical returns the spawn orientation of the given kind.
func Canonical(k Kind) Shape {
	if int(k) >= Count {
		panic("unknown piece kind " + k.String())
	}
	return catalog[k]
}

// Random picks one of the canonical shapes uniformly using the process-wide
// random source.
func Random() Shape {
	return catalog[rand.IntN(Count)]
}

// RandomFrom picks one of the canonical shapes uniformly using src.
func RandomFrom(src Source) Shape {
	return catalog[src.IntN(Count)]
}
