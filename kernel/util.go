package kernel

import "golang.org/x/exp/constraints"

// minT and maxT are small generic min/max helpers. Nothing in the package
// calls them at present: counter.go and alarm.go do their wrap arithmetic
// inline, and config.go compares bounds directly. Grounded
// on the constraints.Ordered usage in catrate's ringBuffer[E] (see ring.go)
// — the teacher's monorepo reaches for golang.org/x/exp/constraints
// wherever a generic numeric comparison is needed instead of duplicating
// it per concrete type, and the kernel follows the same convention here.
func minT[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
