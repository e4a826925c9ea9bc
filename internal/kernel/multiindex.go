// Package kernel implements the hand-written finite-element numerics shared
// by the engines: multi-index enumeration for simplex bases, barycentric
// shape-function and gradient evaluation, and the geometric measure and
// gradient primitives. Everything operates on flat row-major float64/int64
// host slices so engines can pass their buffers in without copies.
package kernel

import (
	"fmt"
	"sync"

	"github.com/basis-fem/basis/tensor"
)

// LDof returns the number of local degrees of freedom of a degree-p simplex
// basis of topological dimension td: C(p+td, td).
func LDof(p, td int) int {
	n := 1
	for i := 1; i <= td; i++ {
		n = n * (p + i) / i
	}
	return n
}

var miCache = struct {
	sync.RWMutex
	m map[[2]int][]int64
}{m: make(map[[2]int][]int64)}

// MultiIndexMatrix enumerates all non-negative integer (td+1)-tuples summing
// to p, flattened row-major into LDof(p, td) rows of td+1 entries. The order
// is degree-lexicographic with the most significant coordinate varying
// slowest (descending), and is stable across calls: downstream dof numbering
// depends on it.
//
// The returned slice is cached per (p, td) and must be treated as immutable.
func MultiIndexMatrix(p, td int) ([]int64, error) {
	if p < 0 {
		return nil, fmt.Errorf("%w: polynomial degree %d must be non-negative", tensor.ErrUnsupportedConfiguration, p)
	}
	if td < 0 || td > 3 {
		return nil, fmt.Errorf("%w: topological dimension %d must be in [0, 3]", tensor.ErrUnsupportedConfiguration, td)
	}

	key := [2]int{p, td}
	miCache.RLock()
	if mi, ok := miCache.m[key]; ok {
		miCache.RUnlock()
		return mi, nil
	}
	miCache.RUnlock()

	mi := make([]int64, 0, LDof(p, td)*(td+1))
	mi = appendMultiIndices(mi, p, td, nil)

	miCache.Lock()
	miCache.m[key] = mi
	miCache.Unlock()
	return mi, nil
}

// appendMultiIndices emits every tuple prefix+rest where rest has td+1
// entries summing to p, leading entry descending.
func appendMultiIndices(dst []int64, p, td int, prefix []int64) []int64 {
	if td == 0 {
		dst = append(dst, prefix...)
		return append(dst, int64(p))
	}
	for i := p; i >= 0; i-- {
		dst = appendMultiIndices(dst, p-i, td-1, append(prefix, int64(i)))
	}
	return dst
}
