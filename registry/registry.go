// Package registry maps algorithm names to codecs.
//
// A [Registry] is an ordinary value: build one with [New] or [Default] and pass
// it to whatever needs to look algorithms up. There is no global registry.
package registry

import (
	"fmt"
	"sort"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/gzip"
	"github.com/dargueta/squish/schemes/lz4"
	"github.com/dargueta/squish/schemes/none"
	"github.com/dargueta/squish/schemes/rle8"
	"github.com/dargueta/squish/schemes/rle90"
	"github.com/dargueta/squish/schemes/runlength"
	"github.com/dargueta/squish/schemes/snappy"
	"github.com/dargueta/squish/schemes/zstd"
)

// Registry is a read-only, ordered set of algorithms. It's safe for concurrent
// use once constructed.
type Registry struct {
	algorithms []squish.Algorithm
	byName     map[string]int
}

// New creates a registry holding the given algorithms, in order. It fails if an
// algorithm is invalid or two algorithms share a name.
func New(algorithms ...squish.Algorithm) (*Registry, error) {
	reg := &Registry{
		algorithms: make([]squish.Algorithm, 0, len(algorithms)),
		byName:     make(map[string]int, len(algorithms)),
	}

	for _, alg := range algorithms {
		if err := alg.Validate(); err != nil {
			return nil, err
		}
		if _, exists := reg.byName[alg.Name]; exists {
			return nil, squish.ErrDuplicateAlgorithm.WithMessage(alg.Name)
		}
		reg.byName[alg.Name] = len(reg.algorithms)
		reg.algorithms = append(reg.algorithms, alg)
	}
	return reg, nil
}

// Default creates a registry with every codec in this module. The run-length
// options are passed to the "runlength" codec.
func Default(opts ...runlength.Option) *Registry {
	reg, err := New(
		none.Algorithm(),
		runlength.Algorithm(opts...),
		rle8.Algorithm(),
		rle8.GzipAlgorithm(),
		rle90.Algorithm(),
		gzip.Algorithm(),
		zstd.Algorithm(),
		lz4.Algorithm(),
		snappy.Algorithm(),
	)
	if err != nil {
		// The set above is fixed, so this can only be a programming error.
		panic(fmt.Sprintf("default registry is invalid: %s", err))
	}
	return reg
}

// Lookup returns the algorithm registered under `name`.
func (reg *Registry) Lookup(name string) (squish.Algorithm, error) {
	index, ok := reg.byName[name]
	if !ok {
		return squish.Algorithm{}, squish.ErrUnknownAlgorithm.WithMessage(
			fmt.Sprintf("%q (available: %v)", name, reg.Names()))
	}
	return reg.algorithms[index], nil
}

// MustLookup is like Lookup but panics if the algorithm doesn't exist.
func (reg *Registry) MustLookup(name string) squish.Algorithm {
	alg, err := reg.Lookup(name)
	if err != nil {
		panic(err)
	}
	return alg
}

// Select returns the algorithms with the given names, in the order given. An
// empty list selects every algorithm in registration order.
func (reg *Registry) Select(names []string) ([]squish.Algorithm, error) {
	if len(names) == 0 {
		return reg.Algorithms(), nil
	}

	selected := make([]squish.Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, alg)
	}
	return selected, nil
}

// Algorithms returns every registered algorithm in registration order. The
// returned slice is a copy.
func (reg *Registry) Algorithms() []squish.Algorithm {
	result := make([]squish.Algorithm, len(reg.algorithms))
	copy(result, reg.algorithms)
	return result
}

// Names returns the names of all registered algorithms, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.algorithms))
	for _, alg := range reg.algorithms {
		names = append(names, alg.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered algorithms.
func (reg *Registry) Len() int {
	return len(reg.algorithms)
}
