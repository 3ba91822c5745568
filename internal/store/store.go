// Package store implements a thread-safe in-memory dependency graph for package management.
// This is the core business logic component, optimized for O(1) query operations and O(D)
// modification operations where D is the dependency count. The dual-map architecture enables
// efficient validation of dependency constraints in both directions.
package store

import (
	"sync"
)

// StringSet represents a set of strings using Go's map implementation for O(1) operations.
type StringSet map[string]struct{}

// NewStringSet creates a new empty string set.
func NewStringSet() StringSet {
	return make(StringSet)
}

// Add adds an item to the set.
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Remove removes an item from the set.
func (s StringSet) Remove(item string) {
	delete(s, item)
}

// Contains checks if an item exists in the set.
func (s StringSet) Contains(item string) bool {
	_, exists := s[item]
	return exists
}

// Len returns the number of items in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Store manages the package dependency graph with thread-safe operations.
// Architecture decision: a single RWMutex provides simple correctness guarantees while
// allowing concurrent reads (QUERY operations); writers (INDEX/REMOVE) hold it exclusively
// for the full duration of the operation, so no caller ever observes a half-applied write.
type Store struct {
	mu sync.RWMutex

	indexed StringSet            // tracks indexed packages for O(1) existence checks
	deps    map[string]StringSet // package -> its dependencies (forward edges)
	users   map[string]StringSet // package -> its dependents (reverse edges)
}

// RemoveResult represents the outcome of a Remove operation using a type-safe enum,
// rather than overloading a name string as both value and sentinel.
type RemoveResult int

const (
	RemoveOK         RemoveResult = iota // package successfully removed
	RemoveNotIndexed                     // package was not indexed (idempotent success)
	RemoveBlocked                        // package has dependents (cannot remove)
)

// New creates a new, empty Store. The Store always allocates its own maps and lock;
// it never accepts them as constructor arguments, which would alias state across instances.
func New() *Store {
	return &Store{
		indexed: NewStringSet(),
		deps:    make(map[string]StringSet),
		users:   make(map[string]StringSet),
	}
}

// dropUserRef removes pkg from dependency's reverse (users) set. The entry itself
// is kept even when it becomes empty, so users and deps stay symmetric; it is
// deleted only when dependency itself is removed.
func (s *Store) dropUserRef(dependency, pkg string) {
	if set := s.users[dependency]; set != nil {
		set.Remove(pkg)
	}
}

// Index attempts to add or update a package with the given dependencies.
// Returns true (OK) if accepted, false (Refused) if a dependency is missing or
// the dependency list names the package itself.
func (s *Store) Index(pkg string, deps []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A package may never depend on itself.
	for _, dep := range deps {
		if dep == pkg {
			return false
		}
	}

	// Every named dependency must already be indexed.
	for _, dep := range deps {
		if !s.indexed.Contains(dep) {
			return false
		}
	}

	prev := s.deps[pkg]
	if prev == nil {
		prev = NewStringSet()
	}

	next := NewStringSet()
	for _, dep := range deps {
		next.Add(dep)
	}

	// Drop reverse references for dependencies no longer present, add for new ones.
	for old := range prev {
		if !next.Contains(old) {
			s.dropUserRef(old, pkg)
		}
	}
	for dep := range next {
		if s.users[dep] == nil {
			s.users[dep] = NewStringSet()
		}
		s.users[dep].Add(pkg)
	}

	s.indexed.Add(pkg)
	s.deps[pkg] = next
	if s.users[pkg] == nil {
		s.users[pkg] = NewStringSet()
	}

	return true
}

// Remove attempts to remove a package from the index. A package with active
// dependents cannot be removed. Removing an absent package is a no-op success
// (idempotent).
func (s *Store) Remove(pkg string) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.indexed.Contains(pkg) {
		return RemoveNotIndexed
	}

	if dependents := s.users[pkg]; dependents != nil && dependents.Len() > 0 {
		return RemoveBlocked
	}

	s.indexed.Remove(pkg)

	if deps := s.deps[pkg]; deps != nil {
		for dep := range deps {
			s.dropUserRef(dep, pkg)
		}
		delete(s.deps, pkg)
	}
	delete(s.users, pkg)

	return RemoveOK
}

// Query reports whether pkg is currently indexed. Read-only; never mutates.
func (s *Store) Query(pkg string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexed.Contains(pkg)
}

// Stats returns current index size counters for the metrics package.
func (s *Store) Stats() (indexed, totalDeps, totalUsers int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexed.Len(), len(s.deps), len(s.users)
}
