// Package universe tracks the set of product IDs the adapter currently
// trades, safe for concurrent reads from the strategy callbacks and
// writes from the adapter's subscription-management goroutine.
package universe

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Universe is a thread-safe set of product IDs.
type Universe struct {
	mu  sync.RWMutex
	set mapset.Set[string]
}

// New constructs a Universe, optionally seeded with initial members.
func New(productIDs ...string) *Universe {
	return &Universe{set: mapset.NewSet(productIDs...)}
}

// Size returns the number of members.
func (u *Universe) Size() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.set.Cardinality()
}

// Contains reports whether productID is a member.
func (u *Universe) Contains(productID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.set.Contains(productID)
}

// ToSlice returns a snapshot of the current members.
func (u *Universe) ToSlice() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.set.ToSlice()
}

// Update replaces the full membership with productIDs.
func (u *Universe) Update(productIDs ...string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.set = mapset.NewSet(productIDs...)
}

// Merge adds productIDs to the existing membership.
func (u *Universe) Merge(productIDs ...string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, id := range productIDs {
		u.set.Add(id)
	}
}

// Intersect removes any member not present in productIDs.
func (u *Universe) Intersect(productIDs ...string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	other := mapset.NewSet(productIDs...)
	u.set = u.set.Intersect(other)
}

// Emplace adds a single product ID.
func (u *Universe) Emplace(productID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.set.Add(productID)
}

// Erase removes a single product ID.
func (u *Universe) Erase(productID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.set.Remove(productID)
}

// Clear removes all members.
func (u *Universe) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.set.Clear()
}
