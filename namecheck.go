package pim

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/llehouerou/go-pim-client/types"
)

var (
	// ErrStaleResult is returned by NameChecker.Check when a newer check was
	// issued before this one completed.
	ErrStaleResult = errors.New("stale result")
	// ErrEmptyName is returned for blank workspace names.
	ErrEmptyName = errors.New("workspace name is empty")
)

// NameLookup reports whether a workspace name is still available.
type NameLookup func(ctx context.Context, name string) (bool, error)

// NameAvailability is the outcome of one name check.
type NameAvailability struct {
	Name      string
	Available bool
	// Seq is the issue number of the check that produced this result.
	Seq uint64
}

// NameChecker checks workspace names as they are typed. Every Check is
// numbered when issued; only the most recently issued check may publish
// its result, so a slow answer for an old name never overwrites the answer
// for the current one.
type NameChecker struct {
	lookup   NameLookup
	onResult func(NameAvailability)

	seq    atomic.Uint64
	mu     sync.Mutex
	latest *NameAvailability
}

// NewNameChecker returns a checker using lookup. onResult, if not nil, is
// called with every result that is applied, in issue order. It runs with
// the checker locked and must not call Check.
func NewNameChecker(lookup NameLookup, onResult func(NameAvailability)) *NameChecker {
	return &NameChecker{lookup: lookup, onResult: onResult}
}

// Check looks name up. It returns ErrStaleResult, and publishes nothing,
// when another Check was issued after this one.
func (c *NameChecker) Check(ctx context.Context, name string) (NameAvailability, error) {
	seq := c.seq.Add(1)

	name = strings.TrimSpace(name)
	if name == "" {
		return NameAvailability{Seq: seq}, ErrEmptyName
	}

	available, err := c.lookup(ctx, name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq.Load() {
		return NameAvailability{}, ErrStaleResult
	}
	if err != nil {
		return NameAvailability{}, fmt.Errorf("check workspace name %q: %w", name, err)
	}

	res := NameAvailability{Name: name, Available: available, Seq: seq}
	c.latest = &res
	if c.onResult != nil {
		c.onResult(res)
	}
	return res, nil
}

// Latest returns the last applied result.
func (c *NameChecker) Latest() (NameAvailability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return NameAvailability{}, false
	}
	return *c.latest, true
}

// WorkspaceNameAvailable asks the API whether a workspace name is free. It
// is a NameLookup.
func (c *RESTClient) WorkspaceNameAvailable(ctx context.Context, name string) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	query := url.Values{"name": []string{name}}
	if err := c.Get(ctx, types.WorkspaceNameCheckPath, query, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}
