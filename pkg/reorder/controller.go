// Package reorder holds the staged-reorder state machine behind the
// drag-and-drop UI: a local copy of one scope's order is permuted
// during the session and only an explicit Save writes it back. Cancel
// throws the staged copy away without any server call.
package reorder

import (
	"context"
	"errors"
	"sync"

	"github.com/navdeck/navdeck/pkg/client"
)

// API is the slice of the navdeck API the controller needs. client.Client
// satisfies it; tests substitute a fake.
type API interface {
	ListGroups(ctx context.Context) ([]client.Group, error)
	ListSites(ctx context.Context, groupID uint) ([]client.Site, error)
	SaveGroupOrder(ctx context.Context, assignments []client.Assignment) error
	SaveSiteOrder(ctx context.Context, assignments []client.Assignment) error
}

type Mode int

const (
	Idle Mode = iota
	GroupReordering
	SiteReordering
)

var (
	ErrSessionOpen  = errors.New("reorder: a session is already open")
	ErrNoSession    = errors.New("reorder: no session is open")
	ErrSaveInFlight = errors.New("reorder: a save is in flight")
	ErrDragActive   = errors.New("reorder: drag gesture still active")
	ErrBadIndex     = errors.New("reorder: index out of range")
)

// Controller is the three-state staged reorder machine. Exactly one
// session (group order, or one group's site order) is open at a time;
// staged state never leaks to the server before Save.
type Controller struct {
	api API

	mu           sync.Mutex
	mode         Mode
	groupID      uint // scope of a SiteReordering session
	stagedGroups []client.Group
	stagedSites  []client.Site
	dragging     bool
	saving       bool
}

func NewController(api API) *Controller {
	return &Controller{api: api}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// StartGroupReorder snapshots the committed group order into the
// staged copy and opens a GroupReordering session.
func (c *Controller) StartGroupReorder(ctx context.Context) error {
	c.mu.Lock()
	if c.mode != Idle {
		c.mu.Unlock()
		return ErrSessionOpen
	}
	c.mu.Unlock()

	groups, err := c.api.ListGroups(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Idle {
		return ErrSessionOpen
	}
	c.mode = GroupReordering
	c.stagedGroups = append([]client.Group(nil), groups...)
	return nil
}

// StartSiteReorder snapshots one group's committed site order and
// opens a SiteReordering session scoped to that group.
func (c *Controller) StartSiteReorder(ctx context.Context, groupID uint) error {
	c.mu.Lock()
	if c.mode != Idle {
		c.mu.Unlock()
		return ErrSessionOpen
	}
	c.mu.Unlock()

	sites, err := c.api.ListSites(ctx, groupID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Idle {
		return ErrSessionOpen
	}
	c.mode = SiteReordering
	c.groupID = groupID
	c.stagedSites = append([]client.Site(nil), sites...)
	return nil
}

// SessionGroup reports which group a SiteReordering session is scoped
// to; ok is false in any other mode.
func (c *Controller) SessionGroup() (groupID uint, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupID, c.mode == SiteReordering
}

// StagedGroups returns a copy of the staged group order.
func (c *Controller) StagedGroups() []client.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.Group(nil), c.stagedGroups...)
}

// StagedSites returns a copy of the staged site order.
func (c *Controller) StagedSites() []client.Site {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.Site(nil), c.stagedSites...)
}

// BeginDrag marks a pointer/touch gesture as active; Save is refused
// until EndDrag so a list is never committed mid-gesture.
func (c *Controller) BeginDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
}

func (c *Controller) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

// Move takes the staged element at from and re-inserts it at to. Only
// the staged copy changes.
func (c *Controller) Move(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case GroupReordering:
		return moveElem(c.stagedGroups, from, to)
	case SiteReordering:
		return moveElem(c.stagedSites, from, to)
	default:
		return ErrNoSession
	}
}

func moveElem[T any](s []T, from, to int) error {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return ErrBadIndex
	}
	elem := s[from]
	if from < to {
		copy(s[from:], s[from+1:to+1])
	} else {
		copy(s[to+1:], s[to:from])
	}
	s[to] = elem
	return nil
}

// Save submits the staged permutation (position = index) and returns
// the controller to Idle whether or not the write succeeded. The
// controller holds no committed data, so the caller re-fetches the
// canonical order after Save in both outcomes; on failure the staged
// state is abandoned and the UI never shows an order that was not
// persisted.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.mode == Idle {
		c.mu.Unlock()
		return ErrNoSession
	}
	if c.dragging {
		c.mu.Unlock()
		return ErrDragActive
	}
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	mode := c.mode
	var assignments []client.Assignment
	switch mode {
	case GroupReordering:
		assignments = make([]client.Assignment, len(c.stagedGroups))
		for i, g := range c.stagedGroups {
			assignments[i] = client.Assignment{ID: g.ID, OrderNum: i}
		}
	case SiteReordering:
		assignments = make([]client.Assignment, len(c.stagedSites))
		for i, s := range c.stagedSites {
			assignments[i] = client.Assignment{ID: s.ID, OrderNum: i}
		}
	}
	c.saving = true
	c.mu.Unlock()

	var err error
	if mode == GroupReordering {
		err = c.api.SaveGroupOrder(ctx, assignments)
	} else {
		err = c.api.SaveSiteOrder(ctx, assignments)
	}

	c.mu.Lock()
	c.saving = false
	c.reset()
	c.mu.Unlock()
	return err
}

// Cancel discards the staged copy with no server call. A cancel that
// races a Save is refused: the save's outcome must be known before the
// session state can be thrown away.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return ErrSaveInFlight
	}
	if c.mode == Idle {
		return ErrNoSession
	}
	c.reset()
	return nil
}

// reset is called with the lock held.
func (c *Controller) reset() {
	c.mode = Idle
	c.groupID = 0
	c.stagedGroups = nil
	c.stagedSites = nil
	c.dragging = false
}
