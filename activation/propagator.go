// Package activation spreads transient "lit" states across the idea graph.
//
// Activations are queued with a frame delay; when an entry's delay runs out the node joins the
// active set and a few random neighbours are queued in turn. Active nodes fade out with a small
// per-frame probability. Work per frame is capped so a burst of activations spreads over frames.
package activation

import (
	"math/rand/v2"
	"sort"

	"github.com/lixenwraith/ideanet/graph"
)

// Config tunes propagation and decay
type Config struct {
	MaxPerTick       int     // queue entries processed per frame, <= 0 is unbounded
	MaxFanout        int     // neighbours activated per firing node
	MinDelay         int     // propagated delay range in frames, inclusive
	MaxDelay         int     //
	DecayProbability float64 // per-frame chance an active node goes dark
	MaxDepth         int     // propagation hops from the original trigger
}

// Entry is a pending activation
type Entry struct {
	NodeID string
	Delay  int
	Depth  int
}

// Propagator owns the activation queue and the active set
type Propagator struct {
	cfg    Config
	rng    *rand.Rand
	queue  []Entry
	active map[string]struct{}

	fired uint64
}

// NewPropagator creates an empty propagator
func NewPropagator(cfg Config, rng *rand.Rand) *Propagator {
	return &Propagator{
		cfg:    cfg,
		rng:    rng,
		queue:  make([]Entry, 0, 64),
		active: make(map[string]struct{}),
	}
}

// Activate enqueues a direct activation of id after delay frames
func (p *Propagator) Activate(id string, delay int) {
	p.queue = append(p.queue, Entry{NodeID: id, Delay: delay})
}

// Reset drops all pending and active state; required whenever the store is rebuilt
func (p *Propagator) Reset() {
	p.queue = p.queue[:0]
	clear(p.active)
}

// Tick advances one frame against the current store
// Decay runs before queue processing so a node lit this frame is visible for at least one frame
func (p *Propagator) Tick(store *graph.Store) {
	p.decay(store)

	n := len(p.queue)
	if p.cfg.MaxPerTick > 0 && n > p.cfg.MaxPerTick {
		n = p.cfg.MaxPerTick
	}
	batch := make([]Entry, n)
	copy(batch, p.queue[:n])
	p.queue = append(p.queue[:0], p.queue[n:]...)

	for _, e := range batch {
		if !store.Has(e.NodeID) {
			continue
		}
		if e.Delay > 0 {
			e.Delay--
			p.queue = append(p.queue, e)
			continue
		}
		p.fire(store, e)
	}
}

// decay removes active nodes stochastically, and any id no longer in the store
// Iterates in store order so a seeded source gives reproducible runs
func (p *Propagator) decay(store *graph.Store) {
	if len(p.active) == 0 {
		return
	}
	live := 0
	for i := range store.Nodes {
		id := store.Nodes[i].ID
		if _, ok := p.active[id]; !ok {
			continue
		}
		if p.rng.Float64() < p.cfg.DecayProbability {
			delete(p.active, id)
			continue
		}
		live++
	}
	if live != len(p.active) {
		for id := range p.active {
			if !store.Has(id) {
				delete(p.active, id)
			}
		}
	}
}

func (p *Propagator) fire(store *graph.Store, e Entry) {
	p.active[e.NodeID] = struct{}{}
	p.fired++

	if e.Depth >= p.cfg.MaxDepth || p.cfg.MaxFanout <= 0 {
		return
	}
	node, ok := store.Lookup(e.NodeID)
	if !ok || len(node.Connected) == 0 {
		return
	}

	fanout := min(len(node.Connected), p.cfg.MaxFanout)
	for _, i := range p.rng.Perm(len(node.Connected))[:fanout] {
		p.queue = append(p.queue, Entry{
			NodeID: node.Connected[i],
			Delay:  p.randomDelay(),
			Depth:  e.Depth + 1,
		})
	}
}

func (p *Propagator) randomDelay() int {
	span := p.cfg.MaxDelay - p.cfg.MinDelay
	if span <= 0 {
		return p.cfg.MinDelay
	}
	return p.cfg.MinDelay + p.rng.IntN(span+1)
}

// IsActive reports whether id is currently lit
func (p *Propagator) IsActive(id string) bool {
	_, ok := p.active[id]
	return ok
}

// ActiveSet returns a read-only view for the renderer
func (p *Propagator) ActiveSet() map[string]struct{} {
	return p.active
}

// Active returns lit ids in sorted order
func (p *Propagator) Active() []string {
	ids := make([]string, 0, len(p.active))
	for id := range p.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveCount returns the size of the active set
func (p *Propagator) ActiveCount() int {
	return len(p.active)
}

// Pending returns a copy of the queue in processing order
func (p *Propagator) Pending() []Entry {
	out := make([]Entry, len(p.queue))
	copy(out, p.queue)
	return out
}

// QueueLen returns the number of pending entries
func (p *Propagator) QueueLen() int {
	return len(p.queue)
}

// Fired returns the total number of activations that reached a node
func (p *Propagator) Fired() uint64 {
	return p.fired
}
