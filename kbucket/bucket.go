package kbucket

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/attilabuti/eventemitter/v2"
	"github.com/benbjohnson/clock"
	"github.com/plprobelab/go-kadtable/kad"
	"github.com/plprobelab/go-kadtable/key"
)

// Events emitted through the configured emitter.
const (
	// EventAdded is emitted with the node that was added to the bucket.
	EventAdded = "kbucket.added"

	// EventUpdated is emitted with a node already present in the bucket
	// whose recency was refreshed by a re-insert.
	EventUpdated = "kbucket.updated"

	// EventRemoved is emitted with the node that was removed from the bucket.
	EventRemoved = "kbucket.removed"

	// EventPing is emitted when a full bucket declines a new node. It
	// carries the least-recently seen nodes that should be pinged and the
	// declined candidate. If any of the pinged nodes fails to respond, the
	// caller is expected to remove it and re-insert the candidate.
	EventPing = "kbucket.ping"
)

// DefaultSize is the number of nodes a bucket holds before declining new
// entries, the k parameter of the Kademlia paper.
const DefaultSize = 20

// DefaultNodesToPing is the number of least-recently seen nodes included in
// a ping event when a full bucket declines a new node.
const DefaultNodesToPing = 3

// Config holds configuration options for a Bucket.
type Config struct {
	// Size is the number of nodes the bucket can contain before being full.
	// If zero, DefaultSize is used.
	Size int

	// NodesToPing is the number of least-recently seen nodes carried by a
	// ping event. If zero, DefaultNodesToPing is used.
	NodesToPing int

	// Clock supplies last-seen timestamps. If nil, the system clock is used.
	Clock clock.Clock

	// Emitter receives bucket events. If nil, no events are emitted.
	Emitter *eventemitter.Emitter
}

// DefaultConfig returns a default configuration for a Bucket.
func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		NodesToPing: DefaultNodesToPing,
		Clock:       clock.New(),
	}
}

type entry[K kad.Key[K], N kad.NodeID[K]] struct {
	node   N
	seenAt time.Time
}

// Bucket is a bounded contact container for nodes sharing one
// distance-prefix length from a local node. Nodes are kept ordered from
// least-recently to most-recently seen. When the bucket is full a new node
// is declined and a ping event is emitted instead; eviction is the caller's
// policy, exercised through Remove.
type Bucket[K kad.Key[K], N kad.NodeID[K]] struct {
	mu      sync.Mutex
	depth   int
	size    int
	ping    int
	clk     clock.Clock
	emitter *eventemitter.Emitter
	entries []entry[K, N]
}

// New returns an empty Bucket for the given distance-prefix depth. A nil
// cfg is equivalent to DefaultConfig().
func New[K kad.Key[K], N kad.NodeID[K]](depth int, cfg *Config) *Bucket[K, N] {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	size := cfg.Size
	if size < 1 {
		size = DefaultSize
	}
	ping := cfg.NodesToPing
	if ping < 1 {
		ping = DefaultNodesToPing
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Bucket[K, N]{
		depth:   depth,
		size:    size,
		ping:    ping,
		clk:     clk,
		emitter: cfg.Emitter,
	}
}

// Depth returns the distance-prefix length this bucket holds nodes for.
func (b *Bucket[K, N]) Depth() int {
	return b.depth
}

// Size returns the number of nodes the bucket can contain before being full.
func (b *Bucket[K, N]) Size() int {
	return b.size
}

// Insert adds n to the bucket as the most-recently seen node. If a node
// with an equal key is already present it is refreshed instead of
// duplicated. A full bucket declines n, emits a ping event carrying the
// least-recently seen nodes, and returns false.
func (b *Bucket[K, N]) Insert(n N) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(n.Key()); i >= 0 {
		// already present, refresh recency
		e := b.entries[i]
		e.seenAt = b.clk.Now()
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
		b.entries = append(b.entries, e)
		b.emit(EventUpdated, e.node)
		return true
	}

	if len(b.entries) < b.size {
		b.entries = append(b.entries, entry[K, N]{node: n, seenAt: b.clk.Now()})
		b.emit(EventAdded, n)
		return true
	}

	oldest := make([]N, 0, b.ping)
	for i := 0; i < b.ping && i < len(b.entries); i++ {
		oldest = append(oldest, b.entries[i].node)
	}
	b.emit(EventPing, oldest, n)
	return false
}

// Remove removes the node whose key equals n's key, reporting whether a
// node was removed.
func (b *Bucket[K, N]) Remove(n N) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(n.Key())
	if i < 0 {
		return false
	}
	removed := b.entries[i].node
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	b.emit(EventRemoved, removed)
	return true
}

// Contains reports whether a node whose key equals n's key is in the bucket.
func (b *Bucket[K, N]) Contains(n N) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indexOf(n.Key()) >= 0
}

// Nodes returns the nodes held by the bucket ordered from least-recently to
// most-recently seen.
func (b *Bucket[K, N]) Nodes() []N {
	b.mu.Lock()
	defer b.mu.Unlock()

	nodes := make([]N, len(b.entries))
	for i, e := range b.entries {
		nodes[i] = e.node
	}
	return nodes
}

// Count returns the number of nodes in the bucket.
func (b *Bucket[K, N]) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// LastSeen returns the time the node whose key equals n's key was last
// inserted, and false if the node is not in the bucket.
func (b *Bucket[K, N]) LastSeen(n N) (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(n.Key())
	if i < 0 {
		return time.Time{}, false
	}
	return b.entries[i].seenAt, true
}

func (b *Bucket[K, N]) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	sb := new(strings.Builder)
	fmt.Fprintf(sb, "bucket{depth: %d, nodes: [", b.depth)
	for i, e := range b.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.node.String())
	}
	sb.WriteString("]}")
	return sb.String()
}

// indexOf returns the position of the entry with the given key, or -1.
// Callers must hold b.mu.
func (b *Bucket[K, N]) indexOf(k K) int {
	for i, e := range b.entries {
		if key.Equal(k, e.node.Key()) {
			return i
		}
	}
	return -1
}

func (b *Bucket[K, N]) emit(event string, args ...any) {
	if b.emitter != nil {
		b.emitter.Emit(event, args...)
	}
}
