package bucketrt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/plprobelab/go-kadtable/kad"
	"github.com/plprobelab/go-kadtable/key"
	"github.com/plprobelab/go-kadtable/util"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Table is a Kademlia routing table backed by a fixed-length array of
// buckets, one per distance-prefix length of the key space. A node with a
// key sharing i leading bits with the local node's key always lives in
// buckets[i], regardless of insertion history. The flat array keeps bucket
// index computation O(1) and avoids the pointer graph of a tree-shaped
// table.
//
// A single mutex guards the whole table. Operations are cheap and CPU-bound
// so serializing bucket access is adequate; readers see a consistent
// snapshot per bucket they touch.
type Table[K kad.Key[K], N kad.NodeID[K]] struct {
	mu        sync.RWMutex
	self      N
	selfKey   K
	buckets   []kad.Bucket[K, N]
	newBucket func(depth int) kad.Bucket[K, N]
}

var _ kad.RoutingTable[key.Key32, kad.NodeID[key.Key32]] = (*Table[key.Key32, kad.NodeID[key.Key32]])(nil)

// New returns a Table for the node identified by self, with one bucket per
// bit of the key space. The local node is inserted as the table's first
// entry, so the table is never empty and a lookup of the local key resolves
// to bucket 0. A nil cfg is equivalent to DefaultConfig().
func New[K kad.Key[K], N kad.NodeID[K]](self N, cfg *Config[K, N]) *Table[K, N] {
	if cfg == nil || cfg.NewBucket == nil {
		cfg = DefaultConfig[K, N]()
	}
	rt := &Table[K, N]{
		self:      self,
		selfKey:   self.Key(),
		newBucket: cfg.NewBucket,
	}
	rt.Initialize()
	rt.AddNode(context.Background(), self)
	return rt
}

// Initialize resets the table to its default state: every bucket is
// reallocated empty with its depth set to its array index. Any prior
// contents are discarded. It does not re-insert the local node; that is the
// constructor's job.
func (rt *Table[K, N]) Initialize() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.buckets = make([]kad.Bucket[K, N], rt.selfKey.BitLen())
	for i := range rt.buckets {
		rt.buckets[i] = rt.newBucket(i)
	}
}

// Self returns the local node's Kademlia key.
func (rt *Table[K, N]) Self() K {
	return rt.selfKey
}

// SelfNode returns the local node's identifier.
func (rt *Table[K, N]) SelfNode() N {
	return rt.self
}

// BucketIndexForKey returns the index of the bucket a node with the given
// key belongs in. The distance between two keys is the 1-based position of
// their highest differing bit counting from the most significant bit, which
// is their common prefix length plus one; the bucket index is that distance
// minus one. The local key itself has no differing bit and is clamped to
// bucket 0, so a node inserting itself always lands there.
//
// The index is a pure function of the local key and kk: it never depends on
// table contents or insertion order.
func (rt *Table[K, N]) BucketIndexForKey(kk K) int {
	cpl := rt.selfKey.CommonPrefixLength(kk)
	if cpl >= rt.selfKey.BitLen() {
		return 0
	}
	return cpl
}

// AddNode adds n to the bucket matching its key, delegating capacity and
// recency policy to the bucket. Exactly one bucket is touched. It reports
// whether the bucket accepted the node.
func (rt *Table[K, N]) AddNode(ctx context.Context, n N) bool {
	_, span := util.StartSpan(ctx, "bucketrt.addNode", trace.WithAttributes(
		attribute.String("KadKey", key.HexString(n.Key())),
	))
	defer span.End()

	bid := rt.BucketIndexForKey(n.Key())

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !rt.buckets[bid].Insert(n) {
		span.AddEvent("node declined by bucket " + strconv.Itoa(bid))
		return false
	}
	span.AddEvent("node added to bucket " + strconv.Itoa(bid))
	return true
}

// RemoveNode removes the node whose key equals n's key from its bucket,
// reporting whether it was present. Removing an absent node is a no-op, not
// an error, and is safe to call for any node.
func (rt *Table[K, N]) RemoveNode(ctx context.Context, n N) bool {
	_, span := util.StartSpan(ctx, "bucketrt.removeNode", trace.WithAttributes(
		attribute.String("KadKey", key.HexString(n.Key())),
	))
	defer span.End()

	bid := rt.BucketIndexForKey(n.Key())

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !rt.buckets[bid].Contains(n) {
		span.AddEvent("node not found in bucket " + strconv.Itoa(bid))
		return false
	}
	rt.buckets[bid].Remove(n)
	span.AddEvent("node removed from bucket " + strconv.Itoa(bid))
	return true
}

// NearestNodes returns up to n nodes believed to be closest to kk, by
// expanding-ring search: the bucket matching kk's distance prefix is
// consumed first, then buckets at increasing radius on both sides until n
// nodes are collected or the table is exhausted. Bucket 0 is eligible
// during expansion like any other in-range bucket.
//
// Nodes keep their bucket's own internal order; results are ordered by
// distance-prefix band, not by exact XOR distance. Callers that need an
// exact ordering must sort the result themselves. A non-positive n returns
// an empty slice.
func (rt *Table[K, N]) NearestNodes(ctx context.Context, kk K, n int) []N {
	_, span := util.StartSpan(ctx, "bucketrt.nearestNodes", trace.WithAttributes(
		attribute.String("KadKey", key.HexString(kk)),
		attribute.Int("n", n),
	))
	defer span.End()

	if n <= 0 {
		return []N{}
	}
	closest := make([]N, 0, n)

	rt.mu.RLock()
	defer rt.mu.RUnlock()

	start := rt.BucketIndexForKey(kk)
	closest = appendUpTo(closest, rt.buckets[start].Nodes(), n)
	if len(closest) >= n {
		return closest
	}

	for i := 1; start-i >= 0 || start+i < len(rt.buckets); i++ {
		if start-i >= 0 {
			closest = appendUpTo(closest, rt.buckets[start-i].Nodes(), n)
		}
		if start+i < len(rt.buckets) && len(closest) < n {
			closest = appendUpTo(closest, rt.buckets[start+i].Nodes(), n)
		}
		if len(closest) >= n {
			break
		}
	}
	return closest
}

// AllNodes returns every node in the table, buckets in ascending depth
// order, each bucket's nodes in its own internal order.
func (rt *Table[K, N]) AllNodes() []N {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	nodes := make([]N, 0)
	for _, b := range rt.buckets {
		nodes = append(nodes, b.Nodes()...)
	}
	return nodes
}

// Buckets returns the table's buckets in depth order. The returned slice is
// a copy but the buckets themselves are shared with the table.
func (rt *Table[K, N]) Buckets() []kad.Bucket[K, N] {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	buckets := make([]kad.Bucket[K, N], len(rt.buckets))
	copy(buckets, rt.buckets)
	return buckets
}

// SetBuckets replaces the table's buckets wholesale, used to restore a
// snapshot taken with Buckets. The supplied slice must contain one bucket
// per bit of the key space, each with a depth equal to its index; a
// violation is rejected with an error rather than corrupting the table.
func (rt *Table[K, N]) SetBuckets(buckets []kad.Bucket[K, N]) error {
	if len(buckets) != rt.selfKey.BitLen() {
		return errors.Errorf("expected %d buckets, got %d", rt.selfKey.BitLen(), len(buckets))
	}
	for i, b := range buckets {
		if b.Depth() != i {
			return errors.Errorf("bucket at index %d has depth %d", i, b.Depth())
		}
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.buckets = buckets
	return nil
}

// String renders the depth, node count and contents of every non-empty
// bucket. It is a diagnostic surface only; the format is not a contract.
func (rt *Table[K, N]) String() string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	sb := new(strings.Builder)
	fmt.Fprintf(sb, "routing table for %s:\n", key.HexString(rt.selfKey))
	for _, b := range rt.buckets {
		count := b.Count()
		if count == 0 {
			continue
		}
		fmt.Fprintf(sb, "depth %d: %d nodes", b.Depth(), count)
		if s, ok := b.(fmt.Stringer); ok {
			fmt.Fprintf(sb, " %s", s.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// appendUpTo appends nodes to dst until dst holds n entries.
func appendUpTo[N any](dst, nodes []N, n int) []N {
	for _, node := range nodes {
		if len(dst) >= n {
			break
		}
		dst = append(dst, node)
	}
	return dst
}
