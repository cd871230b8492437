package kad

import "context"

// Key is the interface all Kademlia key types support.
//
// A Kademlia key is defined as a bit string of arbitrary size. In practice, different Kademlia implementations use
// different key sizes. For instance, the Kademlia paper (https://pdos.csail.mit.edu/~petar/papers/maymounkov-kademlia-lncs.pdf)
// defines keys as 160-bits long and IPFS uses 256-bit keys.
//
// Keys are usually generated using cryptographic hash functions, however the specifics of key generation
// do not matter for key operations.
type Key[K any] interface {
	// BitLen returns the length of the key in bits.
	BitLen() int

	// Bit returns the value of the i'th bit of the key from most significant to least. It is equivalent to (key>>(bitlen-i-1))&1.
	// Bit will panic if i is out of the range [0,BitLen()-1].
	Bit(i int) uint

	// Xor returns the result of the eXclusive OR operation between the key and another key of the same type.
	Xor(other K) K

	// CommonPrefixLength returns the number of leading bits the key shares with another key of the same type.
	// The CommonPrefixLength of a key with itself is equal to BitLen.
	CommonPrefixLength(other K) int

	// Compare compares the numeric value of the key with another key of the same type.
	// It returns -1 if the key is numerically less than other, +1 if it is greater
	// and 0 if both keys are equal.
	Compare(other K) int
}

// NodeID is a generic node identifier. It is used to identify a node.
type NodeID[K Key[K]] interface {
	// Key returns the Kademlia key of the NodeID.
	Key() K

	// String returns the string representation of the NodeID. String
	// representation should be unique for each NodeID.
	String() string
}

// Bucket is a bounded container of nodes that all share the same
// distance-prefix length from a local node. A bucket owns its capacity and
// eviction policy; the routing table only routes nodes to the bucket
// matching their key.
type Bucket[K Key[K], N NodeID[K]] interface {
	// Depth returns the distance-prefix length this bucket holds nodes for.
	// It is fixed at construction.
	Depth() int

	// Insert adds a node to the bucket, or refreshes it if a node with an
	// equal key is already present. Insert is idempotent with respect to
	// keys and never creates a duplicate entry. It reports whether the node
	// is in the bucket afterwards; a full bucket may decline a new node and
	// return false, per its own eviction policy.
	Insert(n N) bool

	// Remove removes the node whose key equals n's key, reporting whether a
	// node was removed.
	Remove(n N) bool

	// Contains reports whether a node whose key equals n's key is in the
	// bucket.
	Contains(n N) bool

	// Nodes returns the nodes held by the bucket in the bucket's own
	// internal order.
	Nodes() []N

	// Count returns the number of nodes in the bucket.
	Count() int
}

// RoutingTable is the interface all Kademlia routing table types support.
//
// The supplied context carries tracing information only. No routing table
// operation blocks, waits or performs I/O, so there are no cancellation or
// timeout semantics at this layer.
type RoutingTable[K Key[K], N NodeID[K]] interface {
	// Self returns the local node's Kademlia key.
	Self() K

	// AddNode tries to add a node to the routing table. It reports whether
	// the node was accepted by the bucket it belongs to.
	AddNode(ctx context.Context, n N) bool

	// RemoveNode tries to remove a node from the routing table, reporting
	// whether it was present. Removing an absent node is not an error.
	RemoveNode(ctx context.Context, n N) bool

	// NearestNodes returns up to n nodes believed to be closest to the
	// given key.
	NearestNodes(ctx context.Context, kk K, n int) []N

	// AllNodes returns every node known to the routing table.
	AllNodes() []N
}
