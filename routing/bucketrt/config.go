package bucketrt

import (
	"github.com/plprobelab/go-kadtable/kad"
	"github.com/plprobelab/go-kadtable/kbucket"
)

// Config holds configuration options for a Table.
type Config[K kad.Key[K], N kad.NodeID[K]] struct {
	// NewBucket constructs the bucket holding nodes at the given
	// distance-prefix depth. If nil, a least-recently-seen kbucket with
	// default capacity is used.
	NewBucket func(depth int) kad.Bucket[K, N]
}

// DefaultConfig returns a default configuration for a Table.
func DefaultConfig[K kad.Key[K], N kad.NodeID[K]]() *Config[K, N] {
	return &Config[K, N]{
		NewBucket: func(depth int) kad.Bucket[K, N] {
			return kbucket.New[K, N](depth, nil)
		},
	}
}
