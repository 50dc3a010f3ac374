package octree

import (
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a plain-data copy of one build, used for dumps and debugging.
type Snapshot struct {
	MaxObjects int                `msgpack:"max_objects"`
	MaxDepth   int                `msgpack:"max_depth"`
	Chunks     int                `msgpack:"chunks"`
	Nodes      []NodeSnapshot     `msgpack:"nodes"`
	Membership []MembershipRecord `msgpack:"membership"`
}

type NodeSnapshot struct {
	Min        [3]float32 `msgpack:"min"`
	Max        [3]float32 `msgpack:"max"`
	Chunk      int32      `msgpack:"chunk"`
	FirstChild int32      `msgpack:"first_child"`
	Depth      int        `msgpack:"depth"`
	Members    []int      `msgpack:"members,omitempty"`
}

type MembershipRecord struct {
	Body   int       `msgpack:"body"`
	Chunks []ChunkID `msgpack:"chunks"`
}

// Snapshot copies the arena and the membership table, sorted by body id.
func (t *Tree) Snapshot() Snapshot {
	s := Snapshot{
		MaxObjects: t.maxObjects,
		MaxDepth:   t.maxDepth,
		Chunks:     t.Chunks(),
		Nodes:      make([]NodeSnapshot, len(t.nodes)),
		Membership: make([]MembershipRecord, 0, len(t.membership)),
	}
	for i, n := range t.nodes {
		s.Nodes[i] = NodeSnapshot{
			Min:        [3]float32{n.Bounds.Min.X, n.Bounds.Min.Y, n.Bounds.Min.Z},
			Max:        [3]float32{n.Bounds.Max.X, n.Bounds.Max.Y, n.Bounds.Max.Z},
			Chunk:      int32(n.Chunk),
			FirstChild: n.FirstChild,
			Depth:      n.Depth,
			Members:    append([]int(nil), n.Members...),
		}
	}
	for id, set := range t.membership {
		s.Membership = append(s.Membership, MembershipRecord{Body: id, Chunks: append([]ChunkID{}, set...)})
	}
	sort.Slice(s.Membership, func(i, j int) bool { return s.Membership[i].Body < s.Membership[j].Body })
	return s
}

// EncodeSnapshot serializes a snapshot with msgpack.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode octree snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses data written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode octree snapshot: %w", err)
	}
	return s, nil
}
