package octree

import "sort"

// ChunkID identifies one octree node within a single build. Ids are only
// comparable within the tree that produced them.
type ChunkID int32

// OutsideChunk is assigned to bodies whose bounds miss the world volume.
const OutsideChunk ChunkID = -1

// ChunkSet is a sorted, duplicate-free set of chunk ids. The zero value is
// the empty set.
type ChunkSet []ChunkID

func (s ChunkSet) search(id ChunkID) int {
	return sort.Search(len(s), func(i int) bool { return s[i] >= id })
}

func (s ChunkSet) Has(id ChunkID) bool {
	i := s.search(id)
	return i < len(s) && s[i] == id
}

// Add returns the set with id inserted.
func (s ChunkSet) Add(id ChunkID) ChunkSet {
	i := s.search(id)
	if i < len(s) && s[i] == id {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = id
	return s
}

// Remove returns the set without id.
func (s ChunkSet) Remove(id ChunkID) ChunkSet {
	i := s.search(id)
	if i == len(s) || s[i] != id {
		return s
	}
	return append(s[:i], s[i+1:]...)
}

// Intersects reports whether the sets share at least one chunk.
func (s ChunkSet) Intersects(o ChunkSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] == o[j]:
			return true
		case s[i] < o[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func (s ChunkSet) Clone() ChunkSet {
	if s == nil {
		return nil
	}
	return append(ChunkSet(nil), s...)
}
