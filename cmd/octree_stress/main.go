// Stress test comparing octree broad-phase culling against naive O(n²) pairs
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"collide3d/internal/geometry"
	"collide3d/internal/octree"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	maxObjects := flag.Int("max-objects", 50, "bodies per node before it splits")
	maxDepth := flag.Int("max-depth", 5, "maximum split depth")
	dump := flag.String("dump", "", "write the msgpack snapshot of the largest tree to this file")
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}

	var last *octree.Tree
	for _, count := range testCounts {
		last = testBroadPhase(count, *maxObjects, *maxDepth)
	}

	if *dump != "" && last != nil {
		data, err := octree.EncodeSnapshot(last.Snapshot())
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		if err := os.WriteFile(*dump, data, 0644); err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Printf("\nwrote %s (%d bytes, %d chunks)\n", *dump, len(data), last.Chunks())
	}
}

func testBroadPhase(count, maxObjects, maxDepth int) *octree.Tree {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0
	bounds := geometry.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: spawnSize, Y: spawnSize, Z: spawnSize})

	boxes := make([]geometry.AABB, count)
	for i := range boxes {
		center := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := 1 + rng.Float32() // 1.0 to 2.0 edge
		boxes[i] = geometry.NewAABBFromCenter(center, rl.Vector3{X: size, Y: size, Z: size})
	}

	// Warm up
	octreePairs(boxes, bounds, maxObjects, maxDepth)

	const iterations = 10
	treeStart := time.Now()
	var tree *octree.Tree
	var candidates, treeHits int
	for i := 0; i < iterations; i++ {
		tree, candidates, treeHits = octreePairs(boxes, bounds, maxObjects, maxDepth)
	}
	treeTime := time.Since(treeStart) / iterations

	naiveStart := time.Now()
	var naiveHits int
	for iter := 0; iter < iterations; iter++ {
		naiveHits = 0
		for i := 0; i < len(boxes); i++ {
			for j := i + 1; j < len(boxes); j++ {
				if boxes[i].Intersects(boxes[j]) {
					naiveHits++
				}
			}
		}
	}
	naiveTime := time.Since(naiveStart) / iterations

	speedup := float64(naiveTime) / float64(treeTime)
	status := "ok"
	if treeHits != naiveHits {
		status = "MISSED PAIRS"
	}

	fmt.Printf("%5d objects: octree %8v (%4d chunks, %6d candidates, %4d hits) | naive %10v (%4d hits) | %.1fx %s\n",
		count, treeTime.Round(time.Microsecond), tree.Chunks(), candidates, treeHits,
		naiveTime.Round(time.Microsecond), naiveHits, speedup, status)
	return tree
}

// octreePairs builds a tree and counts pairs sharing a chunk, then how many
// of those have overlapping boxes.
func octreePairs(boxes []geometry.AABB, bounds geometry.AABB, maxObjects, maxDepth int) (*octree.Tree, int, int) {
	tree := octree.New(bounds, maxObjects, maxDepth)
	for i, box := range boxes {
		tree.Insert(i, box)
	}

	membership := make([]octree.ChunkSet, len(boxes))
	buckets := make(map[octree.ChunkID][]int)
	for i := range boxes {
		membership[i] = tree.Membership(i)
		for _, c := range membership[i] {
			buckets[c] = append(buckets[c], i)
		}
	}

	seen := make(map[[2]int]struct{})
	hits := 0
	for _, members := range buckets {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				key := [2]int{members[x], members[y]}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if boxes[key[0]].Intersects(boxes[key[1]]) {
					hits++
				}
			}
		}
	}
	return tree, len(seen), hits
}
