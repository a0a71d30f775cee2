package rtree

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func testPopulations(mandatory, max int, mult float64) []int {
	var pops []int
	for i := 0; i < mandatory; i++ {
		pops = append(pops, i)
	}
	for pop := float64(mandatory); pop < float64(max); pop *= mult {
		pops = append(pops, int(pop))
	}
	return pops
}

func TestRandom(t *testing.T) {
	for _, population := range testPopulations(66, 1000, 1.2) {
		t.Run(fmt.Sprintf("insert_%d", population), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(0))
			boxes := make([]Box, population)
			for i := range boxes {
				boxes[i] = randomBox(rnd, 0.9, 0.1)
			}

			rt := new(RTree)
			for i, box := range boxes {
				rt.Insert(box, i)
				checkInvariants(t, rt, boxes[:i+1])
			}

			checkSearch(t, rt, boxes, rnd)
		})
	}
}

func TestDelete(t *testing.T) {
	for _, population := range testPopulations(66, 1000, 1.5) {
		t.Run(fmt.Sprintf("pop=%d", population), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(0))
			boxes := make([]Box, population)
			rt := new(RTree)
			for i := range boxes {
				boxes[i] = randomBox(rnd, 0.9, 0.1)
				rt.Insert(boxes[i], i)
			}
			checkInvariants(t, rt, boxes)

			for i := len(boxes) - 1; i >= 0; i-- {
				if !rt.Delete(boxes[i], i) {
					t.Fatalf("could not delete recordID %d", i)
				}
				checkInvariants(t, rt, boxes[:i])
				checkSearch(t, rt, boxes[:i], rnd)
			}
		})
	}
}

func TestPrioritySearch(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	boxes := make([]Box, 100)
	rt := new(RTree)
	for i := range boxes {
		boxes[i] = randomBox(rnd, 0.9, 0.1)
		rt.Insert(boxes[i], i)
	}

	origin := Box{MinX: 0.5, MinY: 0.5, MinZ: 0.5, MaxX: 0.5, MaxY: 0.5, MaxZ: 0.5}
	var got []int
	rt.PrioritySearch(origin, func(recordID int) error {
		got = append(got, recordID)
		return nil
	})
	if len(got) != len(boxes) {
		t.Fatalf("expected %d records, got %d", len(boxes), len(got))
	}
	for i := 1; i < len(got); i++ {
		d1 := squaredEuclideanDistance(boxes[got[i-1]], origin)
		d2 := squaredEuclideanDistance(boxes[got[i]], origin)
		if d1 > d2 {
			t.Fatalf("records %d and %d out of priority order", got[i-1], got[i])
		}
	}
}

func checkSearch(t *testing.T, rt *RTree, boxes []Box, rnd *rand.Rand) {
	for i := 0; i < 10; i++ {
		searchBB := randomBox(rnd, 0.5, 0.5)
		var got []int
		rt.RangeSearch(searchBB, func(idx int) error {
			got = append(got, idx)
			return nil
		})

		var want []int
		for i, box := range boxes {
			if overlap(box, searchBB) {
				want = append(want, i)
			}
		}

		sort.Ints(want)
		sort.Ints(got)

		if !reflect.DeepEqual(want, got) {
			t.Logf("search box: %v", searchBB)
			t.Errorf("search failed, got: %v want: %v", got, want)
		}
	}
}

func randomBox(rnd *rand.Rand, maxStart, maxWidth float64) Box {
	box := Box{
		MinX: rnd.Float64() * maxStart,
		MinY: rnd.Float64() * maxStart,
		MinZ: rnd.Float64() * maxStart,
	}
	box.MaxX = box.MinX + rnd.Float64()*maxWidth
	box.MaxY = box.MinY + rnd.Float64()*maxWidth
	box.MaxZ = box.MinZ + rnd.Float64()*maxWidth

	box.MinX = float64(int(box.MinX*1_000_000)) / 1_000_000
	box.MinY = float64(int(box.MinY*1_000_000)) / 1_000_000
	box.MinZ = float64(int(box.MinZ*1_000_000)) / 1_000_000
	box.MaxX = float64(int(box.MaxX*1_000_000)) / 1_000_000
	box.MaxY = float64(int(box.MaxY*1_000_000)) / 1_000_000
	box.MaxZ = float64(int(box.MaxZ*1_000_000)) / 1_000_000
	return box
}

func checkInvariants(t *testing.T, rt *RTree, boxes []Box) {
	if got := rt.Count(); got != len(boxes) {
		t.Fatalf("count mismatch: want=%d got=%d", len(boxes), got)
	}

	unfound := make(map[int]struct{})
	for i := range boxes {
		unfound[i] = struct{}{}
	}

	leafLevel := -1
	var check func(n int, level int)
	check = func(currentIdx int, level int) {
		current := rt.node(currentIdx)
		if current.isLeaf {
			if leafLevel == -1 {
				leafLevel = level
			} else if leafLevel != level {
				t.Fatalf("inconsistent leaf level: %d vs %d", leafLevel, level)
			}

			for i := 0; i < current.numEntries; i++ {
				e := current.entries[i]
				if _, ok := unfound[e.data]; !ok {
					t.Fatal("record ID found in tree but wasn't in unfound map")
				}
				delete(unfound, e.data)
			}
		} else {
			for i := 0; i < current.numEntries; i++ {
				e := &current.entries[i]
				if rt.node(e.data).parent != currentIdx {
					t.Fatalf("node %d has wrong parent", e.data)
				}
				box := rt.node(e.data).entries[0].box
				for j := 1; j < rt.node(e.data).numEntries; j++ {
					box = combine(box, rt.node(e.data).entries[j].box)
				}
				if box != e.box {
					t.Fatalf("entry box doesn't match smallest box enclosing children")
				}
				check(e.data, level+1)
			}
		}
		for i := current.numEntries; i < len(current.entries); i++ {
			e := current.entries[i]
			if e.box != (Box{}) || e.data != 0 {
				t.Fatal("entry past numEntries is not the zero value")
			}
		}
		if current.numEntries > maxChildren || (currentIdx != rt.root && current.numEntries < minChildren) {
			t.Fatalf("%p: unexpected number of entries", current)
		}
	}
	if rt.hasRoot() {
		check(rt.root, 0)
		if rt.node(rt.root).parent != 0 {
			t.Fatalf("root parent should be 0, but is %d", rt.node(rt.root).parent)
		}
	}

	if len(unfound) != 0 {
		t.Fatalf("there were still unfound record IDs after traversing tree")
	}

	gotExtent, hasExtent := rt.Extent()
	if len(boxes) == 0 {
		if hasExtent {
			t.Fatal("expected not to get an extent, but got one")
		}
	} else {
		if !hasExtent {
			t.Fatalf("expected to get an extent, but didn't")
		}
		wantExtent := boxes[0]
		for _, b := range boxes[1:] {
			wantExtent = combine(wantExtent, b)
		}
		if wantExtent != gotExtent {
			t.Fatalf("unexpected bounding box: want=%v got=%v", wantExtent, gotExtent)
		}
	}
}
