package model

import "testing"

func buildTestTree() (PageTree, []*PageObject) {
	leaves := []*PageObject{{}, {}, {}, {}}
	sub := PageTree{Kids: []PageNode{leaves[1], leaves[2]}}
	root := PageTree{Kids: []PageNode{leaves[0], &sub, leaves[3]}}
	return root, leaves
}

func TestPageTreeIndexedDescent(t *testing.T) {
	root, leaves := buildTestTree()
	for i, want := range leaves {
		got, ok := root.Page(i)
		if !ok {
			t.Fatalf("Page(%d): not found", i)
		}
		if got != want {
			t.Errorf("Page(%d) = %p, want %p", i, got, want)
		}
	}
	if _, ok := root.Page(len(leaves)); ok {
		t.Errorf("Page(%d) out of range should fail", len(leaves))
	}
	if _, ok := root.Page(-1); ok {
		t.Errorf("Page(-1) should fail")
	}
}

func TestPageNumberIndexRoundTrip(t *testing.T) {
	root, leaves := buildTestTree()
	idx := NewPageNumberIndex(root)

	for want, p := range leaves {
		got, ok := idx.Lookup(p)
		if !ok {
			t.Fatalf("Lookup(leaf %d): not found", want)
		}
		if got != want {
			t.Errorf("Lookup(leaf %d) = %d", want, got)
		}
	}

	if _, ok := idx.Lookup(&PageObject{}); ok {
		t.Errorf("Lookup of a page not in the tree should fail")
	}
}

func TestPageTreeLookupConsistentWithReverseMap(t *testing.T) {
	root, _ := buildTestTree()
	idx := NewPageNumberIndex(root)
	for i := 0; i < root.Count(); i++ {
		page, ok := root.Page(i)
		if !ok {
			t.Fatalf("Page(%d) not found", i)
		}
		got, ok := idx.Lookup(page)
		if !ok || got != i {
			t.Errorf("lookup(Page(%d)) = %d, %v; want %d, true", i, got, ok, i)
		}
	}
}
