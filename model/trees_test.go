package model

import (
	"reflect"
	"strings"
	"testing"
)

func TestDestTreeLimits(t *testing.T) {
	tree := DestTree{
		Kids: []DestTree{
			{Names: []NameToDest{
				{Name: "m", Destination: DestinationExplicitIntern{}},
				{Name: "a", Destination: DestinationExplicitIntern{}},
			}},
			{Names: []NameToDest{
				{Name: "z", Destination: DestinationExplicitIntern{}},
			}},
		},
	}
	if limits := tree.Limits(); limits != [2]string{"a", "z"} {
		t.Errorf("unexpected limits %v", limits)
	}

	table := tree.LookupTable()
	if len(table) != 3 {
		t.Errorf("expected 3 named destinations, got %d", len(table))
	}
	if _, ok := table["a"]; !ok {
		t.Error("missing destination for name a")
	}
}

func TestDestTreeClone(t *testing.T) {
	page := &PageObject{}
	tree := DestTree{
		Names: []NameToDest{
			{Name: "first", Destination: DestinationExplicitIntern{Page: page}},
		},
	}
	cache := newCloneCache()
	cache.pages[page] = &PageObject{}
	tree2 := tree.clone(cache)
	if len(tree2.Names) != 1 || tree2.Names[0].Name != "first" {
		t.Fatalf("unexpected clone %v", tree2)
	}
	cloned := tree2.Names[0].Destination.(DestinationExplicitIntern)
	if cloned.Page == page {
		t.Error("clone kept a pointer into the original page tree")
	}
}

func TestPageLabelsLookup(t *testing.T) {
	tree := PageLabelsTree{
		Nums: []NumToPageLabel{
			{Num: 0, PageLabel: PageLabel{S: "r", St: 1}},
			{Num: 10, PageLabel: PageLabel{S: "D", St: 1}},
		},
	}
	table := tree.LookupTable()
	if len(table) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(table))
	}
	if table[10].S != "D" {
		t.Errorf("unexpected label %v", table[10])
	}
	if limits := tree.Limits(); limits != [2]int{0, 10} {
		t.Errorf("unexpected limits %v", limits)
	}

	clone := tree.Clone()
	if !reflect.DeepEqual(tree, clone) {
		t.Errorf("expected %v, got %v", tree, clone)
	}
}

func TestEmbeddedFileTreeLimits(t *testing.T) {
	var names []string
	for i := 1; i < 6; i++ {
		names = append(names, strings.Repeat("u", i))
	}
	tree := EmbeddedFileTree{
		{Name: names[3], FileSpec: &FileSpec{}},
		{Name: names[0], FileSpec: &FileSpec{}},
		{Name: names[4], FileSpec: &FileSpec{}},
	}
	if limits := tree.Limits(); limits != [2]string{names[0], names[4]} {
		t.Errorf("unexpected limits %v", limits)
	}
}
