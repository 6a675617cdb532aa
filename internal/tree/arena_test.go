package tree

import "testing"

func TestArenaGenerations(t *testing.T) {
	var a Arena[string]
	h1 := a.Insert("one")
	if *a.Get(h1) != "one" {
		t.Fatal("get")
	}
	if !a.Destroy(h1) {
		t.Fatal("unreferenced slot must be freed")
	}
	if a.Get(h1) != nil {
		t.Fatal("stale handle resolved")
	}

	h2 := a.Insert("two")
	if h2.index != h1.index || h2.gen == h1.gen {
		t.Fatalf("slot not reused with new generation: %v %v", h1, h2)
	}
	if a.Get(h1) != nil || *a.Get(h2) != "two" {
		t.Fatal("generation check")
	}
	var zero Handle[string]
	if zero.Valid() || a.Get(zero) != nil {
		t.Fatal("zero handle")
	}
}

func TestArenaDeferredDestroy(t *testing.T) {
	var a Arena[int]
	h := a.Insert(7)
	a.Ref(h)
	a.Ref(h)

	if a.Destroy(h) {
		t.Fatal("referenced slot freed")
	}
	if !a.Destroying(h) || a.Get(h) == nil {
		t.Fatal("destroying slot must still resolve")
	}
	if a.Unref(h) {
		t.Fatal("freed with one ref left")
	}
	if !a.Unref(h) {
		t.Fatal("last unref must free")
	}
	if a.Get(h) != nil || a.Len() != 0 {
		t.Fatal("slot still live")
	}
}
