package booking

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 1, 10)
	if len(p.Items) != 10 || p.Items[0] != 0 {
		t.Fatalf("page 1: got %d items starting at %d", len(p.Items), p.Items[0])
	}
	if p.HasPrev || !p.HasNext || p.Total != 25 {
		t.Fatalf("page 1 meta: %+v", p)
	}

	p = Paginate(items, 3, 10)
	if len(p.Items) != 5 || p.Items[0] != 20 {
		t.Fatalf("page 3: got %d items", len(p.Items))
	}
	if !p.HasPrev || p.HasNext {
		t.Fatalf("page 3 meta: %+v", p)
	}
}

func TestPaginate_Defaults(t *testing.T) {
	items := []string{"a", "b", "c"}

	p := Paginate(items, 0, 0)
	if p.Page != 1 || p.PageSize != 10 {
		t.Fatalf("expected defaults, got page=%d size=%d", p.Page, p.PageSize)
	}
	if len(p.Items) != 3 {
		t.Fatalf("expected all items, got %d", len(p.Items))
	}
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, 10, 10)
	if len(p.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(p.Items))
	}
	if p.HasNext || !p.HasPrev {
		t.Fatalf("meta: %+v", p)
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int(nil), 1, 10)
	if len(p.Items) != 0 || p.Total != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("empty input: %+v", p)
	}
}
