package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("first page", func(t *testing.T) {
		page, block := Paginate(items, 1, 10)
		if len(page) != 10 || page[0] != 0 {
			t.Fatalf("unexpected page: %v", page)
		}
		if block.TotalPages != 3 || !block.HasMore || block.TotalItems != 25 {
			t.Fatalf("unexpected block: %+v", block)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		page, block := Paginate(items, 3, 10)
		if len(page) != 5 || page[0] != 20 {
			t.Fatalf("unexpected page: %v", page)
		}
		if block.HasMore {
			t.Fatal("last page must not report more")
		}
	})

	t.Run("past the end", func(t *testing.T) {
		page, block := Paginate(items, 9, 10)
		if len(page) != 0 {
			t.Fatalf("expected empty page, got %v", page)
		}
		if block.CurrentPage != 9 || block.TotalItems != 25 {
			t.Fatalf("unexpected block: %+v", block)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		_, block := Paginate(items, 0, 0)
		if block.CurrentPage != DefaultPage {
			t.Fatalf("expected default page, got %d", block.CurrentPage)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		page, block := Paginate([]int{}, 1, 10)
		if len(page) != 0 || block.TotalPages != 0 || block.HasMore {
			t.Fatalf("unexpected result: %v %+v", page, block)
		}
	})
}
