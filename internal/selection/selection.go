package selection

// Package selection enforces business invariants over bounded product
// selections (cart, wishlist, comparison list).

// Selection is an ordered, duplicate-free list of product ids. Values are
// immutable; mutations return a new Selection.
type Selection struct {
	IDs []string `json:"ids"`
}

func (s Selection) Contains(id string) bool {
	for _, candidate := range s.IDs {
		if candidate == id {
			return true
		}
	}
	return false
}

func (s Selection) Len() int {
	return len(s.IDs)
}

// With returns a copy of the selection with id appended.
func (s Selection) With(id string) Selection {
	ids := make([]string, 0, len(s.IDs)+1)
	ids = append(ids, s.IDs...)
	ids = append(ids, id)
	return Selection{IDs: ids}
}

// Without returns a copy of the selection with id removed, preserving order.
func (s Selection) Without(id string) Selection {
	ids := make([]string, 0, len(s.IDs))
	for _, candidate := range s.IDs {
		if candidate != id {
			ids = append(ids, candidate)
		}
	}
	return Selection{IDs: ids}
}
