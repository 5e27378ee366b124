package catalog

// Store is the read-only catalog loaded once at startup. It is safe for
// concurrent use because nothing mutates it after NewStore returns.
type Store struct {
	products   []Product
	index      map[string]int
	categories []string
}

// NewStore copies products, keeping authoring order. Input is expected to be
// pre-validated; on duplicate IDs the first entry wins lookups.
func NewStore(products []Product) *Store {
	s := &Store{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	seenCategory := map[string]struct{}{}
	s.categories = append(s.categories, CategoryAll)
	for _, p := range products {
		s.products = append(s.products, p.Clone())
		if _, ok := s.index[p.ID]; !ok {
			s.index[p.ID] = len(s.products) - 1
		}
		if _, ok := seenCategory[p.Category]; !ok {
			seenCategory[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

// All returns the full catalog in authoring order.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Get looks a product up by ID.
func (s *Store) Get(id string) (Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i].Clone(), true
}

// Featured returns the featured subset in catalog order.
func (s *Store) Featured() []Product {
	out := []Product{}
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns CategoryAll followed by each category in first-appearance order.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Len is the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}
