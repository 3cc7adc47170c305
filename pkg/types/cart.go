package types

// Cart maps a product id to the quantity staged for an order. Quantities are
// always at least 1; an entry whose quantity would reach 0 is removed.
type Cart map[string]int

// Count returns the total number of items, the sum of all quantities.
func (c Cart) Count() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// Clone returns a copy of the cart. A nil cart yields an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
