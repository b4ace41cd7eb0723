package diag

// Ranger is implemented by values that cover a range of source text.
type Ranger interface {
	Range() Ranging
}

// Ranging is a half-open range [From, To) of byte indices. Embedding it in a
// struct makes the struct a [Ranger]; it is not named Range so that the
// embedded field does not shadow the method.
type Ranging struct {
	From int
	To   int
}

// Range returns r.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns the empty Ranging at p.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}
