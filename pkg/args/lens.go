package args

// Lens focuses on one field T inside a record S.
//
// Set returns an updated copy; S is never mutated in place.
type Lens[S, T any] struct {
	Get func(S) T
	Set func(S, T) S
}

// Over applies f to the focused field.
func (l Lens[S, T]) Over(s S, f func(T) T) S {
	return l.Set(s, f(l.Get(s)))
}

// First1 focuses the only slot of a One.
func First1[A any]() Lens[One[A], A] {
	return Lens[One[A], A]{
		Get: func(s One[A]) A { return s.First },
		Set: func(s One[A], v A) One[A] { s.First = v; return s },
	}
}

// First2 focuses the first slot of a Two.
func First2[A, B any]() Lens[Two[A, B], A] {
	return Lens[Two[A, B], A]{
		Get: func(s Two[A, B]) A { return s.First },
		Set: func(s Two[A, B], v A) Two[A, B] { s.First = v; return s },
	}
}

// Second2 focuses the second slot of a Two.
func Second2[A, B any]() Lens[Two[A, B], B] {
	return Lens[Two[A, B], B]{
		Get: func(s Two[A, B]) B { return s.Second },
		Set: func(s Two[A, B], v B) Two[A, B] { s.Second = v; return s },
	}
}

func First3[A, B, C any]() Lens[Three[A, B, C], A] {
	return Lens[Three[A, B, C], A]{
		Get: func(s Three[A, B, C]) A { return s.First },
		Set: func(s Three[A, B, C], v A) Three[A, B, C] { s.First = v; return s },
	}
}

func Second3[A, B, C any]() Lens[Three[A, B, C], B] {
	return Lens[Three[A, B, C], B]{
		Get: func(s Three[A, B, C]) B { return s.Second },
		Set: func(s Three[A, B, C], v B) Three[A, B, C] { s.Second = v; return s },
	}
}

func Third3[A, B, C any]() Lens[Three[A, B, C], C] {
	return Lens[Three[A, B, C], C]{
		Get: func(s Three[A, B, C]) C { return s.Third },
		Set: func(s Three[A, B, C], v C) Three[A, B, C] { s.Third = v; return s },
	}
}

func First4[A, B, C, D any]() Lens[Four[A, B, C, D], A] {
	return Lens[Four[A, B, C, D], A]{
		Get: func(s Four[A, B, C, D]) A { return s.First },
		Set: func(s Four[A, B, C, D], v A) Four[A, B, C, D] { s.First = v; return s },
	}
}

func Second4[A, B, C, D any]() Lens[Four[A, B, C, D], B] {
	return Lens[Four[A, B, C, D], B]{
		Get: func(s Four[A, B, C, D]) B { return s.Second },
		Set: func(s Four[A, B, C, D], v B) Four[A, B, C, D] { s.Second = v; return s },
	}
}

func Third4[A, B, C, D any]() Lens[Four[A, B, C, D], C] {
	return Lens[Four[A, B, C, D], C]{
		Get: func(s Four[A, B, C, D]) C { return s.Third },
		Set: func(s Four[A, B, C, D], v C) Four[A, B, C, D] { s.Third = v; return s },
	}
}

func Fourth4[A, B, C, D any]() Lens[Four[A, B, C, D], D] {
	return Lens[Four[A, B, C, D], D]{
		Get: func(s Four[A, B, C, D]) D { return s.Fourth },
		Set: func(s Four[A, B, C, D], v D) Four[A, B, C, D] { s.Fourth = v; return s },
	}
}
