package domain

// Draft is an editing context for one value. It belongs to a single command or
// request scope and is passed by reference to whoever edits it.
type Draft[T any] struct {
	original T
	current  T
	dirty    bool
}

// NewDraft starts an edit of v. Copy semantics follow T: pass a value type, not a pointer.
func NewDraft[T any](v T) *Draft[T] {
	return &Draft[T]{original: v, current: v}
}

// Value returns the current, possibly uncommitted, value.
func (d *Draft[T]) Value() T {
	return d.current
}

// Update applies fn to the working copy and marks the draft dirty.
func (d *Draft[T]) Update(fn func(*T)) {
	fn(&d.current)
	d.dirty = true
}

func (d *Draft[T]) IsDirty() bool {
	return d.dirty
}

// Commit persists the working copy through save. On success the working copy
// becomes the new baseline; on failure the draft stays dirty.
func (d *Draft[T]) Commit(save func(T) error) error {
	if !d.dirty {
		return nil
	}
	if err := save(d.current); err != nil {
		return err
	}
	d.original = d.current
	d.dirty = false
	return nil
}

// Discard drops all uncommitted changes.
func (d *Draft[T]) Discard() {
	d.current = d.original
	d.dirty = false
}
