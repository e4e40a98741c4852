package taillight

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Typed wraps a Signal with a fixed sender/listener type, so slot functions
// take a T instead of fishing it out of an any. Useful when one package
// owns both ends of a signal.
//
// It is a thin veneer: the underlying signal still exists, is still
// reachable through Signal(), and still shares by name through New. Mixing
// a Typed front with untyped Call senders of other types will panic inside
// the typed slot functions.
type Typed[T comparable] struct {
	signal *Signal
}

// NewTyped returns a typed front over New(name, opts...).
func NewTyped[T comparable](name string, opts ...Option) *Typed[T] {
	return &Typed[T]{New(name, opts...)}
}

// NewTypedUnshared returns a typed front over a private signal.
func NewTypedUnshared[T comparable](name string, opts ...Option) *Typed[T] {
	return &Typed[T]{NewUnshared(name, opts...)}
}

// Signal returns the wrapped signal for the operations Typed does not
// re-surface (deletes, finds, priorities, deferral control).
func (t *Typed[T]) Signal() *Signal { return t.signal }

// On registers fn for every dispatch. An Any sender reaches fn as T's zero
// value.
func (t *Typed[T]) On(fn func(sender T) error, opts ...SlotOption) (*Slot, error) {
	return t.signal.Add(func(sender any) (any, error) {
		if sender == Any {
			var zero T
			return nil, fn(zero)
		}
		return nil, fn(as[T](sender))
	}, opts...)
}

// Listen registers fn for dispatches from exactly this sender (and from
// CallAny).
func (t *Typed[T]) Listen(listener T, fn func(sender T) error, opts ...SlotOption) (*Slot, error) {
	return t.On(fn, append(opts, WithListener(listener))...)
}

// Call dispatches with a typed sender.
func (t *Typed[T]) Call(sender T) error {
	_, err := t.signal.Call(sender)
	return err
}

// CallAny dispatches to every slot on the signal.
func (t *Typed[T]) CallAny() error {
	_, err := t.signal.Call(Any)
	return err
}
