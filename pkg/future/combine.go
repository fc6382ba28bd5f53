package future

// Map transforms a successful value on the future's loop. Failures pass
// through untouched.
func Map[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	p := NewPromise[U](f.loop)
	f.OnComplete(func(value T, err error) {
		if err != nil {
			p.Fail(err)
			return
		}
		p.Complete(fn(value))
	})
	return p.Future()
}

// FlatMap chains a future-returning step after a successful value
func FlatMap[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	p := NewPromise[U](f.loop)
	f.OnComplete(func(value T, err error) {
		if err != nil {
			p.Fail(err)
			return
		}
		next := fn(value)
		if next == nil {
			p.Fail(ErrNilFailure)
			return
		}
		next.OnComplete(func(v U, err error) {
			p.Complete(v, err)
		})
	})
	return p.Future()
}

// Hop returns a future with the same outcome whose callbacks run on loop
func Hop[T any](f *Future[T], loop *EventLoop) *Future[T] {
	if f.loop == loop {
		return f
	}
	p := NewPromise[T](loop)
	f.OnComplete(func(value T, err error) {
		p.Complete(value, err)
	})
	return p.Future()
}
