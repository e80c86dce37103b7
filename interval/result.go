package interval

// Result is a native tagged result carrying either a successful value
// or a failure error, used by BiasedFunc instead of a checked-exception
// style Either. Only one of value/err is meaningful at a time,
// selected by ok.
type Result struct {
	ok    bool
	value any
	err   error
}

// Success builds a successful Result carrying value.
func Success(value any) Result {
	return Result{ok: true, value: value}
}

// Failure builds a failed Result carrying err.
func Failure(err error) Result {
	return Result{ok: false, err: err}
}

// Ok reports whether the result represents success.
func (r Result) Ok() bool {
	return r.ok
}

// Value returns the carried value. Meaningless if Ok() is false.
func (r Result) Value() any {
	return r.value
}

// Err returns the carried error. Meaningless if Ok() is true.
func (r Result) Err() error {
	return r.err
}

// Fold applies onSuccess or onFailure depending on the tag and returns
// the chosen branch's result.
func Fold[T any](r Result, onSuccess func(any) T, onFailure func(error) T) T {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// Map transforms the success value, leaving a failure untouched.
func (r Result) Map(f func(any) any) Result {
	if !r.ok {
		return r
	}
	return Success(f(r.value))
}

// MapErr transforms the failure error, leaving a success untouched.
func (r Result) MapErr(f func(error) error) Result {
	if r.ok {
		return r
	}
	return Failure(f(r.err))
}

// Swap turns a success into a failure carrying the value's error form
// (via toErr) and vice versa (via toValue); used when composing a
// Result across an API boundary that inverts the success/failure sense.
func (r Result) Swap(toErr func(any) error, toValue func(error) any) Result {
	if r.ok {
		return Failure(toErr(r.value))
	}
	return Success(toValue(r.err))
}
