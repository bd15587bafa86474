package draft

type options struct {
	record       bool
	checkContext bool
}

type Option func(*options)

// WithoutPatches turns off patch recording.  Finalize then returns nil
// patch lists.
func WithoutPatches() Option {
	return func(o *options) { o.record = false }
}

// CheckContext makes every write fail with the context error once the
// context of the execution is done.
func CheckContext() Option {
	return func(o *options) { o.checkContext = true }
}
