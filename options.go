package tickkit

type config struct {
	name string
	tags []Tag

	oneShot          bool
	startImmediately bool

	clock Clock

	onPanic PanicHandler
	onTick  func(info TickInfo)
}

// Option configures a Timer at construction.
type Option func(*config)

func defaultConfig() config {
	return config{
		clock: stdClock{},
	}
}

// WithName sets a human-friendly name for panic reports and tick info.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithTag appends a single tag (key/value) to reports.
func WithTag(key, value string) Option {
	return func(c *config) {
		c.tags = append(c.tags, Tag{Key: key, Value: value})
	}
}

// WithTags appends tags to reports (preserving order).
func WithTags(tags ...Tag) Option {
	return func(c *config) {
		if len(tags) == 0 {
			return
		}
		c.tags = append(c.tags, tags...)
	}
}

// WithOneShot controls whether the timer stops itself after the first
// successful invocation. Default is false (periodic).
func WithOneShot(v bool) Option {
	return func(c *config) { c.oneShot = v }
}

// WithStartImmediately controls whether the first tick of a run fires
// immediately instead of after one interval. Default is false.
func WithStartImmediately(v bool) Option {
	return func(c *config) { c.startImmediately = v }
}

// WithClock replaces the time source used by the worker. Nil is ignored.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock == nil {
			return
		}
		c.clock = clock
	}
}

// WithPanicHandler sets the panic handler. If not set, panics are reported to
// stderr by default. Panics in the handler are contained: they are recovered
// and reported to stderr.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) { c.onPanic = h }
}

// WithOnTick sets a hook observing every task invocation (including a
// panicking one). The hook runs synchronously on the worker goroutine after
// the task returns; it must be fast and must not block. It must not call
// Stop, Start or Restart on the same timer (self-join deadlock); the
// non-blocking operations (Pause, Resume, SetInterval, queries) are fine.
//
// Panics in the hook are contained: they are recovered and reported.
func WithOnTick(fn func(info TickInfo)) Option {
	return func(c *config) { c.onTick = fn }
}
