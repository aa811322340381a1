package pipeline

// Emitter receives the output of a Stage.
type Emitter interface {
	// Push forwards a file downstream.
	Push(f *File)
	// Error reports a per-file failure.
	Error(err error)
}

// Collector is an Emitter that keeps everything it receives, in order.
type Collector struct {
	Files  []*File
	Errors []error
}

// Push implements Emitter.
func (c *Collector) Push(f *File) {
	c.Files = append(c.Files, f)
}

// Error implements Emitter.
func (c *Collector) Error(err error) {
	c.Errors = append(c.Errors, err)
}

// Failed reports whether any error was collected.
func (c *Collector) Failed() bool {
	return len(c.Errors) > 0
}
