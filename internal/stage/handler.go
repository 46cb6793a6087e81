package stage

import "context"

// Context is the immutable parameter bundle passed to every step of one
// pipeline invocation.
type Context struct {
	Root    string
	Episode int
	Steps   []string
	Force   bool
}

// NewContext copies steps so later mutation by the caller cannot leak into a
// running pipeline.
func NewContext(root string, episode int, steps []string, force bool) Context {
	cp := make([]string, len(steps))
	copy(cp, steps)
	return Context{Root: root, Episode: episode, Steps: cp, Force: force}
}

// Outcome distinguishes a step that wrote its artifact from one that found the
// artifact already present.
type Outcome int

const (
	OutcomeWrote Outcome = iota + 1
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWrote:
		return "wrote"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Handler runs one named step.
type Handler interface {
	Run(ctx context.Context, sc Context) (Outcome, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, sc Context) (Outcome, error)

// Run implements Handler.
func (f HandlerFunc) Run(ctx context.Context, sc Context) (Outcome, error) {
	return f(ctx, sc)
}
