package validator

import "io"

// Output receives one character per call.
type Output func(c int)

type redirect struct {
	out Output
}

// NewRedirect returns a writer forwarding every byte written to out.
// A nil out discards output.
func NewRedirect(out Output) io.Writer {
	if out == nil {
		return io.Discard
	}
	return &redirect{out: out}
}

func (r *redirect) Write(p []byte) (int, error) {
	for _, b := range p {
		r.out(int(b))
	}
	return len(p), nil
}
