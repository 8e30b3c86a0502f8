package wickutil

import (
	"bytes"
	"io"
)

// WriteBuffer accumulates output in memory, passing it on to To according to
// its FlushPolicy. Typical use:
//
// 	var buf WriteBuffer
// 	buf.To = os.Stdout
// 	for _, line := range lines {
// 		fmt.Fprintln(&buf, line)
// 		if err := buf.MaybeFlush(); err != nil {
// 			return err
// 		}
// 	}
// 	return buf.Flush()
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy decides how many buffered bytes a WriteBuffer should pass on.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a function into a FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes everything buffered into To, regardless of policy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes the prefix of buffered bytes chosen by FlushPolicy into
// To, discarding whatever got written. A nil FlushPolicy defaults to
// FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	n := buf.ShouldFlush(b)
	if n <= 0 {
		return nil
	}
	m, err := buf.To.Write(b[:n])
	buf.Next(m)
	return err
}

// FlushLineChunks is a FlushPolicyFunc passing on all complete lines.
func FlushLineChunks(b []byte) int {
	return bytes.LastIndexByte(b, '\n') + 1
}

// ErrWriter wraps a writer, retaining its first error; once an error has
// occurred all further writes fail with it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer until Err is set.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// Prefixer is a line oriented writer that prepends Prefix to every line
// written through it. Changes to Prefix take effect with the next line.
type Prefixer struct {
	Prefix string

	// Skip suppresses the prefix of the first line, for callers that have
	// already written a lead-in.
	Skip bool

	buf WriteBuffer
}

// PrefixWriter returns a Prefixer writing into w.
// Callers should Close it to flush any final partial line.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	p := &Prefixer{Prefix: prefix}
	p.buf.To = w
	return p
}

// Close flushes any buffered partial line.
func (p *Prefixer) Close() error { return p.buf.Flush() }

// Write buffers b, prefixing each line start, then flushes complete lines.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if i := p.buf.Len() - 1; i < 0 || p.buf.Bytes()[i] == '\n' {
			if p.Skip {
				p.Skip = false
			} else {
				p.buf.WriteString(p.Prefix)
			}
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
		}
		b = b[len(line):]
		m, _ := p.buf.Write(line)
		n += m
	}
	return n, p.buf.MaybeFlush()
}

// WriteLines calls next repeatedly with a buffered writer until it returns
// false, flushing complete lines after each call. The flush argument forces
// out any partial line. Iteration stops early after any write error, which
// is returned.
func WriteLines(to io.Writer, next func(w io.Writer, flush func()) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf WriteBuffer
	buf.To = ew
	flush := func() { buf.Flush() }
	for ew.Err == nil && next(&buf, flush) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
