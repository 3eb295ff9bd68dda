package godow

import (
	"fmt"
	"io"
	"strings"
)

// WordStream is a channel pipeline of Words.  Each pipeline stage consumes an
// upstream Outlet and owns a goroutine that closes its own Outlet when the
// upstream closes.
type WordStream struct {
	Outlet chan Word
}

func NewWordStream() *WordStream {
	return &WordStream{
		Outlet: make(chan Word, 1),
	}
}

// StreamWord starts a stream that emits a copy of the given word and closes.
func StreamWord(w Word) *WordStream {
	next := NewWordStream()

	go func() {
		next.Outlet <- w.Clone()
		next.Close()
	}()

	return next
}

func (stream *WordStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *WordStream) PushWord(w Word) {
	stream.Outlet <- w.Clone()
}

func (stream *WordStream) PullWord() (Word, bool) {
	w, ok := <-stream.Outlet
	return w, ok
}

// PullAll drains this stream, returning the number of words pulled.
func (stream *WordStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes each word passing through to out, prefixed with the stage label
// and a running count, and passes the word downstream.
func (stream *WordStream) Print(out io.Writer, opts PrintOpts) *WordStream {
	next := NewWordStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(128)

		count := 0
		for w := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
			}
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			w.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- w
		}
		next.Close()
	}()

	return next
}

// AddWordOpts specifies options for WordStream.AddTo
type AddWordOpts struct {

	// AutoCloseTarget closes the target set when the input stream closes.
	AutoCloseTarget bool
}

// AddTo forwards only words newly added to the target set, dropping words
// whose class the target has already seen.
func (stream *WordStream) AddTo(target WordAdder, opts AddWordOpts) *WordStream {
	next := NewWordStream()

	go func() {
		for w := range stream.Outlet {
			if target.TryAddWord(w) {
				next.Outlet <- w
			}
		}
		if opts.AutoCloseTarget {
			switch set := target.(type) {
			case interface{ Close() }:
				set.Close()
			case io.Closer:
				set.Close()
			}
		}
		next.Close()
	}()

	return next
}

// SelectFunc forwards only words the given predicate selects.
func (stream *WordStream) SelectFunc(selects func(w Word) bool) *WordStream {
	next := NewWordStream()

	go func() {
		for w := range stream.Outlet {
			if selects(w) {
				next.Outlet <- w
			}
		}
		next.Close()
	}()

	return next
}
