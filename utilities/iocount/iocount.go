// Package iocount wraps streams to count the bytes that pass through them.
package iocount

import "io"

// Writer counts the number of bytes successfully written to the underlying
// writer.
type Writer struct {
	base  io.Writer // The writer to write to.
	count int64     // The number of bytes written.
	err   error     // The first error returned by the writer.
}

func NewWriter(base io.Writer) *Writer {
	return &Writer{base: base}
}

// Write writes to the underlying writer and increments the count.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.base.Write(p)
	w.count += int64(n)
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

// Count returns the number of bytes written so far.
func (w *Writer) Count() int64 {
	return w.count
}

// Err returns the first error the underlying writer returned, if any. This
// tells apart failures of the destination from failures of whatever is
// producing the data.
func (w *Writer) Err() error {
	return w.err
}
