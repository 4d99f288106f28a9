package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every writer. A write succeeds when at least one
// writer took the whole buffer; failures of the others are returned via Errors.
type CombinedWriter struct {
	writers []io.Writer
	errs    error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: append([]io.Writer(nil), writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		ok   bool
		errs error
	)
	for _, w := range cw.writers {
		n, err := w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ok = true
	}

	cw.errs = multierr.Append(cw.errs, errs)
	if !ok {
		return 0, errs
	}
	return len(p), nil
}

// Errors returns every write error collected so far.
func (cw *CombinedWriter) Errors() []error {
	return multierr.Errors(cw.errs)
}
