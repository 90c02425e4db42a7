package emit

import (
	"errors"
	"fmt"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/sink"
)

// Source is the decoder side of a transcode: any component capable of
// walking a document and invoking emitter callbacks in document order.
// Concrete drivers live in the source package.
type Source interface {
	// Emit walks the source document once, invoking e's callbacks in
	// document order. The emitter, and any token it produced with borrowed
	// payloads, must not be retained after Emit returns.
	Emit(e *Emitter) error
}

// Transcode wires src to snk through a fresh Emitter and runs the walk to
// completion. It buffers nothing, retries nothing and transforms nothing;
// the first failure from either side aborts the whole operation.
//
// On failure the token stream is incomplete and the caller cannot assume
// how many tokens were delivered. Write failures (sink rejected or closed)
// match errs.ErrWriteFailure; decoder failures are wrapped to match
// errs.ErrSourceFailure. A caller wanting retry-with-backoff restarts the
// whole transcode with a re-creatable source; there is no resume.
func Transcode(src Source, snk sink.Sink, opts ...Option) error {
	e, err := New(snk, opts...)
	if err != nil {
		return err
	}

	if err := src.Emit(e); err != nil {
		if errors.Is(err, errs.ErrWriteFailure) {
			return err
		}

		return fmt.Errorf("%w: %w", errs.ErrSourceFailure, err)
	}

	return nil
}
