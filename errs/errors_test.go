package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFailureFamily(t *testing.T) {
	require := require.New(t)

	require.ErrorIs(ErrSinkRejected, ErrWriteFailure)
	require.ErrorIs(ErrSinkClosed, ErrWriteFailure)

	// Further wrapping preserves family membership.
	wrapped := fmt.Errorf("delivering token 7: %w", ErrSinkClosed)
	require.ErrorIs(wrapped, ErrSinkClosed)
	require.ErrorIs(wrapped, ErrWriteFailure)
}

func TestFamiliesAreDisjoint(t *testing.T) {
	require := require.New(t)

	require.NotErrorIs(ErrSinkRejected, ErrSourceFailure)
	require.NotErrorIs(ErrSourceFailure, ErrWriteFailure)

	decodeErr := errors.New("bad byte")
	sourceErr := fmt.Errorf("%w: %w", ErrSourceFailure, decodeErr)
	require.ErrorIs(sourceErr, ErrSourceFailure)
	require.ErrorIs(sourceErr, decodeErr)
	require.NotErrorIs(sourceErr, ErrWriteFailure)
}

func TestSentinelsAreDistinct(t *testing.T) {
	require := require.New(t)

	sentinels := []error{
		ErrScopeEnded, ErrScopeMisuse, ErrInvalidLength, ErrValueOutOfRange,
		ErrNilValue, ErrInvalidMagicNumber, ErrUnsupportedVersion,
		ErrInvalidHeaderSize, ErrInvalidCompression, ErrChecksumMismatch,
		ErrInvalidTokenKind, ErrTruncatedPayload, ErrWriterFinished,
		ErrUnbalancedEnd, ErrUnclosedScope, ErrDanglingHeader, ErrUnexpectedToken,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.NotErrorIs(a, b)
		}
	}
}
