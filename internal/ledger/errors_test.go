package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKind(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			require.Equal(t, k.name, ErrorKind(k.err))
			require.Equal(t, k.name, ErrorKind(fmt.Errorf("wrapped: %w", k.err)))
			require.Equal(t, k.err, ErrorFromKind(k.name))
		})
	}
	require.Empty(t, ErrorKind(fmt.Errorf("other")))
	require.Empty(t, ErrorKind(nil))
	require.Nil(t, ErrorFromKind("Nope"))
}
