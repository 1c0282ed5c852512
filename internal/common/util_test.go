package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	t.Parallel()

	b := []byte("secret-password")
	WipeByteArray(b)
	for i, v := range b {
		require.Zerof(t, v, "byte %d not wiped", i)
	}
}

func TestWipeByteArray_EmptyAndNil(t *testing.T) {
	t.Parallel()

	WipeByteArray(nil)
	WipeByteArray([]byte{})
}
