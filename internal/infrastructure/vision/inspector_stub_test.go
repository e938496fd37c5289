//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVInspectorStub(t *testing.T) {
	_, _, err := NewGoCVInspector(DefaultParams()).Inspect(context.Background(), nil, nil, r1Manifest())
	require.ErrorIs(t, err, ErrGoCVDisabled)
}
