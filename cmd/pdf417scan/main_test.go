package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommandShape(t *testing.T) {
	cmd := newDecodeCmd()
	assert.Equal(t, "decode <scan.json>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("min-width"))
	assert.NotNil(t, cmd.Flags().Lookup("max-width"))
}

func TestDecodeCommandRequiresOneArg(t *testing.T) {
	cmd := newDecodeCmd()
	err := cmd.Args(cmd, nil)
	require.Error(t, err)

	err = cmd.Args(cmd, []string{"scan.json"})
	require.NoError(t, err)
}

func TestScanFileRejectsMismatchedDimensions(t *testing.T) {
	sf := scanFile{Width: 3, Height: 2, Rows: []string{"101"}}
	_, err := sf.toMatrix()
	require.Error(t, err)
}

func TestScanFileToMatrix(t *testing.T) {
	sf := scanFile{Width: 3, Height: 2, Rows: []string{"101", "010"}}
	m, err := sf.toMatrix()
	require.NoError(t, err)
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(1, 0))
	assert.True(t, m.Get(1, 1))
}
