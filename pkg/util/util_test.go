package util

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := io.ErrUnexpectedEOF
	err := WrapErrorf(orig, ErrResource, "cannot read %s", "file")

	assert.Equal(t, "cannot read file: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, ErrResource))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrBadParamInput))
	assert.Equal(t, ErrResource, CodeOf(err))

	bare := WrapErrorf(nil, ErrBadParamInput, "bad seedcov")
	assert.Equal(t, "bad seedcov", bare.Error())
	assert.Nil(t, CodeOf(io.EOF))
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: EXIT_OK},
		{name: "bad input", err: WrapErrorf(nil, ErrBadParamInput, "x"), want: EXIT_BAD_PARAM},
		{name: "resource", err: WrapErrorf(os.ErrPermission, ErrResource, "x"), want: EXIT_RESOURCE},
		{name: "anything else", err: errors.New("boom"), want: EXIT_INTERNAL},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, 102.0, RoundHalfEven(102.4))
	assert.Equal(t, 2.0, RoundHalfEven(2.5))
	assert.Equal(t, 4.0, RoundHalfEven(3.5))
	assert.Equal(t, 0.125, RoundFloat(0.12500001, 3))
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("first\r\nsecond"))
	line, err := ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "first", line)
	line, err = ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "second", line)
	_, err = ReadLine(br)
	assert.ErrorIs(t, err, io.EOF)

	broken := errors.New("disk gone")
	br = bufio.NewReader(io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(broken)))
	line, err = ReadLine(br)
	assert.ErrorIs(t, err, broken)
	assert.Empty(t, line)
}

func TestAssertPanic(t *testing.T) {
	assert.NotPanics(t, func() { AssertPanic(true, "fine") })
	assert.PanicsWithValue(t, "broken", func() { AssertPanic(false, "broken") })
}

func TestReadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("OUTPUT_DIR: runs\nSWEEP_WORKERS: 3\n"), 0o644))
	t.Setenv("COVSWN_LOG_LEVEL", "debug")

	require.NoError(t, ReadConfig(dir))
	assert.Equal(t, "runs", viper.GetString(OUTPUT_DIR))
	assert.Equal(t, 3, viper.GetInt(SWEEP_WORKERS))
	assert.Equal(t, "debug", viper.GetString(LOG_LEVEL))
	assert.Equal(t, "tubs.txt", viper.GetString(DIAGNOSTICS_FILE))
	assert.False(t, viper.GetBool(COMPRESS_OUTPUT))
}

func TestReadConfigWithoutFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, ReadConfig(t.TempDir()))
	assert.Equal(t, "OUT", viper.GetString(OUTPUT_DIR))
	assert.True(t, viper.GetBool(PLOT_SVG))
}
