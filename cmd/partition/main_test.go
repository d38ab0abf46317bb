package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"math"
	"os"
	"testing"

	"github.com/ar90n/partition/predicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func encode[T any](t *testing.T, values ...T) *bytes.Buffer {
	var buf bytes.Buffer
	for _, v := range values {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	return &buf
}

func Test_RunUint32(t *testing.T) {
	in := encode(t, uint32(0), 1, 2, 3, 4, 5, 6)
	var out bytes.Buffer
	require.NoError(t, run[uint32]("even", false, in, &out))

	var mid uint32
	require.NoError(t, binary.Read(&out, binary.LittleEndian, &mid))
	assert.Equal(t, uint32(4), mid)

	values := make([]uint32, 7)
	require.NoError(t, binary.Read(&out, binary.LittleEndian, values))
	assert.ElementsMatch(t, []uint32{0, 2, 4, 6}, values[:mid])
	assert.ElementsMatch(t, []uint32{1, 3, 5}, values[mid:])
	assert.Zero(t, out.Len())
}

func Test_RunIndexOnly(t *testing.T) {
	in := encode(t, float32(0.5), 2, -1, 3)
	var out bytes.Buffer
	require.NoError(t, run[float32]("lt:1", true, in, &out))

	var mid uint32
	require.NoError(t, binary.Read(&out, binary.LittleEndian, &mid))
	assert.Equal(t, uint32(2), mid)
	assert.Zero(t, out.Len())
}

func Test_RunEmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run[int64]("odd", false, &bytes.Buffer{}, &out))
	assert.Equal(t, []byte{0, 0, 0, 0}, out.Bytes())
}

func Test_RunErrors(t *testing.T) {
	var out bytes.Buffer
	err := run[uint32]("prime", false, &bytes.Buffer{}, &out)
	assert.ErrorIs(t, err, predicate.ErrUnknownPredicate)

	truncated := bytes.NewBuffer([]byte{1, 0, 0, 0, 2, 0})
	err = run[uint32]("even", false, truncated, &out)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func Test_EncodeIndex(t *testing.T) {
	index, err := encodeIndex(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), index)

	_, err = encodeIndex(math.MaxUint32 + 1)
	assert.Error(t, err)
	_, err = encodeIndex(-1)
	assert.Error(t, err)
}

func Test_App(t *testing.T) {
	app := newApp()
	assert.NoError(t, app.Run([]string{"partition", "check", "--trials", "200", "--max-len", "16", "--workers", "2"}))
	assert.Error(t, app.Run([]string{"partition", "check", "--predicate", "prime"}))
	assert.Error(t, app.Run([]string{"partition", "check", "--max-len", "-1"}))
	assert.Error(t, app.Run([]string{"partition", "check", "--max-len", "9223372036854775807"}))
	assert.Error(t, app.Run([]string{"partition", "run", "--dtype", "complex128"}))
}
