package stream_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimestream/stream"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	m := stream.NewMemory([]byte("hello world"))
	assert.True(t, m.CanRead())
	assert.True(t, m.CanWrite())
	assert.True(t, m.CanSeek())

	buf := make([]byte, 5)
	n, err := m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	pos, err := stream.Position(m)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)

	_, err = m.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	_, err = m.Write([]byte("there, friend"))
	require.NoError(t, err)
	assert.Equal(t, "hello there, friend", string(m.Bytes()))

	_, err = m.Seek(2, io.SeekEnd)
	require.NoError(t, err)
	_, err = m.Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, "hello there, friend\x00\x00!", string(m.Bytes()))

	require.NoError(t, m.SetLength(5))
	l, err := m.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(5), l)

	require.NoError(t, m.SetLength(7))
	assert.Equal(t, "hello\x00\x00", string(m.Bytes()))

	_, err = m.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, stream.ErrOutOfBounds)

	_, err = m.Seek(0, 42)
	assert.ErrorIs(t, err, stream.ErrInvalidArgument)

	assert.ErrorIs(t, m.SetLength(-1), stream.ErrInvalidArgument)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	m := stream.NewMemory(nil)
	require.NoError(t, m.Close())

	_, err := m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrClosed)
	_, err = m.Write([]byte("x"))
	assert.ErrorIs(t, err, stream.ErrClosed)
	assert.False(t, m.CanRead())
	assert.ErrorIs(t, m.Close(), stream.ErrClosed)
}

func TestMemory_ReadAll(t *testing.T) {
	t.Parallel()

	m := stream.NewMemory([]byte("all of it"))
	b, err := io.ReadAll(m)
	require.NoError(t, err)
	assert.Equal(t, "all of it", string(b))
}
