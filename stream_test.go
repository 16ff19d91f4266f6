package aom

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/aom/internal/container"
)

func TestStreamDecoder(t *testing.T) {
	payloads := [][]byte{
		{0x0a, 0x0b},
		{0x01},
		bytes.Repeat([]byte{0x7f}, 300),
	}
	pts := []uint64{0, 3003, 6006}

	var buf bytes.Buffer
	hdr := container.Header{
		FourCC:     [4]byte{'A', 'V', '0', '1'},
		Width:      176,
		Height:     144,
		Den:        30000,
		Num:        1001,
		FrameCount: uint32(len(payloads)),
	}
	require.NoError(t, container.WriteHeader(&buf, hdr))
	for i, p := range payloads {
		require.NoError(t, container.WriteFrame(&buf, p, pts[i]))
	}

	sd, err := NewStreamDecoder(&buf)
	require.NoError(t, err)
	defer sd.Close()

	info := sd.Info()
	assert.Equal(t, "AV01", info.Codec)
	assert.Equal(t, 176, info.Width)
	assert.Equal(t, 144, info.Height)
	assert.Equal(t, 3, info.FrameCount)
	assert.Equal(t, uint32(1001), info.TimebaseNum)
	assert.Equal(t, uint32(30000), info.TimebaseDen)

	for i, p := range payloads {
		frame, err := sd.NextFrame()
		require.NoError(t, err, "frame %d", i)
		assert.Equal(t, p, frame.Data)
		assert.Equal(t, pts[i], frame.PTS)
		assert.Equal(t, i == 0, frame.Keyframe)
		frame.Release()
	}

	_, err = sd.NextFrame()
	assert.Equal(t, io.EOF, err)
}

func TestNewStreamDecoder_NotIVF(t *testing.T) {
	_, err := NewStreamDecoder(bytes.NewReader(make([]byte, 64)))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, container.ErrNotIVF)
}

func TestNewStreamDecoder_ZeroDimensions(t *testing.T) {
	var buf bytes.Buffer
	hdr := container.Header{FourCC: [4]byte{'A', 'V', '0', '1'}, Width: 0, Height: 144}
	require.NoError(t, container.WriteHeader(&buf, hdr))

	_, err := NewStreamDecoder(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestNewStreamDecoder_HugeDimensions(t *testing.T) {
	var buf bytes.Buffer
	hdr := container.Header{FourCC: [4]byte{'A', 'V', '0', '1'}, Width: 65535, Height: 144}
	require.NoError(t, container.WriteHeader(&buf, hdr))

	_, err := NewStreamDecoder(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStreamDecoder_TruncatedPayload(t *testing.T) {
	data := buildStream(t, 64, 48, 3)
	sd, err := NewStreamDecoder(bytes.NewReader(data[:len(data)-1]))
	require.NoError(t, err)
	defer sd.Close()

	var decodeErr error
	for {
		frame, err := sd.NextFrame()
		if err != nil {
			decodeErr = err
			break
		}
		frame.Release()
	}
	assert.ErrorIs(t, decodeErr, ErrCorrupt)
	assert.ErrorIs(t, decodeErr, container.ErrTruncated)
}

func TestStreamDecoder_SetCallbacksAfterDecode(t *testing.T) {
	list := newBufferList(MinFrameBuffers)
	sd, err := NewStreamDecoder(bytes.NewReader(buildStream(t, 64, 48, 2)))
	require.NoError(t, err)
	defer sd.Close()

	frame, err := sd.NextFrame()
	require.NoError(t, err)
	frame.Release()

	assert.ErrorIs(t, sd.SetFrameBufferFunctions(list.get, list.release), ErrDecodeStarted)
}

func TestReadStreamInfo(t *testing.T) {
	data := buildStream(t, 320, 240, 5)

	info, err := ReadStreamInfo(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "AV01", info.Codec)
	assert.Equal(t, 320, info.Width)
	assert.Equal(t, 240, info.Height)
	assert.Equal(t, 5, info.FrameCount)

	_, err = ReadStreamInfo(bytes.NewReader(data[:10]))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, container.ErrTruncated)
}
