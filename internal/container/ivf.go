// Package container reads and writes the IVF container format: a fixed
// 32-byte file header followed by length-prefixed frames, all little-endian.
// IVF is the conventional on-disk framing for raw AV1 and VP9 bitstreams.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Layout sizes.
const (
	HeaderSize      = 32 // fixed IVF file header
	FrameHeaderSize = 12 // per-frame size prefix + timestamp
)

// MaxFrameSize is the largest payload a frame header may announce. Anything
// above it is rejected before allocation.
const MaxFrameSize = 1 << 28 // 256 MiB

// ivfMagic is the signature at offset 0 of every IVF file.
var ivfMagic = [4]byte{'D', 'K', 'I', 'F'}

// Common errors.
var (
	ErrNotIVF    = errors.New("ivf: missing DKIF signature")
	ErrTruncated = errors.New("ivf: truncated data")
	ErrTooLarge  = errors.New("ivf: frame size exceeds limit")
)

// Header holds the decoded IVF file header. The timebase expresses frame
// timestamps as multiples of Num/Den seconds.
type Header struct {
	FourCC     [4]byte // codec tag, e.g. "AV01"
	Width      uint16
	Height     uint16
	Den        uint32 // timebase denominator (units per second)
	Num        uint32 // timebase numerator
	FrameCount uint32 // count recorded by the muxer; often stale, informational only
}

// Codec returns the codec FourCC as a string.
func (h Header) Codec() string {
	return string(h.FourCC[:])
}

// ReadHeader reads and validates the 32-byte IVF file header from r. The
// signature, version (0) and header size (32) must match; all other fields
// are taken as-is.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: reading file header: %v", ErrTruncated, err)
	}

	if [4]byte(buf[0:4]) != ivfMagic {
		return Header{}, ErrNotIVF
	}
	version := binary.LittleEndian.Uint16(buf[4:6])
	headerSize := binary.LittleEndian.Uint16(buf[6:8])
	if version != 0 || headerSize != HeaderSize {
		return Header{}, ErrNotIVF
	}

	h := Header{
		Width:      binary.LittleEndian.Uint16(buf[12:14]),
		Height:     binary.LittleEndian.Uint16(buf[14:16]),
		Den:        binary.LittleEndian.Uint32(buf[16:20]),
		Num:        binary.LittleEndian.Uint32(buf[20:24]),
		FrameCount: binary.LittleEndian.Uint32(buf[24:28]),
	}
	copy(h.FourCC[:], buf[8:12])
	return h, nil
}

// Reader iterates over the frames of an IVF stream.
type Reader struct {
	r   io.Reader
	hdr Header
}

// NewReader consumes the file header from r and returns a frame reader.
func NewReader(r io.Reader) (*Reader, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, hdr: hdr}, nil
}

// Header returns the file header consumed by NewReader.
func (r *Reader) Header() Header {
	return r.hdr
}

// NextFrame reads the next frame payload and its timestamp. It returns
// io.EOF once the stream ends cleanly on a frame boundary.
func (r *Reader) NextFrame() ([]byte, uint64, error) {
	var hdr [FrameHeaderSize]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("%w: reading frame header: %v", ErrTruncated, err)
	}

	size := binary.LittleEndian.Uint32(hdr[0:4])
	pts := binary.LittleEndian.Uint64(hdr[4:12])
	if size > MaxFrameSize {
		return nil, 0, ErrTooLarge
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, 0, fmt.Errorf("%w: reading frame payload: %v", ErrTruncated, err)
	}
	return payload, pts, nil
}

// WriteHeader writes the 32-byte IVF file header. The frame count must be
// known up front; w is not required to be seekable.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	copy(buf[0:4], ivfMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], 0)
	binary.LittleEndian.PutUint16(buf[6:8], HeaderSize)
	copy(buf[8:12], h.FourCC[:])
	binary.LittleEndian.PutUint16(buf[12:14], h.Width)
	binary.LittleEndian.PutUint16(buf[14:16], h.Height)
	binary.LittleEndian.PutUint32(buf[16:20], h.Den)
	binary.LittleEndian.PutUint32(buf[20:24], h.Num)
	binary.LittleEndian.PutUint32(buf[24:28], h.FrameCount)

	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("ivf: writing file header: %w", err)
	}
	return nil
}

// WriteFrame writes one frame: the 12-byte frame header followed by the
// payload.
func WriteFrame(w io.Writer, payload []byte, pts uint64) error {
	if len(payload) > MaxFrameSize {
		return ErrTooLarge
	}

	var hdr [FrameHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint64(hdr[4:12], pts)
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("ivf: writing frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("ivf: writing frame payload: %w", err)
	}
	return nil
}
