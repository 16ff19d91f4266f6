package aom

import (
	"fmt"
	"io"

	"github.com/deepteams/aom/internal/container"
)

// StreamInfo summarizes an IVF stream header.
type StreamInfo struct {
	Codec       string // codec fourcc, e.g. "AV01"
	Width       int
	Height      int
	FrameCount  int // count recorded in the header; informational only
	TimebaseNum uint32
	TimebaseDen uint32
}

// ReadStreamInfo reads just the container header from r, without preparing
// a decoder.
func ReadStreamInfo(r io.Reader) (*StreamInfo, error) {
	hdr, err := container.ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	info := streamInfo(hdr)
	return &info, nil
}

func streamInfo(hdr container.Header) StreamInfo {
	return StreamInfo{
		Codec:       hdr.Codec(),
		Width:       int(hdr.Width),
		Height:      int(hdr.Height),
		FrameCount:  int(hdr.FrameCount),
		TimebaseNum: hdr.Num,
		TimebaseDen: hdr.Den,
	}
}

// StreamDecoder reads an IVF stream and decodes its frames in order.
//
// A StreamDecoder is not safe for concurrent use.
type StreamDecoder struct {
	r    *container.Reader
	dec  *Decoder
	info StreamInfo
}

// NewStreamDecoder consumes the stream header from r and prepares a decoder
// for the stream's frame dimensions.
func NewStreamDecoder(r io.Reader) (*StreamDecoder, error) {
	cr, err := container.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	hdr := cr.Header()
	if hdr.Width == 0 || hdr.Height == 0 ||
		int(hdr.Width) > MaxDimension || int(hdr.Height) > MaxDimension {
		return nil, fmt.Errorf("%w: stream header frame dimensions %dx%d out of range",
			ErrCorrupt, hdr.Width, hdr.Height)
	}
	dec, err := NewDecoder(&DecoderConfig{Width: int(hdr.Width), Height: int(hdr.Height)})
	if err != nil {
		return nil, err
	}
	return &StreamDecoder{r: cr, dec: dec, info: streamInfo(hdr)}, nil
}

// Info returns the stream header summary.
func (s *StreamDecoder) Info() StreamInfo {
	return s.info
}

// SetFrameBufferFunctions forwards the callback pair to the underlying
// decoder. It must be called before the first NextFrame.
func (s *StreamDecoder) SetFrameBufferFunctions(get GetFrameBufferFunc, release ReleaseFrameBufferFunc) error {
	return s.dec.SetFrameBufferFunctions(get, release)
}

// NextFrame reads and decodes the next frame, stamping its timestamp from
// the container. It returns io.EOF once the stream is exhausted.
func (s *StreamDecoder) NextFrame() (*Frame, error) {
	payload, pts, err := s.r.NextFrame()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	frame, err := s.dec.DecodeFrame(payload)
	if err != nil {
		return nil, err
	}
	frame.PTS = pts
	return frame, nil
}

// Close closes the underlying decoder.
func (s *StreamDecoder) Close() error {
	return s.dec.Close()
}
