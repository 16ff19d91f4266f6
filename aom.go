package aom

import "errors"

// Errors returned by the decoder. ErrMemory is the allocation class: a
// failed get callback, a nil or undersized buffer, and slot exhaustion all
// wrap it, keeping allocation failures distinguishable from bitstream
// errors via errors.Is.
var (
	ErrMemory        = errors.New("aom: insufficient frame buffers")
	ErrInvalidParam  = errors.New("aom: invalid parameter")
	ErrDecodeStarted = errors.New("aom: decoding already started")
	ErrCorrupt       = errors.New("aom: corrupt bitstream")
)

// MaxDimension is the largest frame width or height the decoder accepts,
// matching the 16384-pixel cap of the highest defined operating levels.
const MaxDimension = 16384

// RefFrames is the number of reference frame slots the decoder maintains.
// A frame buffer stays borrowed while any slot references it.
const RefFrames = 8

// workBuffers is the number of frames in flight during a decode call.
const workBuffers = 1

// MinFrameBuffers is the smallest number of buffers an external allocator
// must be able to hand out simultaneously: one per reference slot plus the
// frame being decoded. With this many, any stream decodes to completion
// provided the consumer releases frames as it goes.
const MinFrameBuffers = RefFrames + workBuffers

// frameSlots caps the decoder's buffer bookkeeping entries: the reference
// slots plus headroom for frames the consumer has not released yet.
const frameSlots = RefFrames + 7

const (
	frameAlign  = 8  // frame dimensions round up to this
	frameBorder = 32 // pixels of border on every side
)

func alignUp(v, a int) int {
	return (v + a - 1) &^ (a - 1)
}

// FrameBufferSize returns the byte size the decoder requests for one frame
// buffer at the given dimensions: the aligned, bordered luma plane plus
// half that again for 4:2:0 chroma. Non-positive dimensions yield 0.
func FrameBufferSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	stride := alignUp(width, frameAlign) + 2*frameBorder
	rows := alignUp(height, frameAlign) + 2*frameBorder
	luma := stride * rows
	return luma + luma/2
}
