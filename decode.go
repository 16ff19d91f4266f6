package aom

import "fmt"

// DecoderConfig selects the frame geometry of a decode session.
type DecoderConfig struct {
	Width  int // frame width in pixels; required
	Height int // frame height in pixels; required
}

// Decoder decodes a sequence of frame payloads into borrowed frame buffers,
// maintaining RefFrames reference slots. Frame storage comes from the
// internal pool unless SetFrameBufferFunctions installs external callbacks.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	cfg     DecoderConfig
	pool    bufferPool
	slots   [RefFrames]*frameBufferRef
	frames  int
	started bool
	closed  bool
}

// NewDecoder returns a decoder for frames of the configured dimensions.
func NewDecoder(cfg *DecoderConfig) (*Decoder, error) {
	if cfg == nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: decoder config requires positive dimensions", ErrInvalidParam)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d-pixel dimension cap",
			ErrInvalidParam, cfg.Width, cfg.Height, MaxDimension)
	}
	d := &Decoder{cfg: *cfg}
	d.pool.get = internalGet
	d.pool.release = internalRelease
	return d, nil
}

// SetFrameBufferFunctions replaces the decoder's allocator with an external
// callback pair. Both callbacks are required, and the pair must be
// installed before the first DecodeFrame call.
func (d *Decoder) SetFrameBufferFunctions(get GetFrameBufferFunc, release ReleaseFrameBufferFunc) error {
	if get == nil || release == nil {
		return fmt.Errorf("%w: frame buffer callbacks must both be set", ErrInvalidParam)
	}
	if d.started {
		return ErrDecodeStarted
	}
	d.pool.get = get
	d.pool.release = release
	return nil
}

// DecodeFrame decodes one frame payload. The returned Frame pins its buffer
// until Release; decoding further frames does not invalidate it.
//
// The first frame of a session is the keyframe and populates every
// reference slot. Each later frame refreshes one slot in rotation, so a
// long enough stream cycles through the full reference working set.
func (d *Decoder) DecodeFrame(payload []byte) (*Frame, error) {
	if d.closed {
		return nil, fmt.Errorf("%w: decoder is closed", ErrInvalidParam)
	}
	d.started = true

	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty frame payload", ErrCorrupt)
	}
	size := FrameBufferSize(d.cfg.Width, d.cfg.Height)
	if len(payload) > size {
		return nil, fmt.Errorf("%w: frame payload of %d bytes exceeds %d-byte frame area",
			ErrCorrupt, len(payload), size)
	}

	ref, err := d.pool.acquire(size)
	if err != nil {
		return nil, err
	}
	copy(ref.fb.Data, payload)

	keyframe := d.frames == 0
	if keyframe {
		for i := range d.slots {
			d.retire(i)
			d.slots[i] = ref
			ref.pins++
		}
	} else {
		i := (d.frames - 1) % RefFrames
		d.retire(i)
		d.slots[i] = ref
		ref.pins++
	}
	d.frames++

	return &Frame{
		Width:    d.cfg.Width,
		Height:   d.cfg.Height,
		Keyframe: keyframe,
		Data:     ref.fb.Data[:len(payload)],
		dec:      d,
		ref:      ref,
	}, nil
}

// retire drops slot i's pin, releasing the buffer if nothing else holds it.
func (d *Decoder) retire(i int) {
	if d.slots[i] != nil {
		d.pool.unpin(d.slots[i])
		d.slots[i] = nil
	}
}

// Close drops all reference slots, releasing every buffer no unreleased
// Frame still holds. Outstanding Frames stay valid until their own Release.
// Close is idempotent.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	for i := range d.slots {
		d.retire(i)
	}
	return nil
}

// Frame is one decoded frame. Data aliases the borrowed frame buffer and
// stays valid until Release.
type Frame struct {
	Width    int
	Height   int
	Keyframe bool
	PTS      uint64 // presentation timestamp, stamped by the stream layer
	Data     []byte // frame bytes inside the borrowed buffer

	dec      *Decoder
	ref      *frameBufferRef
	released bool
}

// Release drops the frame's pin. The buffer returns to the allocator once
// no reference slot holds it either. Release is idempotent.
func (f *Frame) Release() {
	if f.released {
		return
	}
	f.released = true
	f.dec.pool.unpin(f.ref)
}

// Buffer returns the frame buffer backing this frame. It is valid until
// Release.
func (f *Frame) Buffer() *FrameBuffer {
	return &f.ref.fb
}
