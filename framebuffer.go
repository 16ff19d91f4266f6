package aom

import (
	"fmt"

	"github.com/deepteams/aom/internal/bufpool"
)

// FrameBuffer is one block of frame storage the decoder borrows from its
// allocator.
type FrameBuffer struct {
	// Data is the allocated storage. The get callback must set it to a
	// slice of at least the requested size; the decoder writes only
	// within that prefix.
	Data []byte

	// Priv is owned by the allocator. The decoder carries it alongside
	// Data for the buffer's whole lifetime and never inspects it.
	Priv any
}

// GetFrameBufferFunc supplies a buffer of at least minSize bytes by filling
// in fb. Returning an error, or leaving fb.Data nil or shorter than
// minSize, fails the decode that needed the buffer with ErrMemory.
type GetFrameBufferFunc func(minSize int, fb *FrameBuffer) error

// ReleaseFrameBufferFunc takes a buffer back once the decoder holds no more
// references to it. The decoder ignores its error.
type ReleaseFrameBufferFunc func(fb *FrameBuffer) error

// frameBufferRef tracks one borrowed buffer and its pin count: reference
// slots plus unreleased Frames.
type frameBufferRef struct {
	fb   FrameBuffer
	pins int
}

// bufferPool drives the get/release callbacks and bounds the number of
// buffers borrowed at once.
type bufferPool struct {
	get     GetFrameBufferFunc
	release ReleaseFrameBufferFunc
	refs    []*frameBufferRef
}

// acquire borrows a buffer of at least minSize bytes. The returned ref
// carries one pin, owned by the caller. A failed or short get callback is
// reported as ErrMemory without releasing whatever the callback set.
func (p *bufferPool) acquire(minSize int) (*frameBufferRef, error) {
	var ref *frameBufferRef
	for _, r := range p.refs {
		if r.pins == 0 {
			ref = r
			break
		}
	}
	if ref == nil {
		if len(p.refs) >= frameSlots {
			return nil, fmt.Errorf("%w: all %d frame slots in use", ErrMemory, frameSlots)
		}
		ref = &frameBufferRef{}
		p.refs = append(p.refs, ref)
	}

	ref.fb = FrameBuffer{}
	if err := p.get(minSize, &ref.fb); err != nil {
		return nil, fmt.Errorf("%w: get frame buffer: %w", ErrMemory, err)
	}
	if ref.fb.Data == nil || len(ref.fb.Data) < minSize {
		return nil, fmt.Errorf("%w: get frame buffer returned %d bytes, need %d",
			ErrMemory, len(ref.fb.Data), minSize)
	}
	ref.pins = 1
	return ref, nil
}

// unpin drops one pin; the last drop hands the buffer back through the
// release callback.
func (p *bufferPool) unpin(ref *frameBufferRef) {
	ref.pins--
	if ref.pins == 0 {
		p.release(&ref.fb)
		ref.fb = FrameBuffer{}
	}
}

// internalGet and internalRelease are the default allocator, backed by the
// shared byte pool. They satisfy the same contract as external callbacks.
func internalGet(minSize int, fb *FrameBuffer) error {
	fb.Data = bufpool.Get(minSize)
	return nil
}

func internalRelease(fb *FrameBuffer) error {
	bufpool.Put(fb.Data)
	return nil
}
