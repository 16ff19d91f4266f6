// Package aom provides block transform kernels and a frame decoding session
// built around externally allocated frame buffers.
//
// The dsp subpackage implements the Hadamard transforms (8x8, 16x16, 32x32)
// and the SATD cost metric used in motion search, with CPU-level kernel
// dispatch.
//
// The root package drives decoding of IVF-framed streams:
//
//	sd, err := aom.NewStreamDecoder(file)
//	if err != nil {
//		return err
//	}
//	defer sd.Close()
//	for {
//		frame, err := sd.NextFrame()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		// use frame.Data
//		frame.Release()
//	}
//
// By default frames are stored in internally pooled buffers. A caller that
// wants to own frame storage registers a callback pair with
// SetFrameBufferFunctions; the decoder then borrows all frame memory from
// the caller and hands each buffer back once neither a reference slot nor
// an unreleased Frame uses it.
package aom
