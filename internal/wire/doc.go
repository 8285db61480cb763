// Package wire implements the length-prefixed binary protocol spoken between
// clients and the pipeline.
//
// # Frames
//
// All integers are 4-byte big-endian signed values.
//
//	request: [V][E] E x ([u][v]) [nameLen][name]
//	result:  [len][payload]
//
// A request names one operation. The reserved names "all" and "quit" are
// interpreted by the connection handler. An "all" request is answered with
// four result frames, back to back, in the order the operations finish; the
// frames carry no operation tag.
//
// # Errors
//
// ReadRequest distinguishes three failure classes:
//
//   - ErrConnectionClosed: the peer went away, cleanly or mid-frame.
//   - *FramingError: a length field cannot be trusted (negative name length,
//     oversized name or edge count). Nothing further can be read safely.
//   - *BadRequestError, from Request.Validate: the frame was read in full but
//     its contents are invalid. The stream is still in sync.
//
// Only the last class is reported back to the client.
package wire
