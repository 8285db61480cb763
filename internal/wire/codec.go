package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dreamware/graphpipe/internal/graph"
)

const (
	// OpAll requests the fan-out to every operation in algorithm.FanOut.
	OpAll = "all"

	// OpQuit asks the server to close the connection without a response.
	OpQuit = "quit"

	// ErrorPrefix starts every payload that reports a rejected request.
	ErrorPrefix = "Error: "
)

// edgeChunk caps the initial edge allocation for one request.
const edgeChunk = 4096

// Limits bounds what a single request may allocate.
type Limits struct {
	MaxVertices   int
	MaxEdges      int
	MaxNameLength int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxVertices:   4096,
		MaxEdges:      1 << 20,
		MaxNameLength: 64,
	}
}

// WithDefaults returns l with every non-positive field replaced by its
// DefaultLimits value.
func (l Limits) WithDefaults() Limits {
	def := DefaultLimits()
	if l.MaxVertices <= 0 {
		l.MaxVertices = def.MaxVertices
	}
	if l.MaxEdges <= 0 {
		l.MaxEdges = def.MaxEdges
	}
	if l.MaxNameLength <= 0 {
		l.MaxNameLength = def.MaxNameLength
	}
	return l
}

// Request is one decoded request frame. EdgeCount is the count declared on
// the wire; it differs from len(Edges) only when it is negative.
type Request struct {
	Operation string
	Edges     []graph.Edge
	Vertices  int
	EdgeCount int
}

// ReadRequest decodes one request from r. The returned error is
// ErrConnectionClosed, a *FramingError, or an I/O error from r.
func ReadRequest(r io.Reader, lim Limits) (*Request, error) {
	v, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	e, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if int(e) > lim.MaxEdges {
		return nil, &FramingError{Field: "edges", Value: e, Reason: fmt.Sprintf("exceeds limit %d", lim.MaxEdges)}
	}

	req := &Request{Vertices: int(v), EdgeCount: int(e)}
	if e > 0 {
		// Grow with the bytes actually received, not the declared count.
		req.Edges = make([]graph.Edge, 0, min(int(e), edgeChunk))
		var buf [8]byte
		for i := int32(0); i < e; i++ {
			if err := readFull(r, buf[:]); err != nil {
				return nil, err
			}
			req.Edges = append(req.Edges, graph.Edge{
				U: int(int32(binary.BigEndian.Uint32(buf[0:4]))),
				V: int(int32(binary.BigEndian.Uint32(buf[4:8]))),
			})
		}
	}

	nameLen, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if nameLen < 0 {
		return nil, &FramingError{Field: "nameLen", Value: nameLen, Reason: "negative length"}
	}
	if int(nameLen) > lim.MaxNameLength {
		return nil, &FramingError{Field: "nameLen", Value: nameLen, Reason: fmt.Sprintf("exceeds limit %d", lim.MaxNameLength)}
	}
	name := make([]byte, nameLen)
	if err := readFull(r, name); err != nil {
		return nil, err
	}
	req.Operation = string(name)
	return req, nil
}

// Validate checks the request contents against lim and builds its graph.
// Failures are *BadRequestError. The operation name is not checked here.
func (req *Request) Validate(lim Limits) (*graph.Graph, error) {
	switch {
	case req.Vertices < 0:
		return nil, &BadRequestError{Reason: fmt.Sprintf("vertex count %d is negative", req.Vertices)}
	case req.Vertices > lim.MaxVertices:
		return nil, &BadRequestError{Reason: fmt.Sprintf("vertex count %d exceeds limit %d", req.Vertices, lim.MaxVertices)}
	case req.EdgeCount < 0:
		return nil, &BadRequestError{Reason: fmt.Sprintf("edge count %d is negative", req.EdgeCount)}
	case !utf8.ValidString(req.Operation):
		return nil, &BadRequestError{Reason: "operation name is not valid UTF-8"}
	}
	g, err := graph.FromEdges(req.Vertices, req.Edges)
	if err != nil {
		return nil, &BadRequestError{Reason: "invalid edge", Err: err}
	}
	return g, nil
}

// WriteRequest encodes req onto w as a single write.
func WriteRequest(w io.Writer, req *Request) error {
	buf := make([]byte, 0, 12+8*len(req.Edges)+len(req.Operation))
	buf = binary.BigEndian.AppendUint32(buf, uint32(int32(req.Vertices)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(int32(len(req.Edges))))
	for _, e := range req.Edges {
		buf = binary.BigEndian.AppendUint32(buf, uint32(int32(e.U)))
		buf = binary.BigEndian.AppendUint32(buf, uint32(int32(e.V)))
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(int32(len(req.Operation))))
	buf = append(buf, req.Operation...)
	_, err := w.Write(buf)
	return err
}

// EncodeResult frames a result payload.
func EncodeResult(payload []byte) []byte {
	buf := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	return append(buf, payload...)
}

// WriteResult writes one framed result with a single Write call so frames
// from one writer never interleave.
func WriteResult(w io.Writer, payload []byte) error {
	_, err := w.Write(EncodeResult(payload))
	return err
}

// ReadResult reads one result frame. Payloads larger than limit (when limit > 0)
// are a *FramingError.
func ReadResult(r io.Reader, limit int) (string, error) {
	n, err := readInt32(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", &FramingError{Field: "len", Value: n, Reason: "negative length"}
	}
	if limit > 0 && int(n) > limit {
		return "", &FramingError{Field: "len", Value: n, Reason: fmt.Sprintf("exceeds limit %d", limit)}
	}
	payload := make([]byte, n)
	if err := readFull(r, payload); err != nil {
		return "", err
	}
	return string(payload), nil
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// readFull maps both clean EOF and mid-frame EOF to ErrConnectionClosed.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrConnectionClosed
		}
		return err
	}
	return nil
}
