package osmpbf

// Protobuf wire types.
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

// wireReader is a strict forward-only cursor over a protobuf-encoded
// buffer. It decodes only the wire-format primitives the OSM PBF schema
// needs; field dispatch by tag number is left to the callers.
type wireReader struct {
	buf []byte
	pos int
}

func newWireReader(buf []byte) *wireReader { return &wireReader{buf: buf} }

func (r *wireReader) remaining() int { return len(r.buf) - r.pos }

// readVarint decodes an unsigned little-endian base-128 varint.
func (r *wireReader) readVarint() (uint64, error) {
	var v uint64
	for i := 0; i < 10; i++ {
		if r.pos >= len(r.buf) {
			return 0, ErrTruncated
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarintOverflow
}

// zigzag undoes the protobuf sint encoding.
func zigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// readTag returns the next field number and wire type.
func (r *wireReader) readTag() (int, int, error) {
	v, err := r.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), int(v & 7), nil
}

// readBytes reads a length-delimited field and returns a sub-slice of the
// underlying buffer (no copy).
func (r *wireReader) readBytes() ([]byte, error) {
	n, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	if uint64(r.remaining()) < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// readPackedVarints decodes a packed repeated varint field.
func (r *wireReader) readPackedVarints() ([]uint64, error) {
	sub, err := r.readBytes()
	if err != nil {
		return nil, err
	}
	sr := newWireReader(sub)
	var out []uint64
	for sr.remaining() > 0 {
		v, err := sr.readVarint()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// readPackedSignedVarints decodes a packed repeated sint field.
func (r *wireReader) readPackedSignedVarints() ([]int64, error) {
	raw, err := r.readPackedVarints()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(raw))
	for i, v := range raw {
		out[i] = zigzag(v)
	}
	return out, nil
}

// skip advances past a field whose tag was read but whose content is not
// needed. Unknown fields must be skipped correctly so additions to the
// OSMPBF schema do not break the decoder.
func (r *wireReader) skip(wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := r.readVarint()
		return err
	case wireBytes:
		_, err := r.readBytes()
		return err
	case wireFixed64:
		if r.remaining() < 8 {
			return ErrTruncated
		}
		r.pos += 8
		return nil
	case wireFixed32:
		if r.remaining() < 4 {
			return ErrTruncated
		}
		r.pos += 4
		return nil
	default:
		return ErrWireType
	}
}
