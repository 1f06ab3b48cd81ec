package osmpbf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// blobHeader mirrors the OSMPBF BlobHeader fields we read.
type blobHeader struct {
	blobType string
	datasize int
}

func parseBlobHeader(data []byte) (*blobHeader, error) {
	r := newWireReader(data)
	h := &blobHeader{datasize: -1}
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case 1: // type
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			h.blobType = string(b)
		case 3: // datasize
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			h.datasize = int(v)
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	if h.blobType == "" || h.datasize < 0 {
		return nil, ErrMalformedHeader
	}
	return h, nil
}

// blob mirrors the OSMPBF Blob fields we support. LZMA and the obsolete
// bzip2 encodings are rejected at inflate time.
type blob struct {
	raw      []byte
	rawSize  int
	zlibData []byte
}

func parseBlob(data []byte) (*blob, error) {
	r := newWireReader(data)
	b := &blob{rawSize: -1}
	for r.remaining() > 0 {
		field, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case 1: // raw
			if b.raw, err = r.readBytes(); err != nil {
				return nil, err
			}
		case 2: // raw_size
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			b.rawSize = int(v)
		case 3: // zlib_data
			if b.zlibData, err = r.readBytes(); err != nil {
				return nil, err
			}
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// inflate returns the uncompressed payload of the blob.
func (b *blob) inflate() ([]byte, error) {
	if b.raw != nil {
		return b.raw, nil
	}
	if b.zlibData == nil {
		return nil, ErrUnsupportedCompression
	}

	data := b.zlibData
	// Strip the optional 2-byte zlib header (CMF/FLG) and inflate the bare
	// deflate stream; the adler32 trailer is left unread.
	if len(data) >= 2 && data[0]&0x0f == 8 && (uint32(data[0])<<8|uint32(data[1]))%31 == 0 {
		data = data[2:]
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out := bytes.NewBuffer(make([]byte, 0, inflateBufferSize(b.rawSize, len(data))))
	if _, err := io.Copy(out, fr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if out.Len() == 0 {
		return nil, ErrDecompress
	}
	return out.Bytes(), nil
}

// inflateBufferSize sizes the output buffer from the blob's declared raw
// size; the buffer still grows if the declaration was too small.
func inflateBufferSize(rawSize, compressed int) int {
	if rawSize > 0 {
		return rawSize
	}
	return compressed * 2
}
