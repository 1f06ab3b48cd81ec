package osmpbf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"google.golang.org/protobuf/encoding/protowire"
)

// Test fixtures are assembled with protowire so the hand-rolled decoder is
// checked against an independent encoder rather than against itself.

func packedSints(vals []int64) []byte {
	var b []byte
	for _, v := range vals {
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v))
	}
	return b
}

func packedUints(vals []uint64) []byte {
	var b []byte
	for _, v := range vals {
		b = protowire.AppendVarint(b, v)
	}
	return b
}

func encodeStringTable(strs []string) []byte {
	var b []byte
	for _, s := range strs {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte(s))
	}
	return b
}

type denseFixture struct {
	ids      []int64 // deltas
	lats     []int64 // deltas
	lons     []int64 // deltas
	keysVals []uint64
}

func encodeDense(d denseFixture) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, packedSints(d.ids))
	b = protowire.AppendTag(b, 8, protowire.BytesType)
	b = protowire.AppendBytes(b, packedSints(d.lats))
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, packedSints(d.lons))
	if len(d.keysVals) > 0 {
		b = protowire.AppendTag(b, 10, protowire.BytesType)
		b = protowire.AppendBytes(b, packedUints(d.keysVals))
	}
	return b
}

type wayFixture struct {
	id   int64
	keys []uint64
	vals []uint64
	refs []int64 // deltas
}

func encodeWayMsg(w wayFixture) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(w.id))
	if len(w.keys) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, packedUints(w.keys))
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, packedUints(w.vals))
	}
	b = protowire.AppendTag(b, 8, protowire.BytesType)
	b = protowire.AppendBytes(b, packedSints(w.refs))
	return b
}

type blockFixture struct {
	strings     []string
	dense       *denseFixture
	ways        []wayFixture
	granularity int64 // 0 means leave the field absent
}

func encodePrimitiveBlock(f blockFixture) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeStringTable(f.strings))

	var group []byte
	if f.dense != nil {
		group = protowire.AppendTag(group, 2, protowire.BytesType)
		group = protowire.AppendBytes(group, encodeDense(*f.dense))
	}
	for _, w := range f.ways {
		group = protowire.AppendTag(group, 3, protowire.BytesType)
		group = protowire.AppendBytes(group, encodeWayMsg(w))
	}
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, group)

	if f.granularity != 0 {
		b = protowire.AppendTag(b, 17, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.granularity))
	}
	return b
}

// encodeBlobFrame wraps a payload as length-prefix + BlobHeader + Blob,
// the on-disk framing of one complete blob.
func encodeBlobFrame(t *testing.T, blobType string, payload []byte, compress bool) []byte {
	t.Helper()

	var blob []byte
	if compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			t.Fatalf("zlib write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("zlib close: %v", err)
		}
		blob = protowire.AppendTag(blob, 2, protowire.VarintType)
		blob = protowire.AppendVarint(blob, uint64(len(payload)))
		blob = protowire.AppendTag(blob, 3, protowire.BytesType)
		blob = protowire.AppendBytes(blob, buf.Bytes())
	} else {
		blob = protowire.AppendTag(blob, 1, protowire.BytesType)
		blob = protowire.AppendBytes(blob, payload)
	}

	var hdr []byte
	hdr = protowire.AppendTag(hdr, 1, protowire.BytesType)
	hdr = protowire.AppendBytes(hdr, []byte(blobType))
	hdr = protowire.AppendTag(hdr, 3, protowire.VarintType)
	hdr = protowire.AppendVarint(hdr, uint64(len(blob)))

	frame := make([]byte, 4, 4+len(hdr)+len(blob))
	binary.BigEndian.PutUint32(frame, uint32(len(hdr)))
	frame = append(frame, hdr...)
	frame = append(frame, blob...)
	return frame
}

// wholeWorld accepts every coordinate.
var wholeWorld = BoundingBox{North: 90, South: -90, East: 180, West: -180}
