package store

import (
	"encoding/binary"
	"encoding/json"
	"hash/crc32"
	"time"
)

// Record is a resolved user-directory entry.
type Record struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Region      string    `json:"region"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Value encoding: varint headerLen | header | payload | crc32c(header|payload).
// Header is 8 bytes: big-endian CreatedAt milliseconds. Payload is compact
// JSON carrying the string fields.

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

type recordPayload struct {
	DisplayName string `json:"displayName"`
	Region      string `json:"region"`
}

const headerLen = 8

// EncodeValue frames a record for storage.
func EncodeValue(rec Record) ([]byte, error) {
	payload, err := json.Marshal(recordPayload{
		DisplayName: rec.DisplayName,
		Region:      rec.Region,
	})
	if err != nil {
		return nil, err
	}

	var header [headerLen]byte
	binary.BigEndian.PutUint64(header[:], uint64(rec.CreatedAt.UnixMilli()))

	out := make([]byte, 0, 10+headerLen+len(payload)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(headerLen))
	out = append(out, tmp[:n]...)
	out = append(out, header[:]...)
	out = append(out, payload...)

	crc := crc32.Update(0, castagnoli, header[:])
	crc = crc32.Update(crc, castagnoli, payload)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out, nil
}

// DecodeValue parses a stored frame back into a record for id. It reports
// false for any short, corrupt, or mis-sized frame.
func DecodeValue(id int64, b []byte) (Record, bool) {
	if len(b) < 1+headerLen+4 {
		return Record{}, false
	}
	hlen, n := binary.Uvarint(b)
	if n <= 0 || hlen != headerLen {
		return Record{}, false
	}
	if n+int(hlen)+4 > len(b) {
		return Record{}, false
	}
	header := b[n : n+int(hlen)]
	payload := b[n+int(hlen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, payload)
	if crc != expect {
		return Record{}, false
	}

	var p recordPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Record{}, false
	}
	ms := int64(binary.BigEndian.Uint64(header))
	return Record{
		ID:          id,
		DisplayName: p.DisplayName,
		Region:      p.Region,
		CreatedAt:   time.UnixMilli(ms).UTC(),
	}, true
}
