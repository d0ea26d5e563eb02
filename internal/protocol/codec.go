package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
)

// MaxFrameSize is the largest accepted body length, in bytes. Frames
// claiming a larger length fail decode with a Transmission error.
const MaxFrameSize = 4 << 20 // 4 MiB

// WriteMessage serializes msg to JSON, frames it with a 4-byte big-endian
// length prefix, and writes it to w.
func WriteMessage(w io.Writer, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return apperr.Serializer(err)
	}
	if len(body) > MaxFrameSize {
		return apperr.Wrap(apperr.KindTransmission, fmt.Errorf("message of %d bytes exceeds frame limit %d", len(body), MaxFrameSize))
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))

	if _, err := w.Write(header[:]); err != nil {
		return apperr.Transmission(err)
	}
	if _, err := w.Write(body); err != nil {
		return apperr.Transmission(err)
	}
	return nil
}

// ReadMessage reads one length-prefixed frame from r and parses its JSON
// body into a Message. Short reads, EOF mid-frame, and oversized length
// prefixes all fail as Transmission; malformed JSON fails as Serializer.
func ReadMessage(r io.Reader) (Message, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, apperr.Transmission(err)
	}

	n := binary.BigEndian.Uint32(header[:])
	if n > MaxFrameSize {
		return Message{}, apperr.Wrap(apperr.KindTransmission, fmt.Errorf("frame length %d exceeds limit %d", n, MaxFrameSize))
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return Message{}, apperr.Transmission(err)
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return Message{}, apperr.Serializer(err)
	}
	return msg, nil
}
