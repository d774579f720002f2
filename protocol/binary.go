package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"erri120/trackercodec/byteutil"
)

// Marshal writes all parts in network byte order into a fresh buffer.
func Marshal(bufSize int, parts ...interface{}) (result []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, bufSize))
	for _, part := range parts {
		err = binary.Write(buf, binary.BigEndian, part)
		if err != nil {
			return
		}
	}

	result = buf.Bytes()
	return
}

func Unmarshal(reader io.Reader, data any) error {
	return binary.Read(reader, binary.BigEndian, data)
}

// cursor reads network byte order fields from a datagram without modifying it.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) uint8() (uint8, error) {
	if c.remaining() < 1 {
		return 0, fmt.Errorf("%w: 1 byte at offset %d, buffer has %d", byteutil.ErrOutOfBounds, c.off, len(c.buf))
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) uint16() (uint16, error) {
	v, err := byteutil.ReadUint16(c.buf, c.off, byteutil.BigEndian)
	if err != nil {
		return 0, err
	}
	c.off += 2
	return v, nil
}

func (c *cursor) uint32() (uint32, error) {
	v, err := byteutil.ReadUint32(c.buf, c.off, byteutil.BigEndian)
	if err != nil {
		return 0, err
	}
	c.off += 4
	return v, nil
}

func (c *cursor) uint64() (uint64, error) {
	hi, err := c.uint32()
	if err != nil {
		return 0, err
	}
	lo, err := c.uint32()
	if err != nil {
		c.off -= 4
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// read copies len(dst) bytes into dst.
func (c *cursor) read(dst []byte) error {
	if c.remaining() < len(dst) {
		return fmt.Errorf("%w: %d bytes at offset %d, buffer has %d", byteutil.ErrOutOfBounds, len(dst), c.off, len(c.buf))
	}
	c.off += copy(dst, c.buf[c.off:])
	return nil
}

// readResponseHeader checks length and action and returns the transaction id.
func (c *cursor) readResponseHeader(message string, minLen int, expected Action) (TransactionId, error) {
	if len(c.buf) < minLen {
		return 0, tooShort(message, minLen, len(c.buf))
	}

	action, err := c.uint32()
	if err != nil {
		return 0, truncated(message, err)
	}

	if Action(action) != expected {
		return 0, unexpectedAction(message, expected, Action(action))
	}

	transactionId, err := c.uint32()
	if err != nil {
		return 0, truncated(message, err)
	}

	return TransactionId(transactionId), nil
}

// readRequestHeader is readResponseHeader for the 16 byte request header.
func (c *cursor) readRequestHeader(message string, minLen int, expected Action) (RequestHeader, error) {
	if len(c.buf) < minLen {
		return RequestHeader{}, tooShort(message, minLen, len(c.buf))
	}

	connectionId, err := c.uint64()
	if err != nil {
		return RequestHeader{}, truncated(message, err)
	}

	action, err := c.uint32()
	if err != nil {
		return RequestHeader{}, truncated(message, err)
	}

	if Action(action) != expected {
		return RequestHeader{}, unexpectedAction(message, expected, Action(action))
	}

	transactionId, err := c.uint32()
	if err != nil {
		return RequestHeader{}, truncated(message, err)
	}

	return RequestHeader{
		ConnectionId:  ConnectionId(connectionId),
		Action:        Action(action),
		TransactionId: TransactionId(transactionId),
	}, nil
}
