package protocol

import (
	"fmt"
	"math"
	"strings"
)

// http://bittorrent.org/beps/bep_0041.html

type BEP41OptionType uint8

const (
	BEP41OptionTypeEndOfOptions BEP41OptionType = 0
	BEP41OptionTypeNOP          BEP41OptionType = 1
	BEP41OptionTypeURLData      BEP41OptionType = 2
)

// AppendURLData appends urlData as URLData options of at most 255 bytes each.
func AppendURLData(buf []byte, urlData string) []byte {
	for len(urlData) > 0 {
		size := len(urlData)
		if size > math.MaxUint8 {
			size = math.MaxUint8
		}

		buf = append(buf, byte(BEP41OptionTypeURLData), byte(size))
		buf = append(buf, urlData[:size]...)
		urlData = urlData[size:]
	}
	return buf
}

// extractExtensionData reads options until EndOfOptions or the end of the datagram
// and returns the concatenated URL data.
func extractExtensionData(c *cursor) (string, error) {
	var urlData strings.Builder

	for c.remaining() > 0 {
		optionType, err := c.uint8()
		if err != nil {
			return "", err
		}

		switch BEP41OptionType(optionType) {
		case BEP41OptionTypeEndOfOptions:
			return urlData.String(), nil
		case BEP41OptionTypeNOP:
			continue
		case BEP41OptionTypeURLData:
			length, err := c.uint8()
			if err != nil {
				return "", err
			}

			part := make([]byte, length)
			if err := c.read(part); err != nil {
				return "", err
			}
			urlData.Write(part)
		default:
			return "", fmt.Errorf("unknown BEP 41 option type %d", optionType)
		}
	}

	return urlData.String(), nil
}
