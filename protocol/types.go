package protocol

// http://bittorrent.org/beps/bep_0015.html

import (
	"encoding/hex"
	"fmt"
	"math/rand"

	"erri120/trackercodec/byteutil"
)

type Action uint32

const (
	ActionConnect  Action = 0
	ActionAnnounce Action = 1
	ActionScrape   Action = 2
	ActionError    Action = 3 // The tracker rejected the request, the body is a message.
)

func (a Action) String() string {
	switch a {
	case ActionConnect:
		return "connect"
	case ActionAnnounce:
		return "announce"
	case ActionScrape:
		return "scrape"
	case ActionError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%#x)", uint32(a))
	}
}

type TransactionId uint32

// NewTransactionId returns a random transaction id.
func NewTransactionId() TransactionId {
	return TransactionId(rand.Uint32())
}

type ConnectionId uint64

// Magic Connection Id used when the Client wants to connect to the Tracker.
const ConnectRequestMagic ConnectionId = 0x41727101980

type InfoHash [20]byte

// NewInfoHash hashes the bencoded info dictionary. A nil hasher uses SHA-1.
func NewInfoHash(hasher byteutil.Hasher, info []byte) InfoHash {
	if hasher == nil {
		hasher = byteutil.SHA1()
	}

	var infoHash InfoHash
	copy(infoHash[:], hasher.Sum(info))
	return infoHash
}

func (h InfoHash) String() string {
	return hex.EncodeToString(h[:])
}

type PeerId [20]byte

// String returns the raw peer id, one character per byte.
func (id PeerId) String() string {
	return byteutil.LatinString(id[:])
}

const (
	SizeOfRequestHeader   = 8 + 4 + 4
	SizeOfResponseHeader  = 4 + 4
	SizeOfConnectRequest  = SizeOfRequestHeader
	SizeOfConnectResponse = SizeOfResponseHeader + 8
	SizeOfAnnounceRequest = SizeOfRequestHeader + 20 + 20 + 8 + 8 + 8 + 4 + 4 + 4 + 4 + 2
	SizeOfPeer            = 4 + 2
	SizeOfScrapeStats     = 4 + 4 + 4

	MinAnnounceResponseLen = SizeOfResponseHeader + 4 + 4 + 4
	MinScrapeRequestLen    = SizeOfRequestHeader + 20
	MinScrapeResponseLen   = SizeOfResponseHeader
	MinErrorResponseLen    = SizeOfResponseHeader

	// Upper bound of info hashes in one scrape, what fits in a 1500 byte datagram.
	MaxScrapeInfoHashes = 74
)
