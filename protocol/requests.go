package protocol

import (
	"bytes"
	"errors"
	"fmt"

	"erri120/trackercodec/byteutil"
)

type RequestHeader struct {
	ConnectionId  ConnectionId  // Connection Id for the Client.
	Action        Action        // Action of the request.
	TransactionId TransactionId // Transaction Id of the request.
}

// ConnectRequest asks the tracker for a connection id.
type ConnectRequest struct {
	TransactionId TransactionId
}

// NewConnectRequest returns a connect request with a fresh transaction id.
func NewConnectRequest() *ConnectRequest {
	return &ConnectRequest{TransactionId: NewTransactionId()}
}

func (r *ConnectRequest) Transaction() TransactionId { return r.TransactionId }

func (r *ConnectRequest) MarshalBinary() ([]byte, error) {
	return Marshal(SizeOfConnectRequest, RequestHeader{
		ConnectionId:  ConnectRequestMagic,
		Action:        ActionConnect,
		TransactionId: r.TransactionId,
	})
}

func DecodeConnectRequest(b []byte) (*ConnectRequest, error) {
	const message = "connect request"

	c := &cursor{buf: b}
	header, err := c.readRequestHeader(message, SizeOfConnectRequest, ActionConnect)
	if err != nil {
		return nil, err
	}

	if header.ConnectionId != ConnectRequestMagic {
		return nil, invalidField(message, fmt.Errorf("connection id %#x is not the protocol magic", uint64(header.ConnectionId)))
	}

	return &ConnectRequest{TransactionId: header.TransactionId}, nil
}

type AnnounceEvent int32

const (
	AnnounceEventNone      AnnounceEvent = 0
	AnnounceEventCompleted AnnounceEvent = 1 // The local peer just completed the torrent.
	AnnounceEventStarted   AnnounceEvent = 2 // The local peer has just resumed this torrent.
	AnnounceEventStopped   AnnounceEvent = 3 // The local peer is leaving the swarm.
)

var announceEventStrings = []string{"", "completed", "started", "stopped"}

func (e AnnounceEvent) String() string {
	if e < 0 || int(e) >= len(announceEventStrings) {
		return ""
	}
	return announceEventStrings[e]
}

type AnnounceRequest struct {
	ConnectionId  ConnectionId  //
	TransactionId TransactionId //
	InfoHash      InfoHash      //
	PeerId        PeerId        //
	Downloaded    int64         // Number of bytes downloaded.
	Left          int64         // Number of bytes left.
	Uploaded      int64         // Number of bytes uploaded.
	Event         AnnounceEvent //
	IPAddress     uint32        // 0 lets the tracker use the sender address.
	Key           uint32        //
	NumWant       int32         // Number of Peers the Client wants. -1 for default.
	Port          uint16        //
	URLData       string        // BEP 41 path and query of the announce URL.
}

// announceBody is the fixed part following the request header.
type announceBody struct {
	InfoHash   InfoHash
	PeerId     PeerId
	Downloaded int64
	Left       int64
	Uploaded   int64
	Event      AnnounceEvent
	IPAddress  uint32
	Key        uint32
	NumWant    int32
	Port       uint16
}

func (r *AnnounceRequest) Transaction() TransactionId { return r.TransactionId }

func (r *AnnounceRequest) MarshalBinary() ([]byte, error) {
	options := AppendURLData(nil, r.URLData)

	return Marshal(SizeOfAnnounceRequest+len(options), RequestHeader{
		ConnectionId:  r.ConnectionId,
		Action:        ActionAnnounce,
		TransactionId: r.TransactionId,
	}, announceBody{
		InfoHash:   r.InfoHash,
		PeerId:     r.PeerId,
		Downloaded: r.Downloaded,
		Left:       r.Left,
		Uploaded:   r.Uploaded,
		Event:      r.Event,
		IPAddress:  r.IPAddress,
		Key:        r.Key,
		NumWant:    r.NumWant,
		Port:       r.Port,
	}, options)
}

func DecodeAnnounceRequest(b []byte) (*AnnounceRequest, error) {
	const message = "announce request"

	c := &cursor{buf: b}
	header, err := c.readRequestHeader(message, SizeOfAnnounceRequest, ActionAnnounce)
	if err != nil {
		return nil, err
	}

	var body announceBody
	if err := Unmarshal(bytes.NewReader(b[c.off:SizeOfAnnounceRequest]), &body); err != nil {
		return nil, truncated(message, err)
	}
	c.off = SizeOfAnnounceRequest

	r := &AnnounceRequest{
		ConnectionId:  header.ConnectionId,
		TransactionId: header.TransactionId,
		InfoHash:      body.InfoHash,
		PeerId:        body.PeerId,
		Downloaded:    body.Downloaded,
		Left:          body.Left,
		Uploaded:      body.Uploaded,
		Event:         body.Event,
		IPAddress:     body.IPAddress,
		Key:           body.Key,
		NumWant:       body.NumWant,
		Port:          body.Port,
	}

	if c.remaining() > 0 {
		urlData, err := extractExtensionData(c)
		if err != nil {
			if errors.Is(err, byteutil.ErrOutOfBounds) {
				return nil, truncated(message, err)
			}
			return nil, invalidField(message, err)
		}
		r.URLData = urlData
	}

	return r, nil
}

// ScrapeRequest asks for swarm statistics of up to MaxScrapeInfoHashes torrents.
type ScrapeRequest struct {
	ConnectionId  ConnectionId
	TransactionId TransactionId
	InfoHashes    []InfoHash
}

func (r *ScrapeRequest) Transaction() TransactionId { return r.TransactionId }

func (r *ScrapeRequest) MarshalBinary() ([]byte, error) {
	if len(r.InfoHashes) == 0 || len(r.InfoHashes) > MaxScrapeInfoHashes {
		return nil, fmt.Errorf("scrape request needs 1 to %d info hashes, got %d", MaxScrapeInfoHashes, len(r.InfoHashes))
	}

	return Marshal(SizeOfRequestHeader+20*len(r.InfoHashes), RequestHeader{
		ConnectionId:  r.ConnectionId,
		Action:        ActionScrape,
		TransactionId: r.TransactionId,
	}, r.InfoHashes)
}

func DecodeScrapeRequest(b []byte) (*ScrapeRequest, error) {
	const message = "scrape request"

	c := &cursor{buf: b}
	header, err := c.readRequestHeader(message, MinScrapeRequestLen, ActionScrape)
	if err != nil {
		return nil, err
	}

	r := &ScrapeRequest{
		ConnectionId:  header.ConnectionId,
		TransactionId: header.TransactionId,
		InfoHashes:    make([]InfoHash, 0, c.remaining()/20),
	}

	for c.remaining() > 0 {
		var infoHash InfoHash
		if err := c.read(infoHash[:]); err != nil {
			return nil, truncated(message, err)
		}
		r.InfoHashes = append(r.InfoHashes, infoHash)
	}

	if len(r.InfoHashes) > MaxScrapeInfoHashes {
		return nil, invalidField(message, fmt.Errorf("%d info hashes, at most %d allowed", len(r.InfoHashes), MaxScrapeInfoHashes))
	}

	return r, nil
}
