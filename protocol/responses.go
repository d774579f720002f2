package protocol

import (
	"github.com/hashicorp/go-multierror"

	"erri120/trackercodec/byteutil"
)

type ResponseHeader struct {
	Action        Action
	TransactionId TransactionId
}

// Response is implemented by every decoded tracker response.
type Response interface {
	Action() Action
	Transaction() TransactionId
}

// PeekHeader returns the action and transaction id of a response without decoding the body.
// Transports use it to match a datagram to the outstanding request.
func PeekHeader(b []byte) (ResponseHeader, error) {
	const message = "response header"

	if len(b) < SizeOfResponseHeader {
		return ResponseHeader{}, tooShort(message, SizeOfResponseHeader, len(b))
	}

	c := &cursor{buf: b}
	action, err := c.uint32()
	if err != nil {
		return ResponseHeader{}, truncated(message, err)
	}
	transactionId, err := c.uint32()
	if err != nil {
		return ResponseHeader{}, truncated(message, err)
	}

	return ResponseHeader{Action: Action(action), TransactionId: TransactionId(transactionId)}, nil
}

type ConnectResponse struct {
	TransactionId TransactionId
	ConnectionId  ConnectionId
}

func (r *ConnectResponse) Action() Action             { return ActionConnect }
func (r *ConnectResponse) Transaction() TransactionId { return r.TransactionId }

func (r *ConnectResponse) MarshalBinary() ([]byte, error) {
	return Marshal(SizeOfConnectResponse, ResponseHeader{
		Action:        ActionConnect,
		TransactionId: r.TransactionId,
	}, r.ConnectionId)
}

func decodeConnectResponse(b []byte) (*ConnectResponse, error) {
	const message = "connect response"

	c := &cursor{buf: b}
	transactionId, err := c.readResponseHeader(message, SizeOfConnectResponse, ActionConnect)
	if err != nil {
		return nil, err
	}

	connectionId, err := c.uint64()
	if err != nil {
		return nil, truncated(message, err)
	}

	return &ConnectResponse{
		TransactionId: transactionId,
		ConnectionId:  ConnectionId(connectionId),
	}, nil
}

// AnnounceResponse carries the swarm counters and the peers the tracker handed out.
// The counters are unsigned on the wire and keep their full range.
type AnnounceResponse struct {
	TransactionId TransactionId
	Interval      uint32 // Seconds to wait before announcing again.
	Leechers      uint32
	Seeders       uint32

	peers      PeerList
	peerErrors *multierror.Error
}

type announceResponseHeader struct {
	Interval uint32
	Leechers uint32
	Seeders  uint32
}

func NewAnnounceResponse(transactionId TransactionId, interval, leechers, seeders uint32, peers ...Peer) *AnnounceResponse {
	return &AnnounceResponse{
		TransactionId: transactionId,
		Interval:      interval,
		Leechers:      leechers,
		Seeders:       seeders,
		peers:         NewPeerList(peers...),
	}
}

func (r *AnnounceResponse) Action() Action             { return ActionAnnounce }
func (r *AnnounceResponse) Transaction() TransactionId { return r.TransactionId }

// Peers returns the valid peers in the order the tracker sent them.
func (r *AnnounceResponse) Peers() PeerList {
	return r.peers
}

// Skipped returns the number of peer records that were dropped as invalid.
func (r *AnnounceResponse) Skipped() int {
	if r.peerErrors == nil {
		return 0
	}
	return len(r.peerErrors.Errors)
}

// PeerErrors returns the *InvalidPeerError of every skipped record, or nil.
func (r *AnnounceResponse) PeerErrors() error {
	return r.peerErrors.ErrorOrNil()
}

func (r *AnnounceResponse) MarshalBinary() ([]byte, error) {
	peers, err := r.peers.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return Marshal(MinAnnounceResponseLen+len(peers), ResponseHeader{
		Action:        ActionAnnounce,
		TransactionId: r.TransactionId,
	}, announceResponseHeader{
		Interval: r.Interval,
		Leechers: r.Leechers,
		Seeders:  r.Seeders,
	}, peers)
}

// decodeAnnounceResponse calls skip for every peer record that fails validation.
func decodeAnnounceResponse(b []byte, skip func(err error)) (*AnnounceResponse, error) {
	const message = "announce response"

	c := &cursor{buf: b}
	transactionId, err := c.readResponseHeader(message, MinAnnounceResponseLen, ActionAnnounce)
	if err != nil {
		return nil, err
	}

	r := &AnnounceResponse{TransactionId: transactionId}
	for _, field := range []*uint32{&r.Interval, &r.Leechers, &r.Seeders} {
		if *field, err = c.uint32(); err != nil {
			return nil, truncated(message, err)
		}
	}

	peers := make([]Peer, 0, c.remaining()/SizeOfPeer)
	for c.remaining() > 0 {
		var ip [4]byte
		if err := c.read(ip[:]); err != nil {
			return nil, truncated(message, err)
		}

		port, err := c.uint16()
		if err != nil {
			return nil, truncated(message, err)
		}

		peer, err := NewPeer(ip[:], int(port))
		if err != nil {
			r.peerErrors = multierror.Append(r.peerErrors, err)
			if skip != nil {
				skip(err)
			}
			continue
		}

		peers = append(peers, peer)
	}

	r.peers = PeerList{peers: peers}
	return r, nil
}

// ErrorResponse is sent by the tracker instead of the expected response.
type ErrorResponse struct {
	TransactionId TransactionId
	Message       string
}

func (r *ErrorResponse) Action() Action             { return ActionError }
func (r *ErrorResponse) Transaction() TransactionId { return r.TransactionId }

func (r *ErrorResponse) Error() string {
	return "tracker error: " + r.Message
}

func (r *ErrorResponse) MarshalBinary() ([]byte, error) {
	b := byteutil.LatinBytes(r.Message)
	return Marshal(SizeOfResponseHeader+len(b), ResponseHeader{
		Action:        ActionError,
		TransactionId: r.TransactionId,
	}, b)
}

func decodeErrorResponse(b []byte) (*ErrorResponse, error) {
	const message = "error response"

	c := &cursor{buf: b}
	transactionId, err := c.readResponseHeader(message, MinErrorResponseLen, ActionError)
	if err != nil {
		return nil, err
	}

	return &ErrorResponse{
		TransactionId: transactionId,
		Message:       byteutil.LatinString(b[c.off:]),
	}, nil
}
