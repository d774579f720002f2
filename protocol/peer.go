package protocol

import (
	"bytes"
	"encoding/binary"
	"math"
	"net"
	"strconv"

	"erri120/trackercodec/byteutil"
)

// Peer is a compact IPv4 peer address as found in announce responses.
type Peer struct {
	IP   [net.IPv4len]byte
	Port uint16
}

// NewPeer validates ip and port. It returns an *InvalidPeerError instead of clamping.
func NewPeer(ip []byte, port int) (Peer, error) {
	if len(ip) != net.IPv4len {
		return Peer{}, &InvalidPeerError{IP: ip, Port: port, Reason: "address must be 4 bytes"}
	}

	if port <= 0 || port > math.MaxUint16 {
		return Peer{}, &InvalidPeerError{IP: ip, Port: port, Reason: "port out of range"}
	}

	if net.IP(ip).IsUnspecified() {
		return Peer{}, &InvalidPeerError{IP: ip, Port: port, Reason: "unspecified address"}
	}

	p := Peer{Port: uint16(port)}
	copy(p.IP[:], ip)
	return p, nil
}

func (p Peer) String() string {
	// FormatAddress only fails on a wrong length, which a [4]byte cannot have
	host, _ := byteutil.FormatAddress(p.IP[:])
	return net.JoinHostPort(host, strconv.Itoa(int(p.Port)))
}

// Addr returns the address peers are dialed on.
func (p Peer) Addr() *net.TCPAddr {
	return &net.TCPAddr{IP: net.IP(p.IP[:]).To16(), Port: int(p.Port)}
}

// PeerList is an immutable, ordered list of peers.
type PeerList struct {
	peers []Peer
}

func NewPeerList(peers ...Peer) PeerList {
	return PeerList{peers: append([]Peer(nil), peers...)}
}

func (l PeerList) Len() int {
	return len(l.peers)
}

func (l PeerList) At(i int) Peer {
	return l.peers[i]
}

// Slice returns a copy of the peers in wire order.
func (l PeerList) Slice() []Peer {
	return append([]Peer(nil), l.peers...)
}

func (l PeerList) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(l.peers)*SizeOfPeer))

	for _, peer := range l.peers {
		if err := binary.Write(buf, binary.BigEndian, &peer); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
