package protocol

import (
	"bytes"
	"errors"
	"net"
	"testing"
)

func TestPeerListMarshalBinary(t *testing.T) {
	var tests = []struct {
		peers    PeerList
		expected []byte
	}{
		{
			peers: NewPeerList(
				Peer{
					IP:   [4]byte{127, 0, 0, 1},
					Port: uint16(8080),
				},
				Peer{
					IP:   [4]byte{192, 168, 178, 1},
					Port: uint16(8080),
				},
			),
			expected: []byte{
				0x7f, 0x00, 0x00, 0x01, 0x1F, 0x90,
				0xC0, 0xA8, 0xB2, 0x01, 0x1F, 0x90,
			},
		},
		{
			peers:    NewPeerList(),
			expected: []byte{},
		},
	}

	for _, test := range tests {
		actual, err := test.peers.MarshalBinary()
		if err != nil {
			t.Fatalf("PeerList.MarshalBinary() returned error: %v", err)
		}

		if !bytes.Equal(actual, test.expected) {
			t.Fatalf("PeerList.MarshalBinary() returned %v, expected %v", actual, test.expected)
		}
	}
}

func TestNewPeer(t *testing.T) {
	var tests = []struct {
		ip     []byte
		port   int
		reason string
	}{
		{ip: []byte{1, 2, 3, 4}, port: 6881},
		{ip: []byte{1, 2, 3, 4}, port: 65535},
		{ip: []byte{1, 2, 3}, port: 6881, reason: "address must be 4 bytes"},
		{ip: net.ParseIP("::1"), port: 6881, reason: "address must be 4 bytes"},
		{ip: []byte{1, 2, 3, 4}, port: 0, reason: "port out of range"},
		{ip: []byte{1, 2, 3, 4}, port: 65536, reason: "port out of range"},
		{ip: []byte{1, 2, 3, 4}, port: -1, reason: "port out of range"},
		{ip: []byte{0, 0, 0, 0}, port: 6881, reason: "unspecified address"},
	}

	for _, test := range tests {
		peer, err := NewPeer(test.ip, test.port)

		if test.reason == "" {
			if err != nil {
				t.Fatalf("NewPeer(%v, %d) returned error: %v", test.ip, test.port, err)
			}
			if int(peer.Port) != test.port || !bytes.Equal(peer.IP[:], test.ip) {
				t.Fatalf("NewPeer(%v, %d) returned %v", test.ip, test.port, peer)
			}
			continue
		}

		var invalidPeer *InvalidPeerError
		if !errors.As(err, &invalidPeer) {
			t.Fatalf("NewPeer(%v, %d) returned %v, expected *InvalidPeerError", test.ip, test.port, err)
		}

		if invalidPeer.Reason != test.reason {
			t.Fatalf("NewPeer(%v, %d) failed with %q, expected %q", test.ip, test.port, invalidPeer.Reason, test.reason)
		}

		if !errors.Is(err, ErrInvalidField) {
			t.Fatalf("NewPeer(%v, %d) error does not match ErrInvalidField", test.ip, test.port)
		}
	}
}

func TestPeerAddr(t *testing.T) {
	peer := Peer{IP: [4]byte{10, 1, 2, 3}, Port: 51413}

	addr := peer.Addr()
	if !addr.IP.Equal(net.IPv4(10, 1, 2, 3)) || addr.Port != 51413 {
		t.Fatalf("Peer.Addr() returned %v", addr)
	}

	if peer.String() != "10.1.2.3:51413" {
		t.Fatalf("Peer.String() returned %q", peer.String())
	}
}
