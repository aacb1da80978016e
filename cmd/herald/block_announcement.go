package main

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// blockAnnouncement is one hashblock notification of the node.
type blockAnnouncement struct {
	hash string
	seq  uint32
}

// parseHashBlock reads the topic, hash and sequence parts of a hashblock
// notification. The hash is sent in display order.
func parseHashBlock(parts [][]byte) (blockAnnouncement, error) {
	if len(parts) < 3 {
		return blockAnnouncement{}, fmt.Errorf("hashblock message has %d parts", len(parts))
	}
	if string(parts[0]) != "hashblock" {
		return blockAnnouncement{}, fmt.Errorf("unexpected topic %q", parts[0])
	}
	if len(parts[1]) != chainhash.HashSize {
		return blockAnnouncement{}, fmt.Errorf("block hash of %d bytes", len(parts[1]))
	}
	if len(parts[2]) != 4 {
		return blockAnnouncement{}, errors.New("sequence is not 4 bytes")
	}
	return blockAnnouncement{
		hash: fmt.Sprintf("%x", parts[1]),
		seq:  binary.LittleEndian.Uint32(parts[2]),
	}, nil
}

// announcementGap tracks notification sequence numbers. Each ZMQ publisher
// counts its messages per topic, so a jump means notifications were dropped.
type announcementGap struct {
	last uint32
	seen bool
}

// missed returns how many announcements were dropped before a.
func (g *announcementGap) missed(a blockAnnouncement) uint32 {
	defer func() { g.last, g.seen = a.seq, true }()
	if !g.seen || a.seq <= g.last {
		return 0
	}
	return a.seq - g.last - 1
}
