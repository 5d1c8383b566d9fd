// Package artnet builds Art-Net ArtDMX packets for output over UDP.
package artnet

import (
	"encoding/binary"
)

const (
	// OpCodeDMX is the Art-Net operation code for DMX data.
	OpCodeDMX uint16 = 0x5000
	// ProtocolVersion is the Art-Net protocol version.
	ProtocolVersion uint16 = 14
	// DMXDataLength is the number of DMX channels per universe.
	DMXDataLength uint16 = 512
	// PacketSize is the total size of an Art-Net DMX packet.
	PacketSize = 18 + int(DMXDataLength)
	// DefaultPort is the standard Art-Net UDP port.
	DefaultPort = 6454
)

// ArtNetID is the Art-Net packet identifier.
var ArtNetID = []byte{'A', 'r', 't', '-', 'N', 'e', 't', 0x00}

// PortAddress packs net (0-127), subnet (0-15) and universe (0-15) into the
// 15-bit Art-Net port address field.
func PortAddress(net, subnet, universe int) uint16 {
	return uint16(net&0x7f)<<8 | uint16(subnet&0x0f)<<4 | uint16(universe&0x0f)
}

// BuildDMXPacket builds an 18-byte-header + 512-byte ArtDMX packet. channels
// is copied into the data section starting at index 0 (DMX channel 1); any
// unwritten bytes remain zero. sequence increments per send and wraps at 256.
func BuildDMXPacket(net, subnet, universe int, channels []byte, sequence byte) []byte {
	packet := make([]byte, PacketSize)

	copy(packet[0:8], ArtNetID)
	binary.LittleEndian.PutUint16(packet[8:10], OpCodeDMX)
	binary.BigEndian.PutUint16(packet[10:12], ProtocolVersion)
	packet[12] = sequence
	packet[13] = 0
	binary.LittleEndian.PutUint16(packet[14:16], PortAddress(net, subnet, universe))
	binary.BigEndian.PutUint16(packet[16:18], DMXDataLength)

	n := len(channels)
	if n > int(DMXDataLength) {
		n = int(DMXDataLength)
	}
	copy(packet[18:18+n], channels[:n])

	return packet
}
