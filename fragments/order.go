package fragments

import "encoding/binary"

// byteOrder is the subset of encoding/binary's two ByteOrder
// interfaces this package's codec actually calls: reading and
// appending fixed-width integers.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian is the byte order every D-Bus and GVariant basic-type
// encoder/decoder in this package uses. D-Bus messages also support
// big-endian wire encoding, but this package only ever produces and
// consumes little-endian payloads, so no other order is exposed.
var LittleEndian byteOrder = binary.LittleEndian
