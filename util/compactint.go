package util

import (
	"encoding/binary"
	"io"
)

// WriteVarInt and ReadVarInt implement the Bitcoin/Namecoin CompactSize
// encoding used throughout the wire format: values under 0xfd encode as a
// single byte; 0xfd/0xfe/0xff introduce a 2/4/8-byte little-endian value.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return BinarySerializer.PutUint8(w, uint8(val))
	}
	if val <= 0xffff {
		if err := BinarySerializer.PutUint8(w, 0xfd); err != nil {
			return err
		}
		return BinarySerializer.PutUint16(w, binary.LittleEndian, uint16(val))
	}
	if val <= 0xffffffff {
		if err := BinarySerializer.PutUint8(w, 0xfe); err != nil {
			return err
		}
		return BinarySerializer.PutUint32(w, binary.LittleEndian, uint32(val))
	}
	if err := BinarySerializer.PutUint8(w, 0xff); err != nil {
		return err
	}
	return BinarySerializer.PutUint64(w, binary.LittleEndian, val)
}

func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := BinarySerializer.Uint8(r)
	if err != nil {
		return 0, err
	}
	switch discriminant {
	case 0xff:
		v, err := BinarySerializer.Uint64(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		return v, nil
	case 0xfe:
		v, err := BinarySerializer.Uint32(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	case 0xfd:
		v, err := BinarySerializer.Uint16(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	default:
		return uint64(discriminant), nil
	}
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would emit.
func VarIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}
