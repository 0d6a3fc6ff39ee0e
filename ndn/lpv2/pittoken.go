/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

import "encoding/binary"

// PitTokenLen is the fixed length of a PitToken produced by MakePitToken.
// Layout: workerId (4 bytes), flags (1 byte), nameHash (8 bytes), all
// little-endian. This widens the teacher's ad hoc 6-byte token so the name
// hash survives intact for dispatch verification on the Data return path.
const PitTokenLen = 13

// PitToken flag bits.
const (
	// PitTokenFlagNack marks a PitToken minted for a Nack carrying the
	// full name hash of the rejected Interest, so a late Nack can still be
	// routed back to the worker that holds the PIT entry.
	PitTokenFlagNack byte = 1 << 0
)

// MakePitToken encodes a PitToken for the given worker, flags, and name hash.
func MakePitToken(workerID uint32, flags byte, nameHash uint64) []byte {
	token := make([]byte, PitTokenLen)
	binary.LittleEndian.PutUint32(token[0:4], workerID)
	token[4] = flags
	binary.LittleEndian.PutUint64(token[5:13], nameHash)
	return token
}

// ParsePitToken decodes a PitToken produced by MakePitToken. ok is false if
// token is not exactly PitTokenLen bytes.
func ParsePitToken(token []byte) (workerID uint32, flags byte, nameHash uint64, ok bool) {
	if len(token) != PitTokenLen {
		return 0, 0, 0, false
	}
	workerID = binary.LittleEndian.Uint32(token[0:4])
	flags = token[4]
	nameHash = binary.LittleEndian.Uint64(token[5:13])
	return workerID, flags, nameHash, true
}
