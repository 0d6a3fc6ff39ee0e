/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"
	"sync"

	"github.com/ndnx/corefwd/core"
)

// FaceTable is the global face table for this forwarder.
var FaceTable Table

// Table holds all faces known to the forwarder.
type Table struct {
	faces      map[uint64]*Face
	mutex      sync.RWMutex
	nextFaceID uint64
}

func init() {
	FaceTable.faces = make(map[uint64]*Face)
	FaceTable.nextFaceID = 1
}

// Add registers a face in the face table, assigning it a FaceID.
func (t *Table) Add(face *Face) uint64 {
	t.mutex.Lock()
	faceID := t.nextFaceID
	t.nextFaceID++
	t.faces[faceID] = face
	t.mutex.Unlock()

	face.SetFaceID(faceID)
	core.LogDebug("FaceTable", "Registered FaceID="+strconv.FormatUint(faceID, 10))
	return faceID
}

// Get returns the face with the given ID, or nil if it does not exist.
func (t *Table) Get(id uint64) *Face {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.faces[id]
}

// Remove removes a face from the face table.
func (t *Table) Remove(id uint64) {
	t.mutex.Lock()
	delete(t.faces, id)
	t.mutex.Unlock()

	core.LogDebug("FaceTable", "Unregistered FaceID="+strconv.FormatUint(id, 10))
}

// GetAll returns all faces currently registered.
func (t *Table) GetAll() []*Face {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	faces := make([]*Face, 0, len(t.faces))
	for _, face := range t.faces {
		faces = append(faces, face)
	}
	return faces
}
