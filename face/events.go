/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/ndnx/corefwd/ndn"
)

// FaceEventsCacheSize is the number of recent face events retained for
// management queries.
const FaceEventsCacheSize = 100

// faceEvents caches face events.
var faceEvents [FaceEventsCacheSize]FaceEvent
var faceEventsIdx uint = 0
var faceEventsNextId uint64 = 0

// FaceEvent represents a lifecycle transition of a Face, recorded for
// management introspection (mgmt's equivalent of FaceEventNotification).
type FaceEvent struct {
	EventID       uint64
	FaceEventKind FaceEventKind
	FaceID        uint64
	RemoteURI     *ndn.URI
	LocalURI      *ndn.URI
	Scope         ndn.Scope
	Persistency   Persistency
	LinkType      ndn.LinkType
}

// FaceEventKind represents the type of a face event.
type FaceEventKind uint64

// Face event kinds.
const (
	FaceEventCreated   FaceEventKind = 1
	FaceEventDestroyed FaceEventKind = 2
	FaceEventUp        FaceEventKind = 3
	FaceEventDown      FaceEventKind = 4
)

func (p FaceEventKind) String() string {
	switch p {
	case FaceEventCreated:
		return "Created"
	case FaceEventDestroyed:
		return "Destroyed"
	case FaceEventUp:
		return "Up"
	case FaceEventDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// EmitFaceEvent injects a new face event into the cache.
func EmitFaceEvent(kind FaceEventKind, face *Face) {
	faceEvents[faceEventsIdx] = FaceEvent{
		EventID:       faceEventsNextId,
		FaceEventKind: kind,
		FaceID:        face.FaceID(),
		RemoteURI:     face.RemoteURI(),
		LocalURI:      face.LocalURI(),
		Scope:         face.Scope(),
		Persistency:   face.Persistency(),
		LinkType:      face.LinkType(),
	}
	faceEventsNextId++
	faceEventsIdx = (faceEventsIdx + 1) % FaceEventsCacheSize
}

// GetFaceEvent returns the face event with the given id.
// It will return nil if the specified event is discarded or does not exist.
func GetFaceEvent(eventId uint64) *FaceEvent {
	if eventId >= faceEventsNextId || eventId+FaceEventsCacheSize < faceEventsNextId {
		return nil
	}
	idx := (faceEventsIdx + uint(eventId+FaceEventsCacheSize-faceEventsNextId)) % FaceEventsCacheSize
	return &faceEvents[idx]
}

// FaceEventLastId returns the id of the last face event.
func FaceEventLastId() uint64 {
	return faceEventsNextId - 1
}
