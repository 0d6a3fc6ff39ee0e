/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"errors"
	"strconv"

	"github.com/ndnx/corefwd/ndn/tlv"
	"github.com/ndnx/corefwd/ndn/util"
)

// Data represents an NDN Data packet. This is a forwarding data plane, not a
// verifier: any SignatureInfo/SignatureValue present on the wire is parsed
// for structural fidelity and carried opaquely, never validated, and never
// re-emitted when the packet is re-encoded after a local mutation.
type Data struct {
	name     *Name
	metaInfo *MetaInfo
	content  []byte
	sigInfo  *SignatureInfo
	sigValue []byte
	wire     *tlv.Block

	pitToken []byte
}

// NewData creates a new Data packet with the given name and content.
func NewData(name *Name, content []byte) *Data {
	if name == nil {
		return nil
	}

	d := new(Data)
	d.name = name
	d.metaInfo = NewMetaInfo()
	d.content = make([]byte, len(content))
	copy(d.content, content)
	return d
}

// DecodeData decodes a Data packet from the wire. Signature fields are
// parsed for wire fidelity only; they are never validated.
func DecodeData(wire *tlv.Block) (*Data, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}

	d := new(Data)
	d.wire = wire
	d.wire.Parse()
	mostRecentElem := 0
	var err error
	for _, elem := range d.wire.Subelements() {
		switch elem.Type() {
		case tlv.Name:
			if mostRecentElem >= 1 {
				return nil, errors.New("name is duplicate or out-of-order")
			}
			mostRecentElem = 1
			d.name, err = DecodeName(elem)
			if err != nil {
				return nil, errors.New("error decoding name")
			}
		case tlv.MetaInfo:
			if mostRecentElem >= 2 {
				return nil, errors.New("meta info is duplicate or out-of-order")
			}
			mostRecentElem = 2
			d.metaInfo, err = DecodeMetaInfo(elem)
			if err != nil {
				return nil, err
			}
		case tlv.Content:
			if mostRecentElem >= 3 {
				return nil, errors.New("content is duplicate or out-of-order")
			}
			mostRecentElem = 3
			d.content = make([]byte, len(elem.Value()))
			copy(d.content, elem.Value())
		case tlv.SignatureInfo:
			if mostRecentElem >= 4 {
				return nil, errors.New("signature info is duplicate or out-of-order")
			}
			mostRecentElem = 4
			d.sigInfo, err = DecodeSignatureInfo(elem)
			if err != nil {
				return nil, errors.New("error decoding signature info")
			}
		case tlv.SignatureValue:
			if mostRecentElem >= 5 {
				return nil, errors.New("signature value is duplicate or out-of-order")
			}
			mostRecentElem = 5
			d.sigValue = make([]byte, len(elem.Value()))
			copy(d.sigValue, elem.Value())
		default:
			if tlv.IsCritical(elem.Type()) {
				return nil, tlv.ErrUnrecognizedCritical
			}
			// If non-critical, ignore
		}
	}

	if d.name == nil {
		return nil, errors.New("data missing required name field")
	}
	if d.metaInfo == nil {
		d.metaInfo = NewMetaInfo()
	}

	return d, nil
}

func (d *Data) String() string {
	str := "Data(" + d.name.String()
	if d.metaInfo != nil {
		str += ", " + d.metaInfo.String()
	}
	str += ", ContentLen=" + strconv.FormatInt(int64(len(d.content)), 10) + ")"
	return str
}

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// SetName sets the name of the Data packet.
func (d *Data) SetName(name *Name) {
	d.name = name
	d.wire = nil
}

// MetaInfo returns the MetaInfo of the Data packet.
func (d *Data) MetaInfo() *MetaInfo {
	return d.metaInfo
}

// SetMetaInfo sets the MetaInfo of the Data packet.
func (d *Data) SetMetaInfo(metaInfo *MetaInfo) {
	d.metaInfo = metaInfo
	d.wire = nil
}

// Content returns the content in the Data packet. The returned slice is the
// packet's own buffer, not a copy.
func (d *Data) Content() []byte {
	return d.content
}

// SetContent sets the content of the Data packet.
func (d *Data) SetContent(content []byte) {
	d.content = content
	d.wire = nil
}

// SignatureInfo returns the SignatureInfo carried by the Data packet as
// decoded off the wire, or nil if the Data was built locally and never signed.
func (d *Data) SignatureInfo() *SignatureInfo {
	return d.sigInfo
}

// SignatureValue returns the opaque signature bytes carried by the Data, if any.
func (d *Data) SignatureValue() []byte {
	return d.sigValue
}

// Encode encodes the Data into a block. A Data built or mutated locally by
// the forwarder carries no signature: the forwarder never signs. A Data
// decoded off the wire retains the SignatureInfo/SignatureValue it parsed
// for logging and relay purposes, but those are not written back out here
// since any local mutation (SetContent, SetMetaInfo, ...) would already
// have invalidated them.
func (d *Data) Encode() (*tlv.Block, error) {
	if d.wire == nil {
		d.wire = tlv.NewEmptyBlock(tlv.Data)
		d.wire.Append(d.name.Encode())
		if d.metaInfo != nil && (d.metaInfo.contentType != nil || d.metaInfo.freshnessPeriod != nil || d.metaInfo.finalBlockID != nil) {
			encodedMetaInfo, err := d.metaInfo.Encode()
			if err != nil {
				d.wire = nil
				return nil, errors.New("unable to encode meta info")
			}
			d.wire.Append(encodedMetaInfo)
		}
		d.wire.Append(tlv.NewBlock(tlv.Content, d.content))
	}

	d.wire.Wire()
	return d.wire, nil
}

// HasWire returns whether the Data packet has an existing valid wire encoding.
func (d *Data) HasWire() bool {
	return d.wire != nil
}

// PitToken returns the PIT token attached to the Data (if any).
func (d *Data) PitToken() []byte {
	return d.pitToken
}

// SetPitToken sets the PIT token attached to the Data.
func (d *Data) SetPitToken(pitToken []byte) {
	d.pitToken = pitToken
}

// DeepCopy creates a deep copy of the Data packet, detached from its source wire.
func (d *Data) DeepCopy() *Data {
	newD := new(Data)
	newD.name = d.name.DeepCopy()
	newD.metaInfo = d.metaInfo
	newD.content = make([]byte, len(d.content))
	copy(newD.content, d.content)
	if d.sigInfo != nil {
		newD.sigInfo = d.sigInfo.DeepCopy()
	}
	newD.sigValue = make([]byte, len(d.sigValue))
	copy(newD.sigValue, d.sigValue)
	newD.pitToken = make([]byte, len(d.pitToken))
	copy(newD.pitToken, d.pitToken)
	return newD
}
