/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/cespare/xxhash"
	"github.com/ndnx/corefwd/ndn"
)

// nameTreeNode is one node of the shared trie index described by spec.md
// §4.7: a name-component trie in which a node carries slots for at most one
// FIB entry, one CS entry, and a bucket of PIT entries. (The Measurements
// table is kept as the teacher keeps it - a flat key/value store, not a
// name trie - per the per-worker-vs-shared Open Question decision in
// DESIGN.md, so it has no slot here.) No table is built on this type: the
// FIB-strategy table walks its own FibStrategyEntry trie and each worker's
// PIT/CS walks its own PitCsNode trie, each with its own
// longest-prefix-match/exact-match/fill-to-prefix code, and nothing in the
// package calls newNameTree or the attach/detach slot methods below.
//
// Children are hash-bucketed by component rather than held in a flat
// slice, so a wide fan-out node (the root under many distinct first
// components, for example) doesn't degrade to a linear scan per lookup.
type nameTreeNode struct {
	component ndn.NameComponent
	Name      *ndn.Name
	depth     int

	parent   *nameTreeNode
	children map[uint64][]*nameTreeNode

	// refCount counts how many of the slots below are occupied. A node
	// is pruned once its refCount reaches zero and it has no children
	// left to anchor, cascading up through its ancestors - this is the
	// "nodes are reference-counted; deletion cascades when all
	// references are released" rule from spec.md's glossary.
	refCount int

	fibEntry   *FibStrategyEntry
	pitEntries []*PitEntry
	csEntry    *CsEntry
}

// nameTree is a trie of nameTreeNode rooted at the empty name. Neither the
// FIB/strategy-choice table nor the PIT/CS holds an instance of it.
type nameTree struct {
	root *nameTreeNode
}

func newNameTree() *nameTree {
	return &nameTree{root: &nameTreeNode{Name: ndn.NewName()}}
}

func componentBucket(c ndn.NameComponent) uint64 {
	return xxhash.Sum64String(c.String())
}

// ensureName records name on the node the first time any table attaches a
// slot to it; later attachers reuse it rather than re-walking components.
func (n *nameTreeNode) ensureName(name *ndn.Name) {
	if n.Name == nil {
		n.Name = name
	}
}

func (n *nameTreeNode) childAt(component ndn.NameComponent) *nameTreeNode {
	for _, child := range n.children[componentBucket(component)] {
		if child.component.Equals(component) {
			return child
		}
	}
	return nil
}

func (n *nameTreeNode) addChild(child *nameTreeNode) {
	if n.children == nil {
		n.children = make(map[uint64][]*nameTreeNode)
	}
	bucket := componentBucket(child.component)
	n.children[bucket] = append(n.children[bucket], child)
}

func (n *nameTreeNode) removeChild(child *nameTreeNode) {
	bucket := componentBucket(child.component)
	siblings := n.children[bucket]
	for i, sibling := range siblings {
		if sibling == child {
			n.children[bucket] = append(siblings[:i], siblings[i+1:]...)
			if len(n.children[bucket]) == 0 {
				delete(n.children, bucket)
			}
			return
		}
	}
}

func (n *nameTreeNode) numChildren() int {
	total := 0
	for _, siblings := range n.children {
		total += len(siblings)
	}
	return total
}

// findExactMatchEntry returns the node for name, or nil if no node exists
// at that exact depth.
func (n *nameTreeNode) findExactMatchEntry(name *ndn.Name) *nameTreeNode {
	if name.Size() > n.depth {
		if child := n.childAt(name.At(n.depth)); child != nil {
			return child.findExactMatchEntry(name)
		}
		return nil
	} else if name.Size() == n.depth {
		return n
	}
	return nil
}

// findLongestPrefixEntry returns the deepest existing node that is a
// prefix of name (possibly n itself, if no child matches at all).
func (n *nameTreeNode) findLongestPrefixEntry(name *ndn.Name) *nameTreeNode {
	if name.Size() > n.depth {
		if child := n.childAt(name.At(n.depth)); child != nil {
			return child.findLongestPrefixEntry(name)
		}
	}
	return n
}

// fillTreeToPrefix returns the node for name, creating any missing
// intermediate nodes along the way.
func (n *nameTreeNode) fillTreeToPrefix(name *ndn.Name) *nameTreeNode {
	curNode := n.findLongestPrefixEntry(name)
	for depth := curNode.depth + 1; depth <= name.Size(); depth++ {
		newNode := &nameTreeNode{
			component: name.At(depth - 1).DeepCopy(),
			depth:     depth,
			parent:    curNode,
		}
		curNode.addChild(newNode)
		curNode = newNode
	}
	return curNode
}

// isEmpty reports whether no table has a slot filled in this node.
func (n *nameTreeNode) isEmpty() bool {
	return n.refCount == 0 && n.numChildren() == 0
}

// pruneIfEmpty removes n, and any ancestor left empty by n's removal,
// from the tree. Unlike the teacher's pointer tries this walks the actual
// chain of ancestors being pruned rather than repeatedly testing the
// original leaf against each ancestor's child list.
func (n *nameTreeNode) pruneIfEmpty() {
	for cur := n; cur.parent != nil && cur.isEmpty(); cur = cur.parent {
		cur.parent.removeChild(cur)
	}
}

// attachFIB installs entry's FIB slot on n, bumping the refcount only on
// the transition from unoccupied to occupied.
func (n *nameTreeNode) attachFIB(entry *FibStrategyEntry) {
	if n.fibEntry == nil {
		n.refCount++
	}
	n.fibEntry = entry
}

// detachFIB clears n's FIB slot, pruning the node (and any ancestors left
// empty) if nothing else still references it.
func (n *nameTreeNode) detachFIB() {
	if n.fibEntry != nil {
		n.fibEntry = nil
		n.refCount--
		n.pruneIfEmpty()
	}
}

// attachPIT adds entry to n's PIT bucket, bumping the refcount the first
// time the bucket goes from empty to non-empty.
func (n *nameTreeNode) attachPIT(entry *PitEntry) {
	if len(n.pitEntries) == 0 {
		n.refCount++
	}
	n.pitEntries = append(n.pitEntries, entry)
}

// detachPIT removes entry from n's PIT bucket, pruning the node once the
// bucket (and every other slot) is empty.
func (n *nameTreeNode) detachPIT(entry *PitEntry) bool {
	for i, existing := range n.pitEntries {
		if existing == entry {
			n.pitEntries = append(n.pitEntries[:i], n.pitEntries[i+1:]...)
			if len(n.pitEntries) == 0 {
				n.refCount--
				n.pruneIfEmpty()
			}
			return true
		}
	}
	return false
}

// attachCS installs entry's CS slot on n.
func (n *nameTreeNode) attachCS(entry *CsEntry) {
	if n.csEntry == nil {
		n.refCount++
	}
	n.csEntry = entry
}

// detachCS clears n's CS slot, pruning the node if nothing else references it.
func (n *nameTreeNode) detachCS() {
	if n.csEntry != nil {
		n.csEntry = nil
		n.refCount--
		n.pruneIfEmpty()
	}
}
