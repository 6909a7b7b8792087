package merkle

import (
	"github.com/nspcc-dev/zkchain/crypto"
)

// Transcript labels of the tree construction. Changing any of them changes
// every root.
const (
	domainLabel = "ZkVM.merkle"
	dstLabel    = "dst"
	itemLabel   = "txid"
	leftLabel   = "L"
	rightLabel  = "R"
	emptyLabel  = "merkle.empty"
	leafLabel   = "merkle.leaf"
	nodeLabel   = "merkle.node"
)

type (
	// Tree represents a merkle tree with specified depth.
	Tree struct {
		Depth int

		root *TreeNode
	}

	// TreeNode represents inner node of a merkle tree.
	TreeNode struct {
		Hash   crypto.Uint256
		Parent *TreeNode
		Left   *TreeNode
		Right  *TreeNode
	}
)

// NewMerkleTree returns new merkle tree built on hashes under the domain
// label. The tree over zero hashes consists of a single empty node.
func NewMerkleTree(label string, hashes ...crypto.Uint256) *Tree {
	mt := &Tree{root: buildTree(label, hashes)}
	mt.Depth = 1

	for node := mt.root; node.Left != nil; node = node.Left {
		mt.Depth++
	}

	return mt
}

// Root returns the root hash of the tree over hashes without keeping
// intermediate nodes.
func Root(label string, hashes ...crypto.Uint256) crypto.Uint256 {
	return rootHash(label, hashes)
}

// Root returns m's root.
func (m *Tree) Root() *TreeNode {
	return m.root
}

func buildTree(label string, hashes []crypto.Uint256) *TreeNode {
	switch len(hashes) {
	case 0:
		return &TreeNode{Hash: emptyHash(label)}
	case 1:
		return &TreeNode{Hash: leafHash(label, hashes[0])}
	}

	k := splitPoint(len(hashes))
	parent := &TreeNode{
		Left:  buildTree(label, hashes[:k]),
		Right: buildTree(label, hashes[k:]),
	}
	parent.Left.Parent = parent
	parent.Right.Parent = parent
	parent.Hash = nodeHash(label, parent.Left.Hash, parent.Right.Hash)

	return parent
}

func rootHash(label string, hashes []crypto.Uint256) crypto.Uint256 {
	switch len(hashes) {
	case 0:
		return emptyHash(label)
	case 1:
		return leafHash(label, hashes[0])
	}

	k := splitPoint(len(hashes))
	return nodeHash(label, rootHash(label, hashes[:k]), rootHash(label, hashes[k:]))
}

// splitPoint returns the largest power of two strictly less than n, n > 1.
func splitPoint(n int) int {
	k := 1
	for k*2 < n {
		k *= 2
	}
	return k
}

// newTranscript returns the base transcript every node starts from.
func newTranscript(label string) *crypto.Transcript {
	t := crypto.NewTranscript(domainLabel)
	t.CommitBytes(dstLabel, []byte(label))
	return t
}

func emptyHash(label string) crypto.Uint256 {
	return newTranscript(label).ChallengeUint256(emptyLabel)
}

func leafHash(label string, item crypto.Uint256) crypto.Uint256 {
	t := newTranscript(label)
	t.CommitBytes(itemLabel, item[:])
	return t.ChallengeUint256(leafLabel)
}

func nodeHash(label string, left, right crypto.Uint256) crypto.Uint256 {
	t := newTranscript(label)
	t.CommitBytes(leftLabel, left[:])
	t.CommitBytes(rightLabel, right[:])
	return t.ChallengeUint256(nodeLabel)
}

// IsLeaf returns true iff n is a leaf.
func (n *TreeNode) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// IsRoot returns true iff n is a root.
func (n *TreeNode) IsRoot() bool { return n.Parent == nil }
