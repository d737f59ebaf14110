package taxonomy

import (
	"sort"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// PresentationTree is the ordered, depth-resolved view of one role's
// presentation relationships, ready for depth-first rendering.
type PresentationTree struct {
	Role     string
	Roots    []*TreeNode
	ByQName  map[xbrlmodel.QName]*TreeNode
}

// TreeNode is one node of a resolved PresentationTree.
type TreeNode struct {
	Node     xbrlmodel.PresentationNode
	Children []*TreeNode
}

// BuildPresentationTree assembles the parent-child arcs for a single role
// into an ordered forest. Children are sorted by Order at every level;
// Depth on each node is recomputed from the actual tree position rather
// than trusted from the source arcs, since linkbases never carry a depth
// field directly.
func BuildPresentationTree(role string, nodes []xbrlmodel.PresentationNode) *PresentationTree {
	byChild := make(map[xbrlmodel.QName]*TreeNode, len(nodes))
	childrenOf := make(map[xbrlmodel.QName][]*TreeNode)
	var rootCandidates []xbrlmodel.QName

	for _, n := range nodes {
		if n.Role != role {
			continue
		}
		tn := &TreeNode{Node: n}
		byChild[n.ElementQName] = tn
		childrenOf[n.ParentQName] = append(childrenOf[n.ParentQName], tn)
	}

	isChild := make(map[xbrlmodel.QName]bool, len(byChild))
	for _, n := range nodes {
		if n.Role != role {
			continue
		}
		isChild[n.ElementQName] = true
	}
	for qn := range childrenOf {
		if !isChild[qn] {
			rootCandidates = append(rootCandidates, qn)
		}
	}
	sort.Slice(rootCandidates, func(i, j int) bool { return rootCandidates[i] < rootCandidates[j] })

	tree := &PresentationTree{Role: role, ByQName: byChild}
	for _, rootQName := range rootCandidates {
		roots := childrenOf[rootQName]
		sortByOrder(roots)
		for _, r := range roots {
			resolveDepth(r, 0, childrenOf)
			tree.Roots = append(tree.Roots, r)
		}
	}
	return tree
}

func resolveDepth(n *TreeNode, depth int, childrenOf map[xbrlmodel.QName][]*TreeNode) {
	n.Node.Depth = depth
	kids := childrenOf[n.Node.ElementQName]
	sortByOrder(kids)
	n.Children = kids
	for _, c := range kids {
		resolveDepth(c, depth+1, childrenOf)
	}
}

func sortByOrder(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Node.Order < nodes[j].Node.Order
	})
}

// Walk visits every node of the tree depth-first, in presentation order.
func (t *PresentationTree) Walk(visit func(*TreeNode)) {
	var walk func([]*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			visit(n)
			walk(n.Children)
		}
	}
	walk(t.Roots)
}

// HypercubeIndex resolves a role's definition arcs into a usable dimensional
// index: which line-items concept is governed by which hypercube, and each
// hypercube's axes and default members.
type HypercubeIndex struct {
	// LineItemsHypercube maps a line-items concept to the hypercubes it is
	// bound to via an "all" arc (From=line-items, To=hypercube, per the
	// invariant ParseDefinitionLinkbase preserves).
	LineItemsHypercube map[xbrlmodel.QName][]xbrlmodel.QName
	Hypercubes         map[xbrlmodel.QName]xbrlmodel.Hypercube
}

// BuildHypercubeIndex resolves one role's definition arcs into a
// HypercubeIndex.
func BuildHypercubeIndex(role string, arcs []xbrlmodel.DefinitionArc) HypercubeIndex {
	idx := HypercubeIndex{
		LineItemsHypercube: make(map[xbrlmodel.QName][]xbrlmodel.QName),
		Hypercubes:         make(map[xbrlmodel.QName]xbrlmodel.Hypercube),
	}
	for _, a := range arcs {
		if a.Role != role {
			continue
		}
		switch a.ArcRole {
		case "all":
			idx.LineItemsHypercube[a.FromQName] = append(idx.LineItemsHypercube[a.FromQName], a.ToQName)
			hc := idx.Hypercubes[a.ToQName]
			hc.QName = a.ToQName
			idx.Hypercubes[a.ToQName] = hc
		case "hypercube-dimension":
			hc := idx.Hypercubes[a.FromQName]
			hc.QName = a.FromQName
			hc.Axes = append(hc.Axes, a.ToQName)
			idx.Hypercubes[a.FromQName] = hc
		case "dimension-default":
			hc := findHypercubeByAxis(idx.Hypercubes, a.FromQName)
			if hc == "" {
				continue
			}
			cube := idx.Hypercubes[hc]
			if cube.DefaultMember == nil {
				cube.DefaultMember = make(map[xbrlmodel.QName]xbrlmodel.QName)
			}
			cube.DefaultMember[a.FromQName] = a.ToQName
			idx.Hypercubes[hc] = cube
		}
	}
	return idx
}

func findHypercubeByAxis(hypercubes map[xbrlmodel.QName]xbrlmodel.Hypercube, axis xbrlmodel.QName) xbrlmodel.QName {
	for qn, hc := range hypercubes {
		for _, a := range hc.Axes {
			if a == axis {
				return qn
			}
		}
	}
	return ""
}
