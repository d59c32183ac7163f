package arbor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// globalDebug enables structural sanity checks. It mirrors the most recently
// set Scene debug flag; SetDebugMode toggles it directly.
var globalDebug bool

// debugOut receives debug warnings.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug checks for all trees. When enabled,
// structural edits involving unloaded nodes panic with a descriptive message
// and deep trees or crowded nodes produce warnings on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugCheckUnloaded panics with a descriptive message when an unloaded node is
// used in a tree operation. Only called in debug mode.
func debugCheckUnloaded(n *Node, op string) {
	if n.unloaded {
		panic(fmt.Sprintf("arbor debug: %s on unloaded node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[arbor] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOut, "[arbor] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders the subtree rooted at n, one node per line, indented by depth,
// with type, visibility and world position.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(dumpConfig.Sprintf("%s [%s] visible=%v pos=%v", n.Name, n.Type, n.Visible, n.WorldPosition()))
	if n.UserData != nil {
		sb.WriteString(" data=")
		sb.WriteString(dumpConfig.Sprintf("%+v", n.UserData))
	}
	sb.WriteByte('\n')
	for _, c := range n.children {
		c.dump(sb, depth+1)
	}
}
