package tnode

import (
	"fmt"
	"strings"
)

// Dump returns a line-oriented description of the tree rooted at n, with two
// spaces of indentation per level. Only fields with non-zero values are
// shown.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if n.Tag != "" {
		fmt.Fprintf(sb, " Tag=%s", n.Tag)
	}
	if n.Size != 0 {
		fmt.Fprintf(sb, " Size=%d", n.Size)
	}
	if n.Mark != "" {
		fmt.Fprintf(sb, " Mark=%q", n.Mark)
	}
	if n.Complex {
		sb.WriteString(" Complex")
	}
	if n.Lang != "" {
		fmt.Fprintf(sb, " Lang=%q", n.Lang)
	}
	if n.Info != "" {
		fmt.Fprintf(sb, " Info=%q", n.Info)
	}
	if n.Name != "" {
		fmt.Fprintf(sb, " Name=%q", n.Name)
	}
	if n.Args != "" {
		fmt.Fprintf(sb, " Args=%q", n.Args)
	}
	if n.Link != "" {
		fmt.Fprintf(sb, " Link=%q", n.Link)
	}
	if n.ID != "" {
		fmt.Fprintf(sb, " ID=%q", n.ID)
	}
	if n.Oneliner {
		sb.WriteString(" Oneliner")
	}
	if n.Text != "" {
		fmt.Fprintf(sb, " Text=%q", n.Text)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}
