package definition

import "strings"

// Serialize renders an expression tree back into a KEGG module definition
// string. It emits the minimal parenthesization needed to reparse to an
// equivalent tree: since Alt binds tighter than Seq, an Alt nested under a
// Seq never needs parens, but a Seq nested under an Alt always does. The
// synthetic "K00000" leaf produced for a bare "--" segment round-trips
// back to "--" rather than "-K00000".
func Serialize(root *Node) string {
	if root == nil {
		return ""
	}
	return renderTop(root)
}

func renderTop(n *Node) string {
	switch n.Kind {
	case KindSeq:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = renderUnderSeq(c)
		}
		return strings.Join(parts, " ")
	case KindAlt:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = renderUnderAlt(c)
		}
		return strings.Join(parts, ",")
	default:
		return renderLeaf(n)
	}
}

func renderUnderSeq(n *Node) string {
	if n.Kind == KindSeq {
		return "(" + renderTop(n) + ")"
	}
	return renderTop(n)
}

func renderUnderAlt(n *Node) string {
	if n.Kind == KindSeq {
		return "(" + renderTop(n) + ")"
	}
	return renderTop(n)
}

func renderLeaf(n *Node) string {
	if n.KO == "K00000" && n.Optional {
		return "--"
	}
	if n.Optional {
		return "-" + string(n.KO)
	}
	return string(n.KO)
}
