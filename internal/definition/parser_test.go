package definition

import (
	"reflect"
	"testing"
)

func TestParseSeq(t *testing.T) {
	root, optional, err := Parse("K01 K02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(optional) != 0 {
		t.Errorf("expected no optional KOs, got %v", optional)
	}
	if root.Kind != KindSeq || len(root.Children) != 2 {
		t.Fatalf("got %+v, want a 2-child Seq", root)
	}
	if root.Children[0].KO != "K01" || root.Children[1].KO != "K02" {
		t.Errorf("unexpected leaf KOs: %+v", root.Children)
	}
}

func TestParseAlt(t *testing.T) {
	root, _, err := Parse("K01,K02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != KindAlt || len(root.Children) != 2 {
		t.Fatalf("got %+v, want a 2-child Alt", root)
	}
}

func TestParseAltBindsTighterThanSeq(t *testing.T) {
	// "(K01,K02) K03" and its unparenthesized form should parse
	// identically because Alt already binds tighter than Seq.
	withParens, _, err := Parse("(K01,K02) K03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bare, _, err := Parse("K01,K02 K03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(stripOptional(withParens), stripOptional(bare)) {
		t.Errorf("expected equivalent trees, got %+v vs %+v", withParens, bare)
	}
	if withParens.Kind != KindSeq || len(withParens.Children) != 2 {
		t.Fatalf("got %+v, want Seq(Alt, Leaf)", withParens)
	}
	if withParens.Children[0].Kind != KindAlt {
		t.Errorf("expected first child to be Alt, got %+v", withParens.Children[0])
	}
}

func TestParseNestedGroupFlattening(t *testing.T) {
	// A redundant single-child group should vanish after flattening.
	root, _, err := Parse("((K01))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != KindLeaf || root.KO != "K01" {
		t.Fatalf("got %+v, want bare leaf K01", root)
	}
}

func TestParseOptionalSingleKO(t *testing.T) {
	root, optional, err := Parse("K01 -K02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := optional["K02"]; !ok {
		t.Errorf("expected K02 to be optional, got %v", optional)
	}
	if _, ok := optional["K01"]; ok {
		t.Errorf("K01 should not be optional")
	}
	leaf := root.Children[1]
	if !leaf.Optional || leaf.KO != "K02" {
		t.Errorf("got %+v, want optional leaf K02", leaf)
	}
}

func TestParseOptionalGroup(t *testing.T) {
	root, optional, err := Parse("K01 -(K02,K03)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []KO{"K02", "K03"} {
		if _, ok := optional[want]; !ok {
			t.Errorf("expected %s to be optional", want)
		}
	}
	group := root.Children[1]
	if group.Kind != KindAlt {
		t.Fatalf("got %+v, want Alt", group)
	}
	for _, c := range group.Children {
		if !c.Optional {
			t.Errorf("leaf %+v under a MINUS-marked group should be optional", c)
		}
	}
}

func TestParseMissingKOPlaceholder(t *testing.T) {
	root, optional, err := Parse("K01 -- K02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != KindSeq || len(root.Children) != 3 {
		t.Fatalf("got %+v, want a 3-step Seq", root)
	}
	mid := root.Children[1]
	if mid.Kind != KindLeaf || mid.KO != "K00000" || !mid.Optional {
		t.Errorf("got %+v, want optional leaf K00000", mid)
	}
	if _, ok := optional["K00000"]; !ok {
		t.Errorf("expected K00000 to be marked optional")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want interface{}
	}{
		{"unbalanced open", "(K01 K02", &UnbalancedParenError{}},
		{"unbalanced close", "K01 K02)", &UnbalancedParenError{}},
		{"empty group", "()", &EmptyGroupError{}},
		{"empty alternative", "K01,,K02", &EmptyGroupError{}},
		{"trailing comma", "K01,", &EmptyGroupError{}},
		{"stray comma", ",K01", &UnexpectedTokenError{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.src)
			if err == nil {
				t.Fatalf("expected error for %q", tc.src)
			}
			gotType := reflect.TypeOf(err)
			wantType := reflect.TypeOf(tc.want)
			if gotType != wantType {
				t.Errorf("got error type %s, want %s (err: %v)", gotType, wantType, err)
			}
		})
	}
}

// stripOptional returns a copy of the tree with Optional flags zeroed, so
// structurally-equivalent trees compare equal regardless of how they were
// annotated.
func stripOptional(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind, KO: n.KO}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, stripOptional(c))
	}
	return cp
}
