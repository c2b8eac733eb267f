package pathway

import (
	"testing"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

func kos(values ...string) map[definition.KO]struct{} {
	out := make(map[definition.KO]struct{}, len(values))
	for _, v := range values {
		out[definition.KO(v)] = struct{}{}
	}
	return out
}

func evalDef(t *testing.T, def string, observed ...string) EvaluationResult {
	t.Helper()
	p, err := NewPathway("M00000", "test", nil, def)
	if err != nil {
		t.Fatalf("NewPathway(%q): %v", def, err)
	}
	res, err := p.Evaluate(kos(observed...))
	if err != nil {
		t.Fatalf("Evaluate(%q, %v): %v", def, observed, err)
	}
	return res
}

// TestEvaluateEmptyInput checks that an empty observed KO set yields
// coverage zero and an empty path, for any non-trivial module.
func TestEvaluateEmptyInput(t *testing.T) {
	res := evalDef(t, "K01 (K02,K03) K04")
	if res.Coverage != 0 {
		t.Errorf("coverage = %v, want 0", res.Coverage)
	}
	if len(res.MostCompletePath) != 0 {
		t.Errorf("most_complete_path = %v, want empty", res.MostCompletePath)
	}
	if len(res.StepCoverage) != 0 {
		t.Errorf("step_coverage = %v, want empty", res.StepCoverage)
	}
}

// TestEvaluateTrivialDefinition exercises the trivial-graph edge case
// for an empty module definition.
func TestEvaluateTrivialDefinition(t *testing.T) {
	res := evalDef(t, "", "K01")
	if res.Coverage != 0 {
		t.Errorf("coverage = %v, want 0", res.Coverage)
	}
	if len(res.MostCompletePath) != 0 {
		t.Errorf("most_complete_path = %v, want empty", res.MostCompletePath)
	}
}

// TestEvaluateFullCoverage checks that observing every KO on the best
// path drives coverage to 1.
func TestEvaluateFullCoverage(t *testing.T) {
	res := evalDef(t, "K01 (K02,K03) K04", "K01", "K02", "K04")
	if res.Coverage != 1 {
		t.Errorf("coverage = %v, want 1", res.Coverage)
	}
	want := []definition.KO{"K01", "K02", "K04"}
	if len(res.MostCompletePath) != len(want) {
		t.Fatalf("path = %v, want %v", res.MostCompletePath, want)
	}
	for i, k := range want {
		if res.MostCompletePath[i] != k {
			t.Errorf("path[%d] = %s, want %s", i, res.MostCompletePath[i], k)
		}
	}
	for i, s := range res.StepCoverage {
		if s != 1 {
			t.Errorf("step_coverage[%d] = %d, want 1", i, s)
		}
	}
}

// TestEvaluatePartialCoverage checks that "(K01,K02) K03" evaluated
// against just {K03} yields coverage 0.5 along a two-edge best path.
func TestEvaluatePartialCoverage(t *testing.T) {
	res := evalDef(t, "(K01,K02) K03", "K03")
	if res.Coverage != 0.5 {
		t.Errorf("coverage = %v, want 0.5", res.Coverage)
	}
	if len(res.MostCompletePath) != 2 {
		t.Fatalf("path = %v, want 2 steps", res.MostCompletePath)
	}
	if res.MostCompletePath[1] != "K03" {
		t.Errorf("path = %v, want last step K03", res.MostCompletePath)
	}
	want := []int{0, 1}
	for i, s := range want {
		if res.StepCoverage[i] != s {
			t.Errorf("step_coverage = %v, want %v", res.StepCoverage, want)
		}
	}
}

// TestEvaluateCoverageBounds checks that coverage is always within [0, 1].
func TestEvaluateCoverageBounds(t *testing.T) {
	defs := []string{
		"K01",
		"K01 K02 K03",
		"K01,K02,K03",
		"(K01,K02) K03 (K04,K05)",
	}
	observations := [][]string{
		{},
		{"K01"},
		{"K01", "K02"},
		{"K01", "K02", "K03", "K04", "K05"},
		{"K99999"},
	}
	for _, def := range defs {
		for _, obs := range observations {
			res := evalDef(t, def, obs...)
			if res.Coverage < 0 || res.Coverage > 1 {
				t.Errorf("def %q obs %v: coverage = %v, out of bounds", def, obs, res.Coverage)
			}
			if len(res.StepCoverage) != len(res.MostCompletePath) {
				t.Errorf("def %q obs %v: step_coverage len %d != path len %d", def, obs, len(res.StepCoverage), len(res.MostCompletePath))
			}
			if res.NumberOfBestPaths < 1 {
				t.Errorf("def %q obs %v: number_of_best_paths = %d, want >= 1", def, obs, res.NumberOfBestPaths)
			}
		}
	}
}

// TestEvaluateMonotonicity checks that adding an observed KO never
// decreases coverage.
func TestEvaluateMonotonicity(t *testing.T) {
	def := "K01 (K02,K03) K04 -K05"
	progressions := [][]string{
		{},
		{"K01"},
		{"K01", "K02"},
		{"K01", "K02", "K04"},
		{"K01", "K02", "K04", "K05"},
	}
	prev := -1.0
	for _, obs := range progressions {
		res := evalDef(t, def, obs...)
		if res.Coverage < prev {
			t.Errorf("coverage decreased to %v after observing %v (was %v)", res.Coverage, obs, prev)
		}
		prev = res.Coverage
	}
}

// TestEvaluateOptionalKODoesNotBlockFullCoverage checks that a module
// with an optional step reaches coverage 1 without that step being
// observed.
func TestEvaluateOptionalKODoesNotBlockFullCoverage(t *testing.T) {
	res := evalDef(t, "K01 -K02 K03", "K01", "K03")
	if res.Coverage != 1 {
		t.Errorf("coverage = %v, want 1 (optional K02 should not gate completeness)", res.Coverage)
	}
	for ko := range res.RequiredKOsMissingInPath {
		if ko == "K02" {
			t.Errorf("K02 is optional and must not appear in required_kos_missing_in_path")
		}
	}
}

// TestEvaluateOptionalStepCoverageIsOneWhenUnobserved locks in the rule
// that a step reports covered iff its edge's current weight is zero: an
// optional step starts at weight 0 by construction, so it must report
// covered even though its KO was never observed.
func TestEvaluateOptionalStepCoverageIsOneWhenUnobserved(t *testing.T) {
	res := evalDef(t, "K01 -K02 K03", "K01", "K03")
	if len(res.StepCoverage) != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", len(res.StepCoverage), res.StepCoverage)
	}
	want := []int{1, 1, 1}
	for i, v := range want {
		if res.StepCoverage[i] != v {
			t.Errorf("step_coverage[%d] = %v, want %v (full: %v)", i, res.StepCoverage[i], v, res.StepCoverage)
		}
	}
}

// TestEvaluateNoOverlapShortcut checks that a KO set wholly unrelated to
// the module's indexed KOs behaves exactly like the empty-set case.
func TestEvaluateNoOverlapShortcut(t *testing.T) {
	res := evalDef(t, "K01 K02", "K99999")
	if res.Coverage != 0 {
		t.Errorf("coverage = %v, want 0", res.Coverage)
	}
	if len(res.MostCompletePath) != 0 {
		t.Errorf("most_complete_path = %v, want empty", res.MostCompletePath)
	}
}

// TestEvaluateFirstParallelEdgeOnlyZeroed locks in the Open Question
// decision: when a KO's (u,v) pair has multiple parallel edges sharing
// that label, only the first is zeroed.
func TestEvaluateFirstParallelEdgeOnlyZeroed(t *testing.T) {
	p, err := NewPathway("M00000", "test", nil, "K01,K01,K02")
	if err != nil {
		t.Fatalf("NewPathway: %v", err)
	}
	res, err := p.Evaluate(kos("K01"))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Coverage != 1 {
		t.Errorf("coverage = %v, want 1 (one zeroed K01 edge should still complete the module)", res.Coverage)
	}
	if res.NumberOfBestPaths != 1 {
		t.Errorf("number_of_best_paths = %d, want 1 (only the first K01 edge is zeroed)", res.NumberOfBestPaths)
	}
}
