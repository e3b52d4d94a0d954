// Package planner decides how a split directory is consolidated.
//
// Given every branch copy of one logical directory and its measured size,
// Build picks the largest copy as the target and emits, for each other
// copy, a transfer into the target followed by a prune of the emptied
// source. The planner is pure: it never touches the filesystem.
package planner

import (
	"path/filepath"
	"sort"
	"strings"
)

// OpKind identifies an operation type
type OpKind int

const (
	// OpTransfer moves the contents of Source into Dest, removing each
	// source file once copied.
	OpTransfer OpKind = iota
	// OpPruneEmptyDirs deletes the empty directories left under Source
	OpPruneEmptyDirs
)

func (k OpKind) String() string {
	switch k {
	case OpTransfer:
		return "transfer"
	case OpPruneEmptyDirs:
		return "prune"
	}
	return "unknown"
}

// SizedBranch is one branch copy and the bytes it holds
type SizedBranch struct {
	Path string
	Size uint64
}

// Operation is one step of a plan
type Operation struct {
	Kind   OpKind
	Source string
	// Dest is the target container for transfers, empty for prunes
	Dest string
}

// Plan is the ordered consolidation of one logical directory
type Plan struct {
	Directory string
	// Target is the directory containing the largest copy, with exactly
	// one trailing separator. Empty when there is nothing to do.
	Target     string
	Branches   []SizedBranch
	Operations []Operation
}

// Empty reports whether the plan has no operations
func (p *Plan) Empty() bool {
	return len(p.Operations) == 0
}

// Sources returns the branch paths moved into the target, in plan order
func (p *Plan) Sources() []string {
	var out []string
	for _, op := range p.Operations {
		if op.Kind == OpTransfer {
			out = append(out, op.Source)
		}
	}
	return out
}

// Largest returns the branch chosen as target. ok is false for plans with
// fewer than two branches.
func (p *Plan) Largest() (SizedBranch, bool) {
	if p.Target == "" || len(p.Branches) == 0 {
		return SizedBranch{}, false
	}
	return p.Branches[len(p.Branches)-1], true
}

// Build plans the consolidation of dir. Branches are ordered by size and
// then path, so among copies of equal maximum size the lexicographically
// greatest path becomes the target. Plan.Branches holds that order.
func Build(dir string, branches []SizedBranch) *Plan {
	sorted := make([]SizedBranch, len(branches))
	copy(sorted, branches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size < sorted[j].Size
		}
		return sorted[i].Path < sorted[j].Path
	})

	plan := &Plan{Directory: dir, Branches: sorted}
	if len(sorted) < 2 {
		return plan
	}

	largest := sorted[len(sorted)-1]
	plan.Target = containerOf(largest.Path)

	for _, b := range sorted[:len(sorted)-1] {
		if b.Path == largest.Path {
			continue
		}
		plan.Operations = append(plan.Operations,
			Operation{Kind: OpTransfer, Source: b.Path, Dest: plan.Target},
			Operation{Kind: OpPruneEmptyDirs, Source: b.Path},
		)
	}
	return plan
}

// containerOf returns the parent of path with exactly one trailing separator
func containerOf(path string) string {
	parent := filepath.Dir(strings.TrimRight(path, string(filepath.Separator)))
	sep := string(filepath.Separator)
	return strings.TrimRight(parent, sep) + sep
}
