package view

import (
	"github.com/emplang/empc/internal/checker/borrow"
	"github.com/emplang/empc/internal/checker/drop"
	"github.com/emplang/empc/internal/checker/own"
	"github.com/emplang/empc/internal/checker/types"
	"github.com/emplang/empc/internal/diag"
)

// RunChecks drives the T->O->B->D pipeline (spec.md §2 "View builder")
// over v.Program, appending every phase's diagnostics to v.Diags and
// returning the combined list for convenience.
//
// Type errors abort the remaining phases: ownership, borrow, and drop
// analysis all assume v.Program already carries resolved types, so
// running them over an ill-typed program would only produce noise
// downstream of the real error.
func (v *View) RunChecks() *diag.List {
	typeDiags := types.Check(v.Program)
	v.Diags.Append(typeDiags)
	if typeDiags.Len() > 0 {
		return v.Diags
	}

	v.Diags.Append(own.Check(v.Program))
	v.Diags.Append(borrow.Check(v.Program))
	v.Diags.Append(drop.Insert(v.Program))
	return v.Diags
}
