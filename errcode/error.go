// Package errcode gives category-2 programming-error invariants (SPEC_FULL
// §7) a typed, stringer-backed error code — the same ProjectError/New/
// IsErrorCode shape as the teacher's errcode package, narrowed to this
// module's three domains (store, view, consensus) in place of the
// teacher's script/tx/block/mempool/rpc catalog, none of which this cache
// touches. Category-3 failures (backing-store I/O) skip the code system
// entirely and are just github.com/pkg/errors-wrapped plain errors, per
// SPEC_FULL's ambient-stack section.
package errcode

import (
	"fmt"
)

const (
	StoreErrorBase = iota * 1000
	ViewErrorBase
	ConsensusErrorBase
)

type ProjectError struct {
	Module string
	Code   int
	Desc   string
}

func (e ProjectError) Error() string {
	return fmt.Sprintf("module: %s, global errcode: %v,  errdesc: %s", e.Module, e.Code, e.Desc)
}

func getCodeAndName(errCode fmt.Stringer) (int, string) {
	code := 0
	name := ""

	switch t := errCode.(type) {
	case StoreErr:
		code = int(t)
		name = "store"
	case ViewErr:
		code = int(t)
		name = "view"
	case ConsensusErr:
		code = int(t)
		name = "consensus"
	default:
	}

	return code, name
}

func IsErrorCode(err error, errCode fmt.Stringer) bool {
	e, ok := err.(ProjectError)
	icode, _ := getCodeAndName(errCode)
	return ok && icode == e.Code
}

func New(errCode fmt.Stringer) error {
	code, name := getCodeAndName(errCode)

	return ProjectError{
		Module: name,
		Code:   code,
		Desc:   errCode.String(),
	}
}
