// Package mono implements whole-program monomorphization over the IR
// in internal/air: a work-queue-driven driver that specializes every
// reachable definition at every concrete type it is demanded at,
// resolving trait-signature references to instance (or default) method
// bodies along the way.
package mono

import (
	"fmt"

	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
)

// ICE ("internal compiler error") is returned for every condition that
// is impossible once type checking has accepted the program: a failed
// unification, an unbound variable, a missing trait instance, an
// unreducible associated type, a missing erasure default. It carries
// the phase-tagged error code from internal/errors, the source
// location of the offending expression, and the operands involved.
type ICE struct {
	Code     string
	Pos      ast.Pos
	Message  string
	Operands []fmt.Stringer
}

func (e *ICE) Error() string {
	info, _ := aerrors.GetErrorInfo(e.Code)
	if len(e.Operands) == 0 {
		return fmt.Sprintf("%s (%s) at %s: %s", e.Code, info.Description, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s (%s) at %s: %s %v", e.Code, info.Description, e.Pos, e.Message, e.Operands)
}

func newICE(code string, pos ast.Pos, msg string, operands ...fmt.Stringer) *ICE {
	return &ICE{Code: code, Pos: pos, Message: msg, Operands: operands}
}

// AsReport renders the ICE as the compiler's structured diagnostic
// type (internal/errors.Report), so a caller that already knows how to
// print or serialize a Report doesn't need a second rendering path
// just for this pass's errors.
func (e *ICE) AsReport() *aerrors.Report {
	data := map[string]any{}
	for i, op := range e.Operands {
		data[fmt.Sprintf("operand%d", i)] = op.String()
	}
	return &aerrors.Report{
		Schema:  "ailang.error/v1",
		Code:    e.Code,
		Phase:   "mono",
		Message: e.Message,
		Span:    &ast.Span{Start: e.Pos, End: e.Pos},
		Data:    data,
	}
}

// recoverToICE converts a panic raised by internal/monotypes (a
// missing associated-type reduction, an unhandled type case, or any
// other "this cannot happen after type checking" condition) into an
// ICE attributed to pos, so it surfaces through the Driver's ordinary
// error return rather than crashing the process. Genuine programmer
// bugs (a duplicate result store in the registry) still panic past this
// boundary — see registry.go.
func recoverToICE(code string, pos ast.Pos, err *error) {
	if r := recover(); r != nil {
		*err = newICE(code, pos, fmt.Sprintf("%v", r))
	}
}

type stringerType struct{ air.Type }

func opType(t air.Type) fmt.Stringer { return stringerType{t} }

type stringerStr string

func (s stringerStr) String() string { return string(s) }

func opStr(s string) fmt.Stringer { return stringerStr(s) }
