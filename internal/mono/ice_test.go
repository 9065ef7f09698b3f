package mono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
	"github.com/ailang-tools/monomorph/internal/monotypes"
)

func TestICEErrorAsIdentifiesCode(t *testing.T) {
	pos := ast.Pos{File: "show.ail", Line: 3}
	err := newICE(aerrors.MONO005, pos, "no instance and no default body", opStr("Show"), opStr("show"))

	var ice *ICE
	require.ErrorAs(t, err, &ice, "newICE should produce a type assertable back to *ICE")
	assert.Equal(t, aerrors.MONO005, ice.Code)
	assert.Equal(t, pos, ice.Pos)
	assert.True(t, aerrors.IsMonoError(ice.Code))
}

// TestRecoverToICEWrapsPanic checks that recoverToICE converts a
// monotypes panic (here, an associated-type application with no
// reduction in the equality environment) into a *ICE carrying the
// requested code, rather than letting the panic propagate.
func TestRecoverToICEWrapsPanic(t *testing.T) {
	pos := ast.Pos{File: "assoc.ail", Line: 5}
	assocType := &air.TAssoc{Assoc: "Elem", Arg: &air.TConst{Name: "Int", K: air.Value}, K: air.Value}
	emptyEnv := monotypes.Empty(air.EqEnv{})

	run := func() (err error) {
		defer recoverToICE(aerrors.MONO004, pos, &err)
		emptyEnv.Apply(assocType)
		return nil
	}

	err := run()
	require.Error(t, err)

	var ice *ICE
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, aerrors.MONO004, ice.Code)
	assert.Equal(t, pos, ice.Pos)
}
