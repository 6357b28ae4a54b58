package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/tangzhangming/exprlex/internal/lexer"
)

func TestLexLinesAllValid(t *testing.T) {
	src := "1 + 2\n\n  x + y  \r\n"

	results, err := LexLines(src, []string{"+"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, 0, results[0].Start)
	assert.Len(t, results[0].Tokens, 3)

	assert.Equal(t, 3, results[1].Line)
	assert.Equal(t, 7, results[1].Start)
	assert.Equal(t, "  x + y  ", results[1].Expression)
	assert.Nil(t, results[1].Err)
	assert.Equal(t, 0, Failed(results))
}

func TestLexLinesCombinesErrors(t *testing.T) {
	src := "1 2\na + b\n123abc"

	results, err := LexLines(src, []string{"+"})
	require.Error(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, Failed(results))

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var lineErr *LineError
	require.True(t, errors.As(errs[0], &lineErr))
	assert.Equal(t, 1, lineErr.Line)
	assert.ErrorIs(t, errs[0], lexer.ExpectedOperator)
	assert.ErrorIs(t, errs[1], lexer.InvalidNumberSuffix)
	assert.Equal(t, "line 3: invalid character in number at 'abc...' (offset: 3)", errs[1].Error())

	assert.Equal(t, 10, results[2].Start)
	assert.NotNil(t, results[0].Err)
	assert.Nil(t, results[1].Err)
}

func TestLexLinesEmpty(t *testing.T) {
	results, err := LexLines("", nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
