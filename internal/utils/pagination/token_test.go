package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	assert.NotEmpty(t, token, "Token should not be empty")

	parts, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)

	_, err = DecodeMultiFieldToken("not base64!")
	assert.Error(t, err, "Decoding an invalid token should return an error")
}

func TestDecodeOffsetToken(t *testing.T) {
	scope := Scope(map[string]string{"sortField": "date"})
	token := EncodeOffsetToken(20, scope)

	offset, err := DecodeOffsetToken(token, scope)
	require.NoError(t, err)
	assert.Equal(t, 20, offset)

	_, err = DecodeOffsetToken(token, Scope(map[string]string{"sortField": "amount"}))
	assert.ErrorContains(t, err, "different query")

	_, err = DecodeOffsetToken(EncodeMultiFieldToken(scope, "-1"), scope)
	assert.Error(t, err)

	_, err = DecodeOffsetToken(EncodeMultiFieldToken(scope), scope)
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	scope := Scope("q")

	page, next, err := Paginate(rows, 2, nil, scope)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, page)
	require.NotNil(t, next)

	page, next, err = Paginate(rows, 2, next, scope)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, page)
	require.NotNil(t, next)

	page, next, err = Paginate(rows, 2, next, scope)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, page)
	assert.Nil(t, next, "last page has no next token")
}

func TestPaginate_EdgeCases(t *testing.T) {
	rows := []string{"a", "b"}

	all, next, err := Paginate(rows, 0, nil, "s")
	require.NoError(t, err)
	assert.Equal(t, rows, all, "zero limit returns everything")
	assert.Nil(t, next)

	past := EncodeOffsetToken(10, "s")
	page, next, err := Paginate(rows, 1, &past, "s")
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Nil(t, next)

	_, _, err = Paginate(rows, -1, nil, "s")
	assert.Error(t, err)

	empty := ""
	page, _, err = Paginate(rows, 1, &empty, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, page)
}
