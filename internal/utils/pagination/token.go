package pagination

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxLimit caps the page size a caller may ask for.
const MaxLimit = 500

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// Scope fingerprints the query a token belongs to, so a token cannot be replayed
// against a different filter or sort.
func Scope(query any) string {
	raw, err := json.Marshal(query)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

// EncodeOffsetToken creates a token for offset based pagination within scope.
func EncodeOffsetToken(offset int, scope string) string {
	return EncodeMultiFieldToken(scope, strconv.Itoa(offset))
}

// DecodeOffsetToken returns the offset held by token. The token must have been issued
// for the same scope.
func DecodeOffsetToken(token, scope string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != scope {
		return 0, fmt.Errorf("pagination token was issued for a different query")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// Paginate returns one page of rows and the token for the next one. A limit of zero
// returns every row from the token's offset. The next token is nil on the last page.
func Paginate[T any](rows []T, limit int, token *string, scope string) ([]T, *string, error) {
	if limit < 0 {
		return nil, nil, fmt.Errorf("limit must not be negative")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := 0
	if token != nil && *token != "" {
		var err error
		if offset, err = DecodeOffsetToken(*token, scope); err != nil {
			return nil, nil, err
		}
	}
	if offset >= len(rows) {
		return []T{}, nil, nil
	}

	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := rows[offset:end]
	if end == len(rows) {
		return page, nil, nil
	}
	next := EncodeOffsetToken(end, scope)
	return page, &next, nil
}
