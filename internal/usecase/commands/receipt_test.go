//go:build unit

package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReceipt(t *testing.T) {
	bookingID := uuid.MustParse("0d4f9a2b-7c1e-4f3a-9b8d-112233445566")
	unixMilli := int64(1756358400123)

	receipt := buildReceipt(bookingID, unixMilli)

	// Gateway limit.
	assert.LessOrEqual(t, len(receipt), maxReceiptLen)

	parts := strings.Split(receipt, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "bk", parts[0])

	// Last 12 hex digits of the dashless booking ID.
	id := strings.ReplaceAll(bookingID.String(), "-", "")
	assert.Equal(t, id[len(id)-12:], parts[1])

	// Last 8 digits of the millisecond timestamp.
	ts := fmt.Sprintf("%d", unixMilli)
	assert.Equal(t, ts[len(ts)-8:], parts[2])
}

func TestBuildReceipt_Distinct(t *testing.T) {
	a := buildReceipt(uuid.New(), 1756358400123)
	b := buildReceipt(uuid.New(), 1756358400123)
	assert.NotEqual(t, a, b)
}
