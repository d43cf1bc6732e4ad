package er

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCode(t *testing.T) {
	require.Equal(t, NotFoundCode, GetCode(New(NotFoundCode, "order not found")))
	require.Equal(t, InternalErrorCode, GetCode(errors.New("plain error")))
	require.Equal(t, InternalErrorCode, GetCode(nil))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(ConflictCode, "email already registered", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, ConflictCode, GetCode(err))

	wrapped := fmt.Errorf("register: %w", err)
	require.Equal(t, ConflictCode, GetCode(wrapped))
}

func TestNewf(t *testing.T) {
	err := Newf(InsufficientStockCode, "only %d left in stock", 3)
	require.Equal(t, "only 3 left in stock", err.Message)
	require.Contains(t, err.Error(), "462")
}
