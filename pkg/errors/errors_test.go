package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

func TestNew_CapturesCodeAndMessage(t *testing.T) {
	t.Parallel()
	err := errors.New(errors.ErrCodeModelLoadFailed, "snapshot truncated")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeModelLoadFailed, err.Code)
	assert.Equal(t, "snapshot truncated", err.Message)
	assert.NotEmpty(t, err.Stack)
}

func TestError_FormatWithAndWithoutDetail(t *testing.T) {
	t.Parallel()
	err := errors.New(errors.ErrCodeNotFound, "no such timeframe")
	assert.Equal(t, "[COMMON_003] no such timeframe", err.Error())

	withDetail := err.WithDetail("timeframe=decade")
	assert.Equal(t, "[COMMON_003] no such timeframe: timeframe=decade", withDetail.Error())
	// Original is not mutated.
	assert.Empty(t, err.Detail)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, errors.Wrap(nil, errors.ErrCodeStoreWriteFailed, "save failed"))
}

func TestWrap_PreservesCauseChain(t *testing.T) {
	t.Parallel()
	root := stderrors.New("disk full")
	wrapped := errors.Wrap(root, errors.ErrCodeStoreWriteFailed, "failed to persist forecasts")
	require.NotNil(t, wrapped)
	assert.True(t, stderrors.Is(wrapped, root))
	assert.Equal(t, root, wrapped.Unwrap())
}

func TestWrap_CodeUnknownPreservesOriginalCode(t *testing.T) {
	t.Parallel()
	inner := errors.New(errors.ErrCodeWatchlistDuplicateEntry, "already tracked")
	outer := errors.Wrap(inner, errors.CodeUnknown, "add failed")
	assert.Equal(t, errors.ErrCodeWatchlistDuplicateEntry, outer.Code)
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()
	inner := errors.New(errors.ErrCodeModelEmptyImportance, "nothing to normalize")
	outer := fmt.Errorf("train: %w", inner)
	assert.True(t, errors.IsCode(outer, errors.ErrCodeModelEmptyImportance))
	assert.False(t, errors.IsCode(outer, errors.ErrCodeModelSaveFailed))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeModelSaveFailed))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", errors.NotFound("missing"), true},
		{"timeframe unknown", errors.New(errors.ErrCodeForecastTimeframeUnknown, "decade"), true},
		{"watchlist entry", errors.New(errors.ErrCodeWatchlistEntryNotFound, "x"), true},
		{"conflict", errors.Conflict("dup"), false},
		{"plain error", stderrors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeCacheError,
		errors.GetCode(errors.New(errors.ErrCodeCacheError, "redis down")))
}

func TestWithCause(t *testing.T) {
	t.Parallel()
	root := stderrors.New("root")
	err := errors.Internal("unexpected").WithCause(root)
	assert.True(t, stderrors.Is(err, root))

	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithCause(root))
	assert.Nil(t, nilErr.WithDetail("x"))
}
