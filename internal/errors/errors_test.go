package errors_test

import (
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, apperrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("keeps chain", func(t *testing.T) {
		err := apperrors.Wrapf(apperrors.ErrNotFound, "[sections Get] %s", "hero")
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		require.Equal(t, "[sections Get] hero: not found", err.Error())
	})
}

func TestValidationf(t *testing.T) {
	err := apperrors.Validationf("password must be at least %d characters", 4)
	require.True(t, apperrors.Is(err, apperrors.ErrValidation))
	require.Equal(t, "password must be at least 4 characters", apperrors.Reason(err))

	wrapped := fmt.Errorf("[server changePassword] %w", err)
	require.True(t, apperrors.Is(wrapped, apperrors.ErrValidation))
	require.Equal(t, "password must be at least 4 characters", apperrors.Reason(wrapped))

	require.Empty(t, apperrors.Reason(apperrors.ErrValidation))
}
