package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	conflict := New(KindStateConflict, "ALREADY_CLOCKED_IN", "already clocked in")
	wrapped := fmt.Errorf("clock in: %w", conflict)

	assert.Equal(t, KindStateConflict, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, conflict))
	assert.Equal(t, "ALREADY_CLOCKED_IN", CodeOf(wrapped))
	assert.True(t, IsRetryable(wrapped))

	vErr := validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	assert.Equal(t, KindValidation, KindOf(fmt.Errorf("create: %w", vErr)))
	assert.Equal(t, "VALIDATION_ERROR", CodeOf(vErr))

	denied := New(KindPolicyDenied, "ACCESS_DENIED", "access denied")
	assert.False(t, IsRetryable(denied))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}
