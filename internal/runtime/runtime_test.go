package runtime

import (
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/karimwahba/groclist/internal/errors"
	"github.com/karimwahba/groclist/internal/output"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := New(Options{
		InMemory:  true,
		Format:    output.FormatCLI,
		ColorMode: output.ColorNever,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func TestNewContext(t *testing.T) {
	ctx := newTestContext(t)

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.ItemRepo)
	assert.NotNil(t, ctx.ReminderRepo)
	assert.NotNil(t, ctx.ChannelRepo)
	assert.NotNil(t, ctx.Formatter)
}

func TestEnvDatabaseOverride(t *testing.T) {
	t.Setenv("GROCLIST_DATABASE", ":memory:")

	ctx, err := New(Options{Format: output.FormatJSON})
	require.NoError(t, err)
	defer ctx.Close()

	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
}

func TestFormatErrorIncludesSuggestion(t *testing.T) {
	msg := FormatError(apperrors.ErrItemNotFound)
	assert.Contains(t, msg, apperrors.ErrItemNotFound.Error())
	assert.Contains(t, msg, "groclist list")
}

func TestIsDiskFullError(t *testing.T) {
	assert.False(t, IsDiskFullError(nil))
	assert.False(t, IsDiskFullError(fmt.Errorf("plain error")))

	assert.True(t, IsDiskFullError(syscall.ENOSPC))
	assert.True(t, IsDiskFullError(fmt.Errorf("write failed: no space left on device")))

	wrapped := WrapDiskFullError(syscall.ENOSPC, "write", "/tmp/db")
	assert.True(t, IsDiskFullError(wrapped))
	assert.Contains(t, wrapped.Error(), "/tmp/db")
}
