package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/quillworks/controlsheet/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestConfigError(t *testing.T) {
	t.Run("with setting", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Setting: "APPS_URL",
			Message: "must be an http(s) URL",
		}
		assert.Equal(t, "configuration error for APPS_URL: must be an http(s) URL", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrConfigInvalid))
	})

	t.Run("without setting", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "no store access configured"}
		assert.Equal(t, "configuration error: no store access configured", err.Error())
		assert.True(t, pkgerrors.IsConfigError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.NewConfigError("APPS_TOKEN", "not set", base)
		assert.Contains(t, err.Error(), "APPS_TOKEN")
		assert.Equal(t, base, errors.Unwrap(err))
	})
}

func TestStoreError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.StoreError{
			Op:         "get",
			Table:      "Calendar",
			StatusCode: 502,
			Message:    "bad gateway",
		}
		assert.Equal(t, "store get on Calendar failed (status 502): bad gateway", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrStoreUnavailable))
	})

	t.Run("client status is not unavailability", func(t *testing.T) {
		err := pkgerrors.NewStoreError("updateRange", "Calendar", 403, "forbidden")
		assert.False(t, pkgerrors.IsStoreUnavailable(err))
	})

	t.Run("missing table maps to not found", func(t *testing.T) {
		err := pkgerrors.NewStoreError("get", "Reports", 404, "table not found")
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.False(t, pkgerrors.IsStoreUnavailable(err))
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapStore("append", "Quotes_Backlog", base)
		assert.Contains(t, err.Error(), "Quotes_Backlog")
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapStore("get", "Calendar", nil))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "quote_text",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field quote_text: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("status", "published", "not in canonical set")
		assert.Contains(t, err.Error(), "status")
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("a1", "ZZZ", "not a cell reference", nil)
	assert.Contains(t, err.Error(), "a1 parse error")
	assert.Contains(t, err.Error(), "ZZZ")
}

func TestIOError(t *testing.T) {
	base := errors.New("no such file")
	err := pkgerrors.WrapIO("read", "sources/book.txt", base)
	assert.Contains(t, err.Error(), "sources/book.txt")
	assert.Equal(t, base, errors.Unwrap(err.(*pkgerrors.IOError)))
}
