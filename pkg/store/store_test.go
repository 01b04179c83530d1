package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/store"
)

func TestNewSelectsGateway(t *testing.T) {
	c, err := store.New(store.Config{
		GatewayURL:   "https://example.test/exec",
		GatewayToken: "tok",
		// direct path also configured; gateway wins
		SpreadsheetID: "sheet-123",
		AccessToken:   "tok2",
	})
	require.NoError(t, err)
	assert.IsType(t, &store.Gateway{}, c)
}

func TestNewSelectsSheets(t *testing.T) {
	c, err := store.New(store.Config{
		SpreadsheetID: "sheet-123",
		AccessToken:   "tok",
	})
	require.NoError(t, err)
	assert.IsType(t, &store.Sheets{}, c)
}

func TestNewUnconfigured(t *testing.T) {
	_, err := store.New(store.Config{})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}
