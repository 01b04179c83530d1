package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/store"
	"github.com/quillworks/controlsheet/pkg/tables"
)

func TestNewGatewayValidation(t *testing.T) {
	_, err := store.NewGateway("not-a-url", "tok", time.Second)
	assert.True(t, errors.IsConfigError(err))

	_, err = store.NewGateway("https://example.test/exec", "", time.Second)
	assert.True(t, errors.IsConfigError(err))

	g, err := store.NewGateway("https://example.test/exec", "tok", time.Second)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestGatewayGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "get", q.Get("op"))
		assert.Equal(t, "Calendar", q.Get("sheet"))
		assert.Equal(t, "secret", q.Get("token"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"headers": []string{"date", "platform", "cxo_score"},
			"rows": []map[string]any{
				{"date": 45720, "platform": "Instagram", "cxo_score": 7.5},
				{"date": "2025-03-05", "platform": nil, "cxo_score": ""},
			},
		})
	}))
	defer srv.Close()

	g, err := store.NewGateway(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	snap, err := g.Get(context.Background(), tables.Calendar)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "platform", "cxo_score"}, snap.Headers)
	require.Len(t, snap.Rows, 2)
	// numeric cells flatten without a trailing ".0"
	assert.Equal(t, "45720", snap.Rows[0]["date"])
	assert.Equal(t, "7.5", snap.Rows[0]["cxo_score"])
	assert.Equal(t, "", snap.Rows[1]["platform"])
}

func TestGatewayPostOps(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	g, err := store.NewGateway(srv.URL, "secret", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, g.EnsureTable(ctx, tables.Analytics, []string{"metric", "value"}))
	assert.Equal(t, "ensureSheet", got["op"])
	assert.Equal(t, "Analytics", got["sheet"])
	assert.Equal(t, "secret", got["token"])

	require.NoError(t, g.UpdateRange(ctx, tables.Calendar, "A2:L3", [][]string{{"2025-03-04"}}))
	assert.Equal(t, "updateRange", got["op"])
	assert.Equal(t, "A2:L3", got["a1"])

	require.NoError(t, g.UpdateCell(ctx, tables.QuotesBacklog, "M2", "proposed"))
	assert.Equal(t, "updateCell", got["op"])
	assert.Equal(t, "proposed", got["value"])

	require.NoError(t, g.Append(ctx, tables.QuotesBacklog, [][]string{{"Q-0001"}}))
	assert.Equal(t, "appendRows", got["op"])
}

func TestGatewayErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	g, err := store.NewGateway(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	_, err = g.Get(context.Background(), tables.Calendar)
	require.Error(t, err)
	assert.True(t, errors.IsStoreUnavailable(err))

	err = g.UpdateCell(context.Background(), tables.Calendar, "A2", "x")
	var storeErr *errors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusBadGateway, storeErr.StatusCode)
}
