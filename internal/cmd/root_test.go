package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway serves an Experiments sheet with one incomplete row and
// records any write operations it receives.
func fakeGateway(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var writes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			writes = append(writes, payload["op"].(string))
			w.Write([]byte(`{"ok":true}`))
			return
		}
		require.Equal(t, "get", r.URL.Query().Get("op"))
		require.Equal(t, "secret", r.URL.Query().Get("token"))
		json.NewEncoder(w).Encode(map[string]any{
			"headers": []string{"idea", "hypothesis", "metric", "owner", "platform", "hook", "status", "notes"},
			"rows": []map[string]any{
				{"idea": "Quote reels", "hypothesis": "", "metric": "views", "owner": "Architect", "platform": "instagram"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &writes
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReviewCommandPrintsFindings(t *testing.T) {
	srv, writes := fakeGateway(t)
	t.Setenv("APPS_URL", srv.URL)
	t.Setenv("APPS_TOKEN", "secret")
	t.Setenv("CONTROL_SHEET_ID", "")
	t.Setenv("REVIEW_FROM_SHEET", "")

	out, err := runCommand(t, "review")
	require.NoError(t, err)

	var rep struct {
		Sheet    string `json:"sheet"`
		Findings []struct {
			Field   string `json:"field"`
			Problem string `json:"problem"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "Experiments", rep.Sheet)
	require.Len(t, rep.Findings, 1)
	assert.Equal(t, "hypothesis", rep.Findings[0].Field)
	assert.Empty(t, *writes, "review must not write")
}

func TestSheetFlagOverridesReviewTarget(t *testing.T) {
	var sheets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sheets = append(sheets, r.URL.Query().Get("sheet"))
		w.Write([]byte(`{"headers":[],"rows":[]}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("APPS_URL", srv.URL)
	t.Setenv("APPS_TOKEN", "secret")

	defer func() { flagSheet = "" }()
	_, err := runCommand(t, "review", "--sheet", "Pilot_Experiments")
	require.NoError(t, err)

	require.Len(t, sheets, 1)
	assert.Equal(t, "Pilot_Experiments", sheets[0])
}

func TestCommandFailsWithoutStore(t *testing.T) {
	t.Setenv("APPS_URL", "")
	t.Setenv("APPS_TOKEN", "")
	t.Setenv("CONTROL_SHEET_ID", "")
	t.Setenv("SHEETS_TOKEN", "")

	_, err := runCommand(t, "fix")
	require.Error(t, err)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"fix", "classify", "mine", "schedule", "analyze", "review", "report"} {
		assert.True(t, names[want], want)
	}
}
