package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/valueprop"
	"github.com/aretw0/valueprop/internal/metrics"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/storage"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) (http.Handler, *valueprop.Wizard) {
	t.Helper()
	w := valueprop.New(context.Background())
	return NewHandler(w), w
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) wizard.View {
	t.Helper()
	var v wizard.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := do(t, h, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, h, "GET", "/info", "")
	var info map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, "valueprop-http", info["app"])
	assert.Equal(t, valueprop.Version, info["version"])
}

func TestGetState_Initial(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := do(t, h, "GET", "/state", "")
	require.Equal(t, http.StatusOK, rr.Code)

	v := decodeView(t, rr)
	assert.Equal(t, 1, v.Step.Number)
	assert.Equal(t, "Define Your Context", v.Step.Title)
	assert.Equal(t, 20, v.Progress)
	assert.True(t, v.First)
	assert.Contains(t, rr.Body.String(), `"technicalSkills":[]`, "lists serialize as empty arrays")
}

func TestPatchData(t *testing.T) {
	h, w := newTestHandler(t)

	rr := do(t, h, "PATCH", "/data", `{"audience":"founders","problem":"churn","uniqueApproach":"interviews"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	v := decodeView(t, rr)
	assert.Equal(t, "founders", v.State.Data.Audience)
	assert.Equal(t,
		"I help founders solve churn through interviews, setting myself apart through my proven track record of delivering exceptional results.",
		w.Store.Data().ValueProposition)

	rr = do(t, h, "PATCH", "/data", `{"colour":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "PATCH", "/data", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestItems(t *testing.T) {
	h, w := newTestHandler(t)

	rr := do(t, h, "POST", "/items/softSkills", `{"value":"  empathy  "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp ItemResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Added)
	assert.Equal(t, []string{"empathy"}, resp.View.State.Data.SoftSkills)

	rr = do(t, h, "POST", "/items/softSkills", `{"value":"   "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Added)
	assert.Len(t, w.Store.Data().SoftSkills, 1)

	rr = do(t, h, "POST", "/items/audience", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "DELETE", "/items/softSkills/3", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, "DELETE", "/items/softSkills/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "DELETE", "/items/softSkills/0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, w.Store.Data().SoftSkills)
}

func TestNavigation(t *testing.T) {
	h, w := newTestHandler(t)

	assert.Equal(t, 2, decodeView(t, do(t, h, "POST", "/step/next", "")).Step.Number)
	assert.Equal(t, 1, decodeView(t, do(t, h, "POST", "/step/prev", "")).Step.Number)
	assert.Equal(t, 1, decodeView(t, do(t, h, "POST", "/step/prev", "")).Step.Number)

	rr := do(t, h, "POST", "/complete", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.False(t, w.Store.Snapshot().IsComplete)

	v := decodeView(t, do(t, h, "PUT", "/step", `{"step":99}`))
	assert.Equal(t, 5, v.Step.Number)
	assert.True(t, v.Last)
	assert.Equal(t, 100, v.Progress)

	rr = do(t, h, "POST", "/complete", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeView(t, rr).State.IsComplete)

	v = decodeView(t, do(t, h, "POST", "/reset", ""))
	assert.Equal(t, 1, v.Step.Number)
	assert.False(t, v.State.IsComplete)
}

func TestGetSteps(t *testing.T) {
	h, _ := newTestHandler(t)

	var steps []wizard.Step
	require.NoError(t, json.Unmarshal(do(t, h, "GET", "/steps", "").Body.Bytes(), &steps))
	require.Len(t, steps, 5)
	assert.Equal(t, "Craft Proposition", steps[4].Title)
}

func TestGetGraph(t *testing.T) {
	h, _ := newTestHandler(t)
	do(t, h, "POST", "/step/next", "")

	rr := do(t, h, "GET", "/graph", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "class step1 visited;")
	assert.Contains(t, rr.Body.String(), "class step2 current;")
}

func TestProposition(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := do(t, h, "POST", "/proposition/regenerate", "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	do(t, h, "PATCH", "/data", `{"valueProposition":"My own words."}`)
	var p PropositionResponse
	require.NoError(t, json.Unmarshal(do(t, h, "GET", "/proposition", "").Body.Bytes(), &p))
	assert.Equal(t, PropositionResponse{Text: "My own words.", Edited: true}, p)

	do(t, h, "PATCH", "/data", `{"audience":"a","problem":"b","uniqueApproach":"c"}`)
	require.NoError(t, json.Unmarshal(do(t, h, "GET", "/proposition", "").Body.Bytes(), &p))
	assert.Equal(t, "My own words.", p.Text, "edited propositions are not recomputed")

	rr = do(t, h, "POST", "/proposition/regenerate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.False(t, p.Edited)
	assert.True(t, strings.HasPrefix(p.Text, "I help a solve b through c"))
}

func TestSummaryAndShare(t *testing.T) {
	h, w := newTestHandler(t)
	do(t, h, "PATCH", "/data", `{"valueProposition":"Hello."}`)

	rr := do(t, h, "GET", "/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="value-proposition-summary.txt"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, compose.Summary(w.Store.Data()), rr.Body.String())

	var share compose.SharePayload
	require.NoError(t, json.Unmarshal(do(t, h, "GET", "/share", "").Body.Bytes(), &share))
	assert.Equal(t, compose.SharePayload{Title: "My Value Proposition", Text: "Hello."}, share)
}

func TestGetStorage(t *testing.T) {
	h, w := newTestHandler(t)
	do(t, h, "POST", "/items/technicalSkills", `{"value":"Go"}`)

	var info storage.Info
	require.NoError(t, json.Unmarshal(do(t, h, "GET", "/storage", "").Body.Bytes(), &info))
	assert.Equal(t, []string{"data"}, info.Keys)

	raw, err := w.KV().Get(context.Background(), "valueProp_data")
	require.NoError(t, err)
	assert.Equal(t, len(raw), info.Size)
}

func TestMetricsRoute(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)

	c := metrics.New(nil)
	w := valueprop.New(context.Background(), valueprop.WithLifecycleHooks(c.Hooks()))
	h = NewHandler(w, WithMetrics(c.Handler()))

	do(t, h, "POST", "/step/next", "")
	rr := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `valueprop_step_visits_total{step="2"} 1`)
}
