//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/pianobench/cmd"
	"github.com/jsphweid/pianobench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFixture = "../catalog/testdata/available_tests.json"

func TestMain(m *testing.M) {
	if err := cmd.LoadServeFiles(catalogFixture); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.Exit(exitVal)
}

func do(method string, target string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBody, v))
}

func createScoreReqBody(filename string, pitch float64, tempo float64) io.Reader {
	sr := model.ScoreRequestBody{
		Filename:    filename,
		ScoreResult: model.ScoreResult{PitchAccuracy: pitch, TempoAccuracy: tempo},
	}
	data, err := json.Marshal(sr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestListCasesE2E(t *testing.T) {
	resp := do(http.MethodGet, "/cases", nil)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.NotEmpty(resp.Header.Get("X-Run-Id"))

	var cases []model.CaseOverview
	decode(t, resp, &cases)
	require.Len(t, cases, 3)
	assert.Equal(model.CaseOverview{
		Index:         2,
		Filename:      "ode_to_joy_harmony_missed_notes.wav",
		IdealFilename: "ode_to_joy_harmony.wav",
		NumTracks:     2,
		NumNotes:      3,
	}, cases[2])
}

func TestTruthE2E(t *testing.T) {
	resp := do(http.MethodGet, "/cases/ode_to_joy.wav/truth", nil)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var truth model.TruthResponse
	decode(t, resp, &truth)
	assert.Equal(22050, truth.SampleRate)
	assert.Equal(512, truth.HopLength)
	assert.Equal([]int{64, 64, 65, 67}, truth.PitchCodes)
	assert.Equal([]int{0, 18, 37, 56, 75}, truth.BoundaryFrames)
	assert.Len(truth.StateFrames, 75)
	assert.Equal(3, truth.StateFrames[74])
}

func TestTruthCustomHopE2E(t *testing.T) {
	resp := do(http.MethodGet, "/cases/ode_to_joy/truth?sr=44100&hop=1024", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var truth model.TruthResponse
	decode(t, resp, &truth)
	assert.Equal(t, "ode_to_joy.wav", truth.Filename)
	assert.Equal(t, []int{0, 18, 37, 56, 75}, truth.BoundaryFrames)
}

func TestTruthErrorsE2E(t *testing.T) {
	assert := assert.New(t)

	resp := do(http.MethodGet, "/cases/nope.wav/truth", nil)
	assert.Equal(404, resp.StatusCode)

	resp = do(http.MethodGet, "/cases/ode_to_joy.wav/truth?sr=abc", nil)
	assert.Equal(400, resp.StatusCode)

	resp = do(http.MethodGet, "/cases/ode_to_joy.wav/truth?hop=0", nil)
	assert.Equal(400, resp.StatusCode)
	var errResp model.ErrorResponse
	decode(t, resp, &errResp)
	assert.NotEmpty(errResp.Error)
}

func TestScorePassE2E(t *testing.T) {
	resp := do(http.MethodPost, "/score", createScoreReqBody("ode_to_joy_fast.wav", 1.0, 0.82))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var outcome model.ScoreOutcome
	decode(t, resp, &outcome)
	assert.Equal(model.StatusPass, outcome.Status)
	assert.Equal(0.85, outcome.Expected.TempoAccuracy)
}

func TestScoreFailE2E(t *testing.T) {
	resp := do(http.MethodPost, "/score", createScoreReqBody("ode_to_joy_fast.wav", 1.0, 0.7))

	var outcome model.ScoreOutcome
	decode(t, resp, &outcome)

	assert := assert.New(t)
	assert.Equal(model.StatusFail, outcome.Status)
	assert.True(outcome.PitchPass)
	assert.False(outcome.TempoPass)
}

func TestScoreBadBodyE2E(t *testing.T) {
	assert := assert.New(t)

	resp := do(http.MethodPost, "/score", bytes.NewReader([]byte("{")))
	assert.Equal(400, resp.StatusCode)

	resp = do(http.MethodPost, "/score", createScoreReqBody("nope.wav", 1, 1))
	assert.Equal(404, resp.StatusCode)
}

func TestReloadE2E(t *testing.T) {
	original, err := os.ReadFile(catalogFixture)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "available_tests.json")
	require.NoError(t, os.WriteFile(path, original, 0644))
	require.NoError(t, cmd.LoadServeFiles(path))
	t.Cleanup(func() {
		cmd.LoadServeFiles(catalogFixture)
	})

	require.NoError(t, os.WriteFile(path, []byte(`[{"filename": "scale.wav", "ideal_filename": "scale.wav", "tracks": [[]]}]`), 0644))

	for i := 0; i < 3; i++ {
		resp := do(http.MethodPost, "/reload", nil)
		assert.Equal(t, 202, resp.StatusCode)
	}

	require.Eventually(t, func() bool {
		var cases []model.CaseOverview
		decode(t, do(http.MethodGet, "/cases", nil), &cases)
		return len(cases) == 1 && cases[0].Filename == "scale.wav"
	}, 5*time.Second, 50*time.Millisecond)
}
