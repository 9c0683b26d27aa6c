package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/api/handlers"
	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func viCaitlyn() service.RosterSpec {
	return service.RosterSpec{
		Players: []service.PlayerSpec{
			{Name: "A", Champions: []service.ChampionSpec{{Name: "Vi"}}},
			{Champions: []service.ChampionSpec{{Name: "caitlyn"}}},
		},
	}
}

func TestHealth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := get(t, ts.BaseURL()+"/health")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestCatalogHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("champions", func(t *testing.T) {
		resp := get(t, ts.APIURL("/champions"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body handlers.ChampionsResponse
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "2023-12-08", body.DataDate)
		require.Len(t, body.Champions, 11)
		assert.Equal(t, "Ahri", body.Champions[0].Name)
	})

	t.Run("skinsets", func(t *testing.T) {
		resp := get(t, ts.APIURL("/skinsets"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body handlers.SkinsetsResponse
		testutil.AssertJSONResponse(t, resp, &body)
		require.Len(t, body.Skinsets, 10)

		excluded := map[string]bool{}
		for _, s := range body.Skinsets {
			if s.DefaultExcluded {
				excluded[s.Name] = true
			}
		}
		assert.Equal(t, map[string]bool{"Legacy": true, "N/A": true}, excluded)
	})

	t.Run("info", func(t *testing.T) {
		resp := get(t, ts.APIURL("/catalog"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body service.CatalogInfo
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, 11, body.ChampionCount)
		assert.Equal(t, 10, body.SkinsetCount)
		assert.Equal(t, ts.Catalog.Fingerprint(), body.Fingerprint)
	})
}

func TestCatalogHandler_HistoryWithoutDatabase(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := get(t, ts.APIURL("/catalog/history"))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "not available")
}

func TestResolveHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("default exclusions", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/resolve"), viCaitlyn())
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body service.ResolveResponse
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, []string{"A", "Player 2"}, body.Players)
		require.Len(t, body.Rows, 1)
		assert.Equal(t, []string{"Arcane"}, body.Rows[0].Skinsets)
		assert.Equal(t, "Vi", body.Rows[0].Assignment[0].Champion)
		assert.Equal(t, "Caitlyn", body.Rows[0].Assignment[1].Champion)
		assert.False(t, body.Truncated)
	})

	t.Run("nothing excluded", func(t *testing.T) {
		spec := viCaitlyn()
		spec.Excluded = []string{}

		resp := postJSON(t, ts.APIURL("/resolve"), spec)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body service.ResolveResponse
		testutil.AssertJSONResponse(t, resp, &body)
		require.Len(t, body.Rows, 1)
		assert.Equal(t, []string{"Arcane"}, body.Rows[0].Skinsets)
	})

	t.Run("no shared skinsets gives empty rows", func(t *testing.T) {
		spec := service.RosterSpec{Players: []service.PlayerSpec{
			{Champions: []service.ChampionSpec{{Name: "Garen"}}},
			{Champions: []service.ChampionSpec{{Name: "Kled"}}},
		}}

		resp := postJSON(t, ts.APIURL("/resolve"), spec)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var raw map[string]json.RawMessage
		testutil.AssertJSONResponse(t, resp, &raw)
		assert.JSONEq(t, "[]", string(raw["rows"]))
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "malformed body", body: "{", message: "Invalid request body"},
		{name: "no players", body: `{"players":[]}`, message: "at least one player"},
		{name: "unknown champion", body: `{"players":[{"champions":[{"name":"Teemo"}]}]}`, message: "unknown champion"},
		{name: "bad lane", body: `{"players":[{"champions":[{"name":"Vi","lanes":["Middle Earth"]}]}]}`, message: "invalid lane"},
		{name: "unknown skinset", body: `{"players":[{"champions":[]}],"excluded":["Pool Party"]}`, message: "unknown skinset"},
		{name: "too many players", body: `{"players":[{},{},{},{},{},{}]}`, message: "too many players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.APIURL("/resolve"), "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, tt.message)
		})
	}
}

func TestResolveHandler_BodyTooLarge(t *testing.T) {
	ts := testutil.NewTestServer(t)

	body := `{"players":[{"name":"` + strings.Repeat("a", 128*1024) + `"}]}`
	resp, err := http.Post(ts.APIURL("/resolve"), "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusRequestEntityTooLarge)
}

func TestResolveHandler_Export(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postJSON(t, ts.APIURL("/resolve/export"), viCaitlyn())
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "skinsets.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func createShare(t *testing.T, ts *testutil.TestServer, spec service.RosterSpec) service.ShareLink {
	t.Helper()

	resp := postJSON(t, ts.APIURL("/share"), spec)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var link service.ShareLink
	testutil.AssertJSONResponse(t, resp, &link)
	require.NotEmpty(t, link.Token)
	return link
}

func TestShareHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)
	link := createShare(t, ts, viCaitlyn())

	assert.Equal(t, "http://skinsets.test/share/"+link.Token, link.URL)

	t.Run("get returns the canonical roster", func(t *testing.T) {
		resp := get(t, ts.APIURL("/share/"+link.Token))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var spec service.RosterSpec
		testutil.AssertJSONResponse(t, resp, &spec)
		require.Len(t, spec.Players, 2)
		assert.Equal(t, "Caitlyn", spec.Players[1].Champions[0].Name)
		assert.Equal(t, []string{"Bot"}, spec.Players[1].Champions[0].Lanes)
		assert.Equal(t, []string{"Legacy", "N/A"}, spec.Excluded)
	})

	t.Run("results", func(t *testing.T) {
		resp := get(t, ts.APIURL("/share/"+link.Token+"/results"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body service.ResolveResponse
		testutil.AssertJSONResponse(t, resp, &body)
		require.Len(t, body.Rows, 1)
		assert.Equal(t, []string{"Arcane"}, body.Rows[0].Skinsets)
	})

	t.Run("qr code", func(t *testing.T) {
		resp := get(t, ts.APIURL("/share/"+link.Token+"/qr.png?size=128"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("qr code size out of range", func(t *testing.T) {
		resp := get(t, ts.APIURL("/share/"+link.Token+"/qr.png?size=8"))
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "size must be between")
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := get(t, ts.APIURL("/share/not-a-token"))
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid share link")
	})

	t.Run("invalid roster is not shared", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/share"), service.RosterSpec{})
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestShareHandler_StaleToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	snap := testutil.FixtureSnapshot()
	snap.Skinsets = append(snap.Skinsets, "Winterblessed")
	newer, err := catalog.New(snap)
	require.NoError(t, err)

	other := service.NewShareService(newer, service.NewResolveService(newer, nil, 0, 0), ts.Config.ShareSecret, time.Hour, ts.Config.PublicBaseURL)
	link, err := other.Create(viCaitlyn())
	require.NoError(t, err)

	resp := get(t, ts.APIURL("/share/"+link.Token))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}
