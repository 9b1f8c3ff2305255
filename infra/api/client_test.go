package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestFetchStationList(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/stations", r.URL.Path)
		require.Equal(t, "minLat=1&maxLat=2&minLng=3&maxLng=4", r.URL.RawQuery)
		_, err := w.Write([]byte(`[{"statId":"ST1","info":{"totalChargers":2}}]`))
		require.NoError(t, err)
	})
	list, err := c.FetchStationList(context.Background(), "minLat=1&maxLat=2&minLng=3&maxLng=4")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "ST1", list[0].StationID)
}

func TestFetchStationBriefAndDetail(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stations/ST9", r.URL.Path)
		if r.URL.RawQuery == "brief=no" {
			_, err := w.Write([]byte(`{"statId":"ST9","chargers":[{"chgerId":"01","stat":"3"}]}`))
			require.NoError(t, err)
			return
		}
		_, err := w.Write([]byte(`{"statId":"ST9","info":{"usableChargers":1,"totalChargers":2}}`))
		require.NoError(t, err)
	})

	brief, err := c.FetchStationBrief(context.Background(), "ST9")
	require.NoError(t, err)
	require.Equal(t, 1, brief.Info.UsableChargers)

	detail, err := c.FetchStationDetail(context.Background(), "ST9")
	require.NoError(t, err)
	require.Len(t, detail.Chargers, 1)
	require.Equal(t, "01", detail.Chargers[0].ChargerID)
}

func TestPostDepartureEvent(t *testing.T) {
	var got map[string]string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/stations/ST1/departs", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})
	departAt := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
	require.NoError(t, c.PostDepartureEvent(context.Background(), "ST1", departAt))
	require.Equal(t, "2024-06-15T12:30:00Z", got["depart_time"])
}

func TestDecrementViewerCount(t *testing.T) {
	var method, path string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
	})
	require.NoError(t, c.DecrementViewerCount(context.Background(), "ST2"))
	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/api/stations/ST2/view-num/down", path)
}

func TestNonOKStatusIsError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	_, err := c.FetchStationBrief(context.Background(), "ST1")
	require.Error(t, err)
	require.Error(t, c.DecrementViewerCount(context.Background(), "ST1"))
}

func TestConfigValidate(t *testing.T) {
	require.Error(t, Config{}.Validate())
	require.NoError(t, Config{BaseURL: "http://localhost"}.Validate())
}
