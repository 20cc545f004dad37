// Package testutil provides a mock Chute API for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockResponse defines a canned response for a path.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAsset is the asset record served by the mock API.
type MockAsset struct {
	ID           int64  `json:"id"`
	ChuteAssetID int64  `json:"chute_asset_id"`
	Shortcut     string `json:"shortcut"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	Caption      string `json:"caption,omitempty"`
	Username     string `json:"username,omitempty"`
	Hearts       int    `json:"hearts"`
	Votes        int    `json:"votes"`
}

// MockHeart is a heart created through the mock API.
type MockHeart struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	AssetID    int64  `json:"asset_id"`
	Album      string `json:"-"`
	Asset      string `json:"-"`
}

// RecordedRequest is a request received by the mock API.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// MockAPI is a configurable in-process Chute API.
//
// Albums hold assets ordered newest first by chute_asset_id. Listing honors
// per_page, page, sort, max_id and since_id the way the real API does.
type MockAPI struct {
	server *httptest.Server
	mux    *http.ServeMux

	mu        sync.RWMutex
	albums    map[string][]*MockAsset
	hearts    map[string]*MockHeart
	overrides map[string]http.HandlerFunc
	requests  []RecordedRequest
	nextHeart int64
}

// NewMockAPI starts a mock API server.
func NewMockAPI() *MockAPI {
	m := &MockAPI{
		mux:       http.NewServeMux(),
		albums:    make(map[string][]*MockAsset),
		hearts:    make(map[string]*MockHeart),
		overrides: make(map[string]http.HandlerFunc),
	}

	m.mux.HandleFunc("GET /albums/{album}/assets", m.listAssets)
	m.mux.HandleFunc("GET /albums/{album}/assets/{id}", m.getAsset)
	m.mux.HandleFunc("POST /albums/{album}/assets/{asset}/hearts", m.createHeart)
	m.mux.HandleFunc("DELETE /hearts/{id}", m.deleteHeart)

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		override, ok := m.overrides[r.URL.Path]
		m.mu.Unlock()

		if ok {
			override(w, r)
			return
		}
		m.mux.ServeHTTP(w, r)
	}))

	return m
}

// URL returns the API base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// AddAssets stores assets in album, keeping newest-first order.
func (m *MockAPI) AddAssets(album string, assets ...MockAsset) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range assets {
		a := assets[i]
		m.albums[album] = append(m.albums[album], &a)
	}
	sort.SliceStable(m.albums[album], func(i, j int) bool {
		return m.albums[album][i].ChuteAssetID > m.albums[album][j].ChuteAssetID
	})
}

// SeedAlbum creates n assets with chute_asset_id 1..n and shortcuts a1..an.
func (m *MockAPI) SeedAlbum(album string, n int) {
	assets := make([]MockAsset, 0, n)
	for i := 1; i <= n; i++ {
		assets = append(assets, MockAsset{
			ID:           int64(i),
			ChuteAssetID: int64(i),
			Shortcut:     fmt.Sprintf("a%d", i),
			Type:         "image",
			URL:          fmt.Sprintf("https://media.example.com/a%d", i),
			Caption:      fmt.Sprintf("asset %d", i),
			Hearts:       i % 3,
		})
	}
	m.AddAssets(album, assets...)
}

// Asset returns a copy of a stored asset.
func (m *MockAPI) Asset(album, shortcut string) (MockAsset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a := m.findAsset(album, shortcut)
	if a == nil {
		return MockAsset{}, false
	}
	return *a, true
}

// HeartCount returns the number of live hearts.
func (m *MockAPI) HeartCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hearts)
}

// SetHandler overrides the handler for an exact path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[path] = handler
}

// SetResponse overrides an exact path with a canned response.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// ClearOverrides removes all handlers set with SetHandler or SetResponse.
func (m *MockAPI) ClearOverrides() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides = make(map[string]http.HandlerFunc)
}

// Requests returns the requests received so far.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// LastRequest returns the most recent request.
func (m *MockAPI) LastRequest() (RecordedRequest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// RequestCount returns the number of requests received.
func (m *MockAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// Reset clears the request log.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

func (m *MockAPI) listAssets(w http.ResponseWriter, r *http.Request) {
	album := r.PathValue("album")
	q := r.URL.Query()

	perPage := 5
	if v := q.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid per_page")
			return
		}
		perPage = n
	}

	m.mu.RLock()
	assets, ok := m.albums[album]
	if !ok {
		m.mu.RUnlock()
		writeError(w, http.StatusNotFound, "Album not found")
		return
	}
	all := make([]MockAsset, 0, len(assets))
	for _, a := range assets {
		all = append(all, *a)
	}
	m.mu.RUnlock()

	natural := true
	if s := q.Get("sort"); s != "" && s != "id" && s != "time" {
		natural = false
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Hearts > all[j].Hearts
		})
	}

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = n
	}

	var start, end int
	switch {
	case natural && q.Get("max_id") != "":
		maxID, err := strconv.ParseInt(q.Get("max_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid max_id")
			return
		}
		start = len(all)
		for i, a := range all {
			if a.ChuteAssetID < maxID {
				start = i
				break
			}
		}
		end = min(start+perPage, len(all))
	case natural && q.Get("since_id") != "":
		sinceID, err := strconv.ParseInt(q.Get("since_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since_id")
			return
		}
		for i, a := range all {
			if a.ChuteAssetID > sinceID {
				end = i + 1
			}
		}
		start = max(end-perPage, 0)
	default:
		start = min((page-1)*perPage, len(all))
		end = min(start+perPage, len(all))
	}

	pagination := map[string]any{"per_page": perPage, "current_page": start/perPage + 1}
	if end > start && end < len(all) {
		next := *r.URL
		nq := next.Query()
		if natural {
			nq.Del("since_id")
			nq.Del("page")
			nq.Set("max_id", strconv.FormatInt(all[end-1].ChuteAssetID, 10))
		} else {
			nq.Set("page", strconv.Itoa(page+1))
		}
		next.RawQuery = nq.Encode()
		pagination["next_page"] = m.server.URL + next.RequestURI()
	}
	if start > 0 {
		pagination["previous_page"] = m.server.URL + r.URL.Path
	}
	body := map[string]any{"data": all[start:end], "pagination": pagination}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(all)))
	writeJSON(w, http.StatusOK, body)
}

func (m *MockAPI) getAsset(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	a := m.findAsset(r.PathValue("album"), r.PathValue("id"))
	var out MockAsset
	if a != nil {
		out = *a
	}
	m.mu.RUnlock()

	if a == nil {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (m *MockAPI) createHeart(w http.ResponseWriter, r *http.Request) {
	album, shortcut := r.PathValue("album"), r.PathValue("asset")

	m.mu.Lock()
	a := m.findAsset(album, shortcut)
	if a == nil {
		m.mu.Unlock()
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	m.nextHeart++
	h := &MockHeart{
		ID:         m.nextHeart,
		Identifier: uuid.NewString(),
		AssetID:    a.ID,
		Album:      album,
		Asset:      shortcut,
	}
	m.hearts[h.Identifier] = h
	a.Hearts++
	m.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"data": h})
}

func (m *MockAPI) deleteHeart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	m.mu.Lock()
	h, ok := m.hearts[id]
	if !ok {
		m.mu.Unlock()
		writeError(w, http.StatusNotFound, "Heart not found")
		return
	}
	delete(m.hearts, id)
	if a := m.findAsset(h.Album, h.Asset); a != nil && a.Hearts > 0 {
		a.Hearts--
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"data": h})
}

// findAsset must be called with m.mu held.
func (m *MockAPI) findAsset(album, shortcut string) *MockAsset {
	for _, a := range m.albums[album] {
		if a.Shortcut == shortcut {
			return a
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewDataResponse creates a 200 OK response wrapping data in an envelope.
func NewDataResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": ` + data + `}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}
