// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsrs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/historyrp"
	"github.com/momeni/mapty/pkg/adapter/leaflet"
	"github.com/momeni/mapty/pkg/adapter/restful/gin/workoutsrs"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
	"github.com/stretchr/testify/suite"
)

type memPool struct{}

func (memPool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, nil)
}

type item struct {
	client uuid.UUID
	key    string
}

type memStorage struct {
	mu    sync.Mutex
	items map[item]string
	err   error
}

var errStorageDown = errors.New("storage is down")

func (ms *memStorage) GetItem(
	_ context.Context, client uuid.UUID, key string,
) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.err != nil {
		return "", false, ms.err
	}
	v, ok := ms.items[item{client, key}]
	return v, ok, nil
}

func (ms *memStorage) SetItem(
	_ context.Context, client uuid.UUID, key, value string,
) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.items[item{client, key}] = value
	return nil
}

func (ms *memStorage) RemoveItem(
	_ context.Context, client uuid.UUID, key string,
) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.items, item{client, key})
	return nil
}

func (ms *memStorage) Conn(repo.Conn) repo.StorageConnQueryer { return ms }
func (ms *memStorage) Tx(repo.Tx) repo.StorageTxQueryer       { return ms }

type view struct {
	Page        string            `json:"page"`
	FormVisible bool              `json:"formVisible"`
	Type        string            `json:"type"`
	MetricField string            `json:"metricField"`
	Form        map[string]string `json:"form"`
	Focus       string            `json:"focus"`
	Notices     []string          `json:"notices"`
	Entries     []string          `json:"entries"`
	Map         []map[string]any  `json:"map"`
	MapOn       bool              `json:"mapOn"`
	Total       int               `json:"total"`
	Detail      string            `json:"detail"`
}

type WorkoutsResourceTestSuite struct {
	suite.Suite

	engine  *gin.Engine
	storage *memStorage
	cookie  *http.Cookie
	page    string
}

var pageToken = regexp.MustCompile(`"page":"([0-9a-f-]{36})"`)

func TestWorkoutsResourceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkoutsResourceTestSuite))
}

func (wrs *WorkoutsResourceTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	wrs.storage = &memStorage{items: make(map[item]string)}
	h := historyrp.New(wrs.storage, "")
	day := time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)
	uc, err := workoutsuc.New(
		memPool{}, h, leaflet.NewFactory(leaflet.DefaultTiles()),
		workoutsuc.WithClock(func() time.Time { return day }),
		workoutsuc.WithIDGenerator(func() int { return 1234567890 }),
	)
	wrs.Require().NoError(err)
	wrs.engine = gin.New()
	wrs.Require().NoError(workoutsrs.Register(wrs.engine, uc))
	wrs.cookie, wrs.page = nil, ""
}

func (wrs *WorkoutsResourceTestSuite) do(
	method, target string, form url.Values,
) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(
			method, target, strings.NewReader(form.Encode()),
		)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if wrs.cookie != nil {
		req.AddCookie(wrs.cookie)
	}
	w := httptest.NewRecorder()
	wrs.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == workoutsrs.ClientCookie {
			wrs.cookie = c
		}
	}
	return w
}

// openPage loads the page and keeps its token for the next events.
func (wrs *WorkoutsResourceTestSuite) openPage() string {
	w := wrs.do(http.MethodGet, "/", nil)
	wrs.Require().Equal(http.StatusOK, w.Code)
	m := pageToken.FindStringSubmatch(w.Body.String())
	wrs.Require().Len(m, 2, "page token is not in the page state")
	wrs.page = m[1]
	return wrs.page
}

func (wrs *WorkoutsResourceTestSuite) event(
	kind string, form url.Values, status int,
) *view {
	if form == nil {
		form = url.Values{}
	}
	form.Set("page", wrs.page)
	w := wrs.do(http.MethodPost, "/api/mapty/v1/events/"+kind, form)
	wrs.Require().Equal(status, w.Code, "body: %s", w.Body.String())
	v := &view{}
	wrs.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
	return v
}

func (wrs *WorkoutsResourceTestSuite) openMap() {
	wrs.openPage()
	wrs.Require().NotNil(wrs.cookie, "client cookie is not set")
	wrs.True(wrs.cookie.HttpOnly)
	v := wrs.event("geolocated", url.Values{
		"lat": {"51.5"}, "lng": {"-0.12"},
	}, http.StatusOK)
	wrs.Require().True(v.MapOn)
	wrs.Require().Len(v.Map, 3, "init, tiles, and position marker")
	wrs.Equal("init", v.Map[0]["op"])
	wrs.Equal("tileLayer", v.Map[1]["op"])
	wrs.Equal("marker", v.Map[2]["op"])
}

func (wrs *WorkoutsResourceTestSuite) TestPageIsServed() {
	w := wrs.do(http.MethodGet, "/", nil)
	wrs.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	wrs.Contains(body, `<form class="form hidden">`)
	wrs.Contains(body, `<option value="running" selected>Running</option>`)
	wrs.Contains(body, `"mapOn":false`)
	wrs.Contains(body, "window.MAPTY = {")
	wrs.Regexp(pageToken, body)
	w = wrs.do(http.MethodGet, "/static/app.js", nil)
	wrs.Equal(http.StatusOK, w.Code)
	wrs.Contains(w.Body.String(), "class Mapty")
}

func (wrs *WorkoutsResourceTestSuite) TestRecordRunning() {
	wrs.openMap()
	v := wrs.event("map-click", url.Values{
		"lat": {"51.51"}, "lng": {"-0.1"},
	}, http.StatusOK)
	wrs.True(v.FormVisible)
	wrs.Equal("distance", v.Focus)
	wrs.Equal("cadence", v.MetricField)

	form := url.Values{
		"type": {"running"}, "distance": {"5"}, "duration": {"30"},
		"cadence": {"178"}, "elevation": {""},
	}
	v = wrs.event("submit", form, http.StatusOK)
	wrs.False(v.FormVisible)
	wrs.Equal(1, v.Total)
	wrs.Require().Len(v.Entries, 1)
	wrs.Contains(v.Entries[0], "workout--running")
	wrs.Contains(v.Entries[0], `data-id="1234567890"`)
	wrs.Contains(v.Entries[0], "Running on April 14")
	wrs.Require().Len(v.Map, 1)
	popup := v.Map[0]["popup"].(map[string]any)
	wrs.Equal("running-popup", popup["className"])

	w := wrs.do(http.MethodGet, "/api/mapty/v1/workouts", nil)
	wrs.Require().Equal(http.StatusOK, w.Code)
	var ws []map[string]any
	wrs.Require().NoError(json.Unmarshal(w.Body.Bytes(), &ws))
	wrs.Require().Len(ws, 1)
	wrs.Equal("running", ws[0]["type"])
	wrs.Equal(6.0, ws[0]["pace"])
	wrs.Equal("2024-04-14T09:30:00.000Z", ws[0]["date"])

	v = wrs.event("list-click", url.Values{"id": {"1234567890"}}, http.StatusOK)
	wrs.Require().Len(v.Map, 1)
	wrs.Equal("pan", v.Map[0]["op"])
	wrs.Equal(true, v.Map[0]["animate"])

	w = wrs.do(http.MethodGet, "/", nil)
	wrs.Contains(w.Body.String(), "Running on April 14")
}

func (wrs *WorkoutsResourceTestSuite) TestTabsComposeIndependently() {
	wrs.openMap()
	wrs.event("map-click", url.Values{
		"lat": {"51.51"}, "lng": {"-0.1"},
	}, http.StatusOK)
	first := wrs.page

	second := wrs.openPage()
	wrs.NotEqual(first, second)
	v := wrs.event("geolocation-failed", nil, http.StatusOK)
	wrs.Equal(second, v.Page)

	wrs.page = first
	v = wrs.event("submit", url.Values{
		"type": {"running"}, "distance": {"5"}, "duration": {"30"},
		"cadence": {"170"},
	}, http.StatusOK)
	wrs.Equal(first, v.Page)
	wrs.Equal(1, v.Total)
	wrs.Len(v.Entries, 1)
}

func (wrs *WorkoutsResourceTestSuite) TestRejectedSubmission() {
	wrs.openMap()
	wrs.event("map-click", url.Values{
		"lat": {"51.51"}, "lng": {"-0.1"},
	}, http.StatusOK)
	form := url.Values{
		"type": {"cycling"}, "distance": {"-20"}, "duration": {"60"},
		"elevation": {"-5"},
	}
	v := wrs.event("submit", form, http.StatusUnprocessableEntity)
	wrs.True(v.FormVisible, "form must stay visible")
	wrs.Equal([]string{workoutsuc.NoticeInvalidInput}, v.Notices)
	wrs.Equal("-20", v.Form["distance"])
	wrs.Equal("elevation", v.MetricField)
	wrs.NotEmpty(v.Detail)
	wrs.Zero(v.Total)
}

func (wrs *WorkoutsResourceTestSuite) TestSubmitWithoutLocation() {
	wrs.openPage()
	v := wrs.event("submit", url.Values{
		"type": {"running"}, "distance": {"5"}, "duration": {"30"},
		"cadence": {"178"},
	}, http.StatusConflict)
	wrs.False(v.FormVisible)
	wrs.NotEmpty(v.Detail)
}

func (wrs *WorkoutsResourceTestSuite) TestBadRequests() {
	page := wrs.openPage()
	w := wrs.do(http.MethodPost, "/api/mapty/v1/events/geolocated", url.Values{
		"lat": {"95"}, "lng": {"0"}, "page": {page},
	})
	wrs.Equal(http.StatusBadRequest, w.Code)
	w = wrs.do(http.MethodPost, "/api/mapty/v1/events/list-click", url.Values{
		"id": {"abc"}, "page": {page},
	})
	wrs.Equal(http.StatusBadRequest, w.Code)
	w = wrs.do(http.MethodPost, "/api/mapty/v1/events/toggle", url.Values{
		"type": {"cycling"},
	})
	wrs.Equal(http.StatusBadRequest, w.Code, "page token is required")
	w = wrs.do(http.MethodPost, "/api/mapty/v1/events/toggle", url.Values{
		"type": {"cycling"}, "page": {"not-a-uuid"},
	})
	wrs.Equal(http.StatusBadRequest, w.Code)
	w = wrs.do(http.MethodPost, "/api/mapty/v1/events/swim", url.Values{})
	wrs.Equal(http.StatusNotFound, w.Code)
	wrs.event("toggle", url.Values{"type": {"swimming"}}, http.StatusBadRequest)
}

func (wrs *WorkoutsResourceTestSuite) TestGeolocationFailed() {
	wrs.openPage()
	v := wrs.event("geolocation-failed", nil, http.StatusOK)
	wrs.Equal([]string{workoutsuc.NoticeNoPosition}, v.Notices)
	wrs.False(v.MapOn)
	v = wrs.event("map-click", url.Values{
		"lat": {"51.51"}, "lng": {"-0.1"},
	}, http.StatusOK)
	wrs.False(v.FormVisible, "a disabled map ignores clicks")
}

func (wrs *WorkoutsResourceTestSuite) TestClearWorkouts() {
	wrs.openMap()
	wrs.event("map-click", url.Values{
		"lat": {"51.51"}, "lng": {"-0.1"},
	}, http.StatusOK)
	wrs.event("submit", url.Values{
		"type": {"cycling"}, "distance": {"20"}, "duration": {"60"},
		"elevation": {"-5"},
	}, http.StatusOK)
	w := wrs.do(http.MethodDelete, "/api/mapty/v1/workouts", nil)
	wrs.Equal(http.StatusNoContent, w.Code)
	w = wrs.do(http.MethodGet, "/api/mapty/v1/workouts", nil)
	wrs.Equal(http.StatusOK, w.Code)
	wrs.JSONEq(`[]`, w.Body.String())
}

func (wrs *WorkoutsResourceTestSuite) TestListWorkoutsWithBrokenStorage() {
	wrs.openPage()
	wrs.storage.mu.Lock()
	wrs.storage.err = errStorageDown
	wrs.storage.mu.Unlock()
	w := wrs.do(http.MethodGet, "/api/mapty/v1/workouts", nil)
	wrs.Equal(http.StatusInternalServerError, w.Code)
	wrs.Contains(w.Body.String(), errStorageDown.Error())
}
