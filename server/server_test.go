package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/racedb/db"
	"github.com/padraicbc/racedb/errs"
	"github.com/padraicbc/racedb/handlers"
	"github.com/padraicbc/racedb/models"
	"github.com/padraicbc/racedb/sample"
)

func newTestServer(t *testing.T) (*echo.Echo, *db.Store) {
	t.Helper()

	ctx := context.Background()
	bdb, err := db.Open(ctx, db.Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = bdb.Close() })
	if err := db.CreateTables(ctx, bdb); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	store := db.NewStore(bdb)
	h := handlers.New(store, sample.New(store), zap.NewNop())
	return New(h, zap.NewNop()), store
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func TestCreateThenGetEachEntity(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/stables/", `{"name":"Ferrari","country":"Italy"}`)
	expectStatus(t, rec, http.StatusOK)
	stable := decode[models.Stable](t, rec)
	if stable.StableID == 0 || stable.Name != "Ferrari" || stable.Country != "Italy" {
		t.Fatalf("stable = %+v", stable)
	}
	rec = do(t, e, http.MethodGet, "/stables/1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Stable](t, rec); got != stable {
		t.Fatalf("get stable = %+v, want %+v", got, stable)
	}

	rec = do(t, e, http.MethodPost, "/pilots/", `{"name":"Charles Leclerc","stable_id":1,"experience_years":7}`)
	expectStatus(t, rec, http.StatusOK)
	pilot := decode[map[string]interface{}](t, rec)
	if pilot["pilot_id"] != float64(1) || pilot["additional_info"] != nil {
		t.Fatalf("pilot = %v", pilot)
	}
	rec = do(t, e, http.MethodGet, "/pilots/1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]interface{}](t, rec); got["name"] != "Charles Leclerc" || got["experience_years"] != float64(7) {
		t.Fatalf("get pilot = %v", got)
	}

	rec = do(t, e, http.MethodPost, "/stages/", `{"date":"2024-09-01","location":"Monza","track_length_km":5.793,"audience_count":120000}`)
	expectStatus(t, rec, http.StatusOK)
	stage := decode[models.Stage](t, rec)
	rec = do(t, e, http.MethodGet, "/stages/1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Stage](t, rec); got != stage {
		t.Fatalf("get stage = %+v, want %+v", got, stage)
	}

	rec = do(t, e, http.MethodPost, "/results/", `{"pilot_id":1,"stage_id":1,"position":1,"pit_stops":2,"race_time":"1:14:40"}`)
	expectStatus(t, rec, http.StatusOK)
	result := decode[models.Result](t, rec)
	rec = do(t, e, http.MethodGet, "/results/1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Result](t, rec); got != result {
		t.Fatalf("get result = %+v, want %+v", got, result)
	}
}

func TestGetMissingEntityIsNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	for path, msg := range map[string]string{
		"/stables/9": "Stable not found",
		"/pilots/9":  "Pilot not found",
		"/stages/9":  "Stage not found",
		"/results/9": "Result not found",
	} {
		rec := do(t, e, http.MethodGet, path, "")
		expectStatus(t, rec, http.StatusNotFound)
		body := decode[errs.HTTPError](t, rec)
		if body.Message != msg || body.Code != "NOT_FOUND" {
			t.Errorf("%s: body = %+v", path, body)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{"wrong type", http.MethodPost, "/results/", `{"pilot_id":"one","stage_id":1,"position":1,"pit_stops":1,"race_time":"1:00:00"}`, ""},
		{"missing field", http.MethodPost, "/stables/", `{"name":"Ferrari"}`, "country"},
		{"bad date", http.MethodPost, "/stages/", `{"date":"01/09/2024","location":"Monza","track_length_km":5.8,"audience_count":1}`, "date"},
		{"malformed json", http.MethodPost, "/pilots/", `{"name":`, ""},
		{"non-integer id", http.MethodGet, "/stables/abc", "", "id"},
		{"missing filter param", http.MethodGet, "/results/filter?position=5", "", "pit_stops"},
		{"non-integer filter param", http.MethodGet, "/results/filter?position=x&pit_stops=1", "", "position"},
		{"missing search query", http.MethodGet, "/pilots/search", "", "query"},
		{"missing order_by", http.MethodGet, "/results/sorted", "", "order_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.target, tt.body)
			expectStatus(t, rec, http.StatusUnprocessableEntity)
			if tt.field == "" {
				return
			}
			body := decode[errs.HTTPError](t, rec)
			if len(body.Errors) == 0 || body.Errors[0].Field != tt.field {
				t.Fatalf("field errors = %+v, want field %q", body.Errors, tt.field)
			}
		})
	}
}

func TestMissingQueryParamsAreAllReported(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		target string
		fields []string
	}{
		{"/results/filter", []string{"position", "pit_stops"}},
		{"/results/filter?position=x", []string{"position", "pit_stops"}},
		{"/results/update_position", []string{"result_id", "new_position"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			method := http.MethodGet
			if strings.HasPrefix(tt.target, "/results/update_position") {
				method = http.MethodPut
			}
			rec := do(t, e, method, tt.target, "")
			expectStatus(t, rec, http.StatusUnprocessableEntity)

			body := decode[errs.HTTPError](t, rec)
			if len(body.Errors) != len(tt.fields) {
				t.Fatalf("field errors = %+v, want %v", body.Errors, tt.fields)
			}
			for i, f := range tt.fields {
				if body.Errors[i].Field != f {
					t.Fatalf("field errors = %+v, want %v", body.Errors, tt.fields)
				}
			}
		})
	}
}

func seed(t *testing.T, e *echo.Echo, results []string) {
	t.Helper()
	for _, r := range results {
		expectStatus(t, do(t, e, http.MethodPost, "/results/", r), http.StatusOK)
	}
}

func TestFilterResults(t *testing.T) {
	e, _ := newTestServer(t)
	seed(t, e, []string{
		`{"pilot_id":1,"stage_id":1,"position":5,"pit_stops":2,"race_time":"1:00:00"}`,
		`{"pilot_id":1,"stage_id":1,"position":6,"pit_stops":2,"race_time":"1:00:00"}`,
		`{"pilot_id":1,"stage_id":1,"position":1,"pit_stops":1,"race_time":"1:00:00"}`,
		`{"pilot_id":1,"stage_id":1,"position":2,"pit_stops":4,"race_time":"1:00:00"}`,
	})

	rec := do(t, e, http.MethodGet, "/results/filter?position=5&pit_stops=2", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]models.Result](t, rec)
	if len(got) != 2 || got[0].ResultID != 1 || got[1].ResultID != 4 {
		t.Fatalf("filtered = %+v, want results 1 and 4", got)
	}

	rec = do(t, e, http.MethodGet, "/results/filter?position=0&pit_stops=9", "")
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty filter body = %s, want []", rec.Body.String())
	}
}

func TestSortedResults(t *testing.T) {
	e, _ := newTestServer(t)
	seed(t, e, []string{
		`{"pilot_id":1,"stage_id":1,"position":8,"pit_stops":3,"race_time":"1:10:00"}`,
		`{"pilot_id":2,"stage_id":1,"position":3,"pit_stops":1,"race_time":"1:05:00"}`,
		`{"pilot_id":3,"stage_id":1,"position":5,"pit_stops":2,"race_time":"1:20:00"}`,
	})

	rec := do(t, e, http.MethodGet, "/results/sorted?order_by=position", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]models.Result](t, rec)
	for i := 1; i < len(got); i++ {
		if got[i-1].Position > got[i].Position {
			t.Fatalf("not sorted by position: %+v", got)
		}
	}

	for _, column := range []string{"bogus", "Position", ""} {
		rec = do(t, e, http.MethodGet, "/results/sorted?order_by="+column, "")
		expectStatus(t, rec, http.StatusBadRequest)
		if body := decode[errs.HTTPError](t, rec); body.Message != "Invalid order_by parameter" {
			t.Fatalf("order_by=%q: message = %q", column, body.Message)
		}
	}
}

func TestUpdateResultPosition(t *testing.T) {
	e, _ := newTestServer(t)
	seed(t, e, []string{`{"pilot_id":4,"stage_id":2,"position":9,"pit_stops":3,"race_time":"1:33:07"}`})

	rec := do(t, e, http.MethodPut, "/results/update_position?result_id=1&new_position=2", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Result](t, rec); got.Position != 2 {
		t.Fatalf("updated = %+v", got)
	}

	rec = do(t, e, http.MethodGet, "/results/1", "")
	want := models.Result{ResultID: 1, PilotID: 4, StageID: 2, Position: 2, PitStops: 3, RaceTime: "1:33:07"}
	if got := decode[models.Result](t, rec); got != want {
		t.Fatalf("after update = %+v, want %+v", got, want)
	}

	rec = do(t, e, http.MethodPut, "/results/update_position?result_id=77&new_position=2", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestPilotDetailsAndSearch(t *testing.T) {
	e, _ := newTestServer(t)
	expectStatus(t, do(t, e, http.MethodPost, "/stables/", `{"name":"Mercedes","country":"Germany"}`), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodPost, "/pilots/", `{"name":"Lewis Hamilton","stable_id":1,"experience_years":10,"additional_info":"Seven-time Champion"}`), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodPost, "/pilots/", `{"name":"Nobody","stable_id":42,"experience_years":1,"additional_info":"champion of nothing"}`), http.StatusOK)

	rec := do(t, e, http.MethodGet, "/pilots/details", "")
	expectStatus(t, rec, http.StatusOK)
	details := decode[[]models.PilotWithStable](t, rec)
	if len(details) != 1 || details[0].Pilot.Name != "Lewis Hamilton" || details[0].Stable.Name != "Mercedes" {
		t.Fatalf("details = %+v", details)
	}

	rec = do(t, e, http.MethodGet, "/pilots/search?query=Champion", "")
	expectStatus(t, rec, http.StatusOK)
	found := decode[[]models.Pilot](t, rec)
	if len(found) != 1 || found[0].Name != "Lewis Hamilton" {
		t.Fatalf("search = %+v", found)
	}
}

func TestSearchWithEmptyQueryMatchesAllNotes(t *testing.T) {
	e, _ := newTestServer(t)
	expectStatus(t, do(t, e, http.MethodPost, "/pilots/", `{"name":"Noted","stable_id":1,"experience_years":3,"additional_info":"abc"}`), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodPost, "/pilots/", `{"name":"Blank","stable_id":1,"experience_years":2,"additional_info":""}`), http.StatusOK)
	expectStatus(t, do(t, e, http.MethodPost, "/pilots/", `{"name":"Silent","stable_id":1,"experience_years":1}`), http.StatusOK)

	rec := do(t, e, http.MethodGet, "/pilots/search?query=", "")
	expectStatus(t, rec, http.StatusOK)
	found := decode[[]models.Pilot](t, rec)
	if len(found) != 2 || found[0].Name != "Noted" || found[1].Name != "Blank" {
		t.Fatalf("search = %+v, want the two pilots with notes", found)
	}
}

func TestGroupStages(t *testing.T) {
	e, _ := newTestServer(t)
	for _, loc := range []string{"Spa", "Monza", "Spa"} {
		body := `{"date":"2024-07-28","location":"` + loc + `","track_length_km":7.0,"audience_count":1000}`
		expectStatus(t, do(t, e, http.MethodPost, "/stages/", body), http.StatusOK)
	}

	rec := do(t, e, http.MethodGet, "/stages/group", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]models.LocationCount](t, rec)
	want := []models.LocationCount{{Location: "Monza", StageCount: 1}, {Location: "Spa", StageCount: 2}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("group = %+v, want %+v", got, want)
	}
}

func TestGenerateSampleData(t *testing.T) {
	e, store := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := do(t, e, http.MethodPost, "/generate_sample_data", "")
		expectStatus(t, rec, http.StatusOK)
		if body := decode[map[string]string](t, rec); body["message"] != "Sample data generated successfully" {
			t.Fatalf("body = %v", body)
		}
	}

	n, err := store.Count(context.Background(), (*models.Result)(nil))
	if err != nil {
		t.Fatalf("count results: %v", err)
	}
	if n != 2*sample.ResultCount {
		t.Fatalf("results = %d, want %d", n, 2*sample.ResultCount)
	}
}

func TestUnknownRouteIsJSONNotFound(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/nope", "")
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[errs.HTTPError](t, rec); body.Code != "NOT_FOUND" {
		t.Fatalf("body = %+v", body)
	}
}
