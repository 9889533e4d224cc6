package event

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/internal/utils"
	"github.com/klokku/occasions/pkg/date"
	"github.com/klokku/occasions/pkg/kv_store"
	"github.com/klokku/occasions/pkg/relative_date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerClock = &utils.MockClock{FixedNow: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)}

func setupHandlerTest(t *testing.T, sortOption SortOption) (*mux.Router, Service) {
	service := NewEventService(NewRepository(kv_store.NewMemoryStore()), event_bus.NewEventBus())
	handler := NewHandler(service, func(ctx context.Context) SortOption { return sortOption }, handlerClock, relative_date.Standard)

	r := mux.NewRouter()
	r.HandleFunc("/api/event", handler.ListEvents).Methods("GET")
	r.HandleFunc("/api/event", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/order", handler.ReorderEvents).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}/summary", handler.GetSummary).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", handler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/event/{eventId}/instance/{date}", handler.DeleteInstance).Methods("DELETE")
	r.HandleFunc("/api/event/{eventId}/instance/{date}/note", handler.UpdateInstanceNote).Methods("PUT")
	r.HandleFunc("/api/backup", handler.ExportBackup).Methods("GET")
	r.HandleFunc("/api/backup", handler.ImportBackup).Methods("POST")
	return r, service
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEvents(t *testing.T, w *httptest.ResponseRecorder) []EventDTO {
	var events []EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&events))
	return events
}

func TestHandler_CreateEvent(t *testing.T) {
	t.Run("should create an event and return the collection", func(t *testing.T) {
		// given
		r, _ := setupHandlerTest(t, SortByDateDescending)

		// when
		w := doRequest(t, r, http.MethodPost, "/api/event",
			`{"name":" dentist_visit ","instances":[{"date":"2023-02-20","note":"cleaning"}]}`)

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		events := decodeEvents(t, w)
		require.Len(t, events, 1)
		assert.NotEmpty(t, events[0].Id)
		assert.Equal(t, "dentist_visit", events[0].Name)
		assert.Equal(t, "Dentist Visit", events[0].DisplayName)
		assert.Equal(t, "9 days ago", events[0].Label)
		assert.Equal(t, "cleaning", events[0].Instances[0].Note)
	})

	t.Run("should reject invalid bodies", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"not json", "nope"},
			{"blank name", `{"name":"  "}`},
			{"bad date", `{"name":"A","instances":[{"date":"20.02.2023"}]}`},
			{"missing date", `{"name":"A","instances":[{"note":"n"}]}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r, _ := setupHandlerTest(t, SortByDateDescending)

				w := doRequest(t, r, http.MethodPost, "/api/event", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), `"error"`)
			})
		}
	})
}

func TestHandler_ListEvents(t *testing.T) {
	// given
	r, service := setupHandlerTest(t, SortAlphabetically)
	ctx := context.Background()
	require.NoError(t, service.SaveAll(ctx, []Event{{Id: "b", Name: "b"}, {Id: "a", Name: "a"}}))

	// when
	w := doRequest(t, r, http.MethodGet, "/api/event", "")

	// then
	require.Equal(t, http.StatusOK, w.Code)
	events := decodeEvents(t, w)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].Id)
	assert.Equal(t, "", events[0].Label)
	assert.NotNil(t, events[0].Instances)
}

func TestHandler_UpdateEvent(t *testing.T) {
	r, service := setupHandlerTest(t, SortByDateDescending)
	require.NoError(t, service.SaveAll(context.Background(), []Event{{Id: "e", Name: "E"}}))

	t.Run("should rename and add the instance", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/event/e", `{"name":"Renamed","instance":{"date":"2023-03-01"}}`)

		require.Equal(t, http.StatusOK, w.Code)
		events := decodeEvents(t, w)
		assert.Equal(t, "Renamed", events[0].Name)
		assert.Equal(t, relative_date.Today, events[0].Label)
	})

	t.Run("should reject a missing instance date", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/event/e", `{"name":"Renamed"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetSummary(t *testing.T) {
	r, service := setupHandlerTest(t, SortByDateDescending)
	require.NoError(t, service.SaveAll(context.Background(), []Event{{Id: "e", Name: "school_trip", Instances: []Instance{
		{Date: date.New(2023, 2, 1)},
		{Date: date.New(2023, 2, 19)},
	}}}))

	t.Run("should return the summary", func(t *testing.T) {
		// when
		w := doRequest(t, r, http.MethodGet, "/api/event/e/summary", "")

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var summary SummaryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
		assert.Equal(t, "School Trip", summary.DisplayName)
		assert.Equal(t, "10 days ago", summary.Label)
		assert.Equal(t, 10, summary.DaysCount)
		require.NotNil(t, summary.LatestDate)
		assert.Equal(t, date.New(2023, 2, 19), *summary.LatestDate)
		require.NotNil(t, summary.AverageFrequency)
		assert.InDelta(t, 18.0, *summary.AverageFrequency, 0.0001)
	})

	t.Run("should return not found for an unknown event", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/event/unknown/summary", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Instances(t *testing.T) {
	r, service := setupHandlerTest(t, SortByDateDescending)
	require.NoError(t, service.SaveAll(context.Background(), []Event{{Id: "e", Name: "E", Instances: []Instance{
		{Date: date.New(2023, 2, 1)},
		{Date: date.New(2023, 2, 19)},
	}}}))

	t.Run("should set a note", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/event/e/instance/2023-02-01/note", `{"note":"rainy"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rainy", decodeEvents(t, w)[0].Instances[0].Note)
	})

	t.Run("should delete an instance", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/event/e/instance/2023-02-01", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []InstanceDTO{{Date: date.New(2023, 2, 19)}}, decodeEvents(t, w)[0].Instances)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/event/e/instance/yesterday", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ReorderAndDelete(t *testing.T) {
	r, service := setupHandlerTest(t, SortCustom)
	require.NoError(t, service.SaveAll(context.Background(), []Event{{Id: "a", Name: "A"}, {Id: "b", Name: "B"}}))

	w := doRequest(t, r, http.MethodPut, "/api/event/order", `{"ids":["b","a"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	events := decodeEvents(t, w)
	assert.Equal(t, "b", events[0].Id)
	assert.Equal(t, "a", events[1].Id)

	w = doRequest(t, r, http.MethodDelete, "/api/event/b", "")
	require.Equal(t, http.StatusOK, w.Code)
	events = decodeEvents(t, w)
	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].Id)
}

func TestHandler_Backup(t *testing.T) {
	t.Run("should import and export a backup", func(t *testing.T) {
		// given
		r, _ := setupHandlerTest(t, SortByDateDescending)
		backup := `[{"id":"x","name":"Dentist","date":"2023-01-15","previousDate":"2022-12-24"}]`

		// when
		importResponse := doRequest(t, r, http.MethodPost, "/api/backup", backup)
		exportResponse := doRequest(t, r, http.MethodGet, "/api/backup", "")

		// then
		assert.Equal(t, http.StatusNoContent, importResponse.Code)
		require.Equal(t, http.StatusOK, exportResponse.Code)
		assert.JSONEq(t, `[{"id":"x","name":"Dentist","instances":[{"date":"2022-12-24"},{"date":"2023-01-15"}]}]`,
			exportResponse.Body.String())
	})

	t.Run("should reject a malformed backup and keep the events", func(t *testing.T) {
		// given
		r, service := setupHandlerTest(t, SortByDateDescending)
		require.NoError(t, service.SaveAll(context.Background(), []Event{{Id: "a", Name: "A"}}))

		// when
		w := doRequest(t, r, http.MethodPost, "/api/backup", "{broken")

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
		events, err := service.GetEvents(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, eventIds(events))
	})
}
