package registrysvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(core.RegistryConfig{BaseURL: srv.URL, Timeout: time.Second})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_FetchRecords(t *testing.T) {
	ada := alumni.Record{ID: "1", FirstName: "Ada", LastName: "Lovelace", GraduatedYear: "1990"}

	tests := []struct {
		name    string
		status  int
		body    interface{}
		want    []alumni.Record
		wantErr string
	}{
		{name: "ok", status: http.StatusOK, body: map[string]interface{}{"data": []alumni.Record{ada}}, want: []alumni.Record{ada}},
		{name: "empty", status: http.StatusOK, body: map[string]interface{}{"data": []alumni.Record{}}, want: []alumni.Record{}},
		{name: "server error", status: http.StatusInternalServerError, body: map[string]string{"error": "boom"}, wantErr: "registry: 500 boom"},
		{name: "no error message", status: http.StatusBadGateway, body: "", wantErr: "registry: 502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/alumni/info", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			recs, err := client.FetchRecords(context.Background())
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, recs)
		})
	}
}

func TestClient_SubmitRecord(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var nr alumni.NewRecord
			require.NoError(t, json.NewDecoder(r.Body).Decode(&nr))
			writeJSON(w, http.StatusCreated, map[string]interface{}{"data": alumni.Record{ID: "42", FirstName: nr.FirstName}})
		})

		rec, err := client.SubmitRecord(context.Background(), alumni.NewRecord{FirstName: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, alumni.Record{ID: "42", FirstName: "Ada"}, rec)
	})

	t.Run("rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": map[string]string{
				"lastName":     "this field is required",
				"emailAddress": "this field is required",
			}})
		})

		_, err := client.SubmitRecord(context.Background(), alumni.NewRecord{FirstName: "Ada"})
		vErr, ok := core.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []core.FieldError{
			{Field: "emailAddress", Error: "this field is required"},
			{Field: "lastName", Error: "this field is required"},
		}, vErr.Fields)
	})
}

func TestClient_RequestPasswordReset(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/forget-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	require.NoError(t, client.RequestPasswordReset(context.Background(), "admin@test.cd"))
	assert.Equal(t, map[string]string{"email": "admin@test.cd"}, got)
}

func TestClient_contextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []alumni.Record{}})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
