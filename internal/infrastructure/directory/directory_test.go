package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NormalizesGuest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-guest", r.URL.Path)
		assert.Equal(t, "g-abc123", r.URL.Query().Get("id"))
		assert.Equal(t, "evt-1", r.URL.Query().Get("event_id"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"first_name":" Ada ","last_name":"Lovelace","organization":"Analytical Engines"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "secret", EventID("evt-1"))

	a, err := c.Resolve(context.Background(), " g-abc123 ")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", a.Name)
	assert.Equal(t, "Analytical Engines", a.Company)
}

func TestResolve_PrefersName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Grace Hopper","first_name":"G","company":"Navy","org":"ignored"}`))
	}))
	defer srv.Close()

	a, err := New(srv.URL, "k").Resolve(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", a.Name)
	assert.Equal(t, "Navy", a.Company)
	assert.True(t, a.Identifiable())
}

func TestResolve_IgnoresNonStringFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":null,"first_name":"Alan","last_name":7,"email":"alan@example.com","company":{"id":1},"org":"Bletchley"}`))
	}))
	defer srv.Close()

	a, err := New(srv.URL, "k").Resolve(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "Alan", a.Name)
	assert.Equal(t, "Bletchley", a.Company)
	assert.Equal(t, "alan@example.com", a.Email)
}

func TestResolve_EmptyGuestIsReturnedUnvalidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a, err := New(srv.URL, "k").Resolve(context.Background(), "T")
	require.NoError(t, err)
	assert.False(t, a.Identifiable())
}

func TestResolve_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Guest not found"}`, "Guest not found"},
		{"error field", `{"error":"bad key"}`, "bad key"},
		{"plain text", `upstream down`, "upstream down"},
		{"empty body", ``, "HTTP 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "k").Resolve(context.Background(), "T")
			require.ErrorIs(t, err, errs.ErrDirectoryStatus)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolve_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Resolve(context.Background(), "T")
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestResolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "k", Timeout(30*time.Millisecond))

	_, err := c.Resolve(context.Background(), "T")
	assert.Error(t, err)
}

func TestMarkCheckedIn(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/update-guest-status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL, "k", EventID("evt-9")).MarkCheckedIn(context.Background(), "g-1")
	require.NoError(t, err)

	assert.Equal(t, "g-1", got["id"])
	assert.Equal(t, true, got["checked_in"])
	assert.Equal(t, "evt-9", got["event_id"])
}

func TestMarkCheckedIn_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "k").MarkCheckedIn(context.Background(), "g-1")
	require.ErrorIs(t, err, errs.ErrDirectoryStatus)
	assert.Contains(t, err.Error(), "forbidden")
}
