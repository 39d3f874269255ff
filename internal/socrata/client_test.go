package socrata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/foodtruckfinder/internal/foodtruck"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		limit  int
		offset int
		want   string
	}{
		{
			name:  "first window",
			base:  "http://data.sfgov.org/resource/bbb8-hzi6.json",
			limit: 1000,
			want:  "http://data.sfgov.org/resource/bbb8-hzi6.json?$limit=1000&$offset=0",
		},
		{
			name:   "second window",
			base:   "http://data.sfgov.org/resource/bbb8-hzi6.json",
			limit:  1000,
			offset: 1000,
			want:   "http://data.sfgov.org/resource/bbb8-hzi6.json?$limit=1000&$offset=1000",
		},
		{
			name:   "existing query",
			base:   "https://example.test/r.json?$order=applicant",
			limit:  50,
			offset: 100,
			want:   "https://example.test/r.json?$order=applicant&$limit=50&$offset=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.base, tt.limit, tt.offset))
		})
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "data.sfgov.org/resource", "ftp://example.test/x", "http://"} {
		t.Run(base, func(t *testing.T) {
			_, err := NewClient(base)
			require.ErrorIs(t, err, ErrInvalidBaseURL)
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery, gotAccept, gotToken, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotToken = r.Header.Get("X-App-Token")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"applicant":"Al's Tacos","dayofweekstr":"Monday","start24":"08:00","end24":"14:00",
			 "location":"1 Main St","permit":"21MFF-00001","latitude":"37.7"},
			{"applicant":"Nameless"}
		]`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/resource/bbb8-hzi6.json",
		WithHTTPClient(server.Client()),
		WithAppToken(" token-1 "),
		WithUserAgent("foodtruckfinder/test"),
	)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, client.Limit())

	trucks, err := client.Fetch(context.Background(), 2000)
	require.NoError(t, err)

	assert.Equal(t, "$limit=1000&$offset=2000", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "token-1", gotToken)
	assert.Equal(t, "foodtruckfinder/test", gotUA)

	require.Len(t, trucks, 2)
	assert.Equal(t, foodtruck.Truck{
		Name:      "Al's Tacos",
		OpenDay:   "Monday",
		OpenTime:  "08:00",
		CloseTime: "14:00",
		Address:   "1 Main St",
	}, trucks[0])
	assert.Equal(t, foodtruck.Truck{Name: "Nameless"}, trucks[1])
}

func TestClient_Fetch_ScalarFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"applicant":"Numbers","location":12,"start24":null,"end24":"14:00","active":false}]`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	trucks, err := client.Fetch(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []foodtruck.Truck{{Name: "Numbers", Address: "12", CloseTime: "14:00"}}, trucks)
}

func TestClient_Fetch_CustomLimit(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithLimit(25))
	require.NoError(t, err)

	trucks, err := client.Fetch(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, trucks)
	assert.Equal(t, "$limit=25&$offset=50", gotQuery)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrUnexpectedStatus},
		{name: "not found", status: http.StatusNotFound, body: "", wantErr: ErrUnexpectedStatus},
		{name: "invalid json", status: http.StatusOK, body: `[{"applicant":`, wantErr: ErrDecode},
		{name: "object instead of array", status: http.StatusOK, body: `{"error":true}`, wantErr: ErrDecode},
		{name: "object in a mapped field", status: http.StatusOK, body: `[{"start24":{"h":8}}]`, wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = client.Fetch(context.Background(), 0)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Fetch_StatusErrorDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, strings.Repeat("x", 4096))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), 0)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, maxErrorBody)
	assert.Contains(t, statusErr.URL, "$offset=0")
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestClient_Fetch_TransportError(t *testing.T) {
	client, err := NewClient(DefaultBaseURL, WithHTTPClient(failingDoer{}))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), 0)
	require.ErrorIs(t, err, ErrRequest)
	assert.Contains(t, err.Error(), "connection refused")
}
