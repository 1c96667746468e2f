package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGetPrintsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"displayName":"ada","region":"Norway","createdAt":"2023-11-14T22:13:20Z"}`))
	}))
	defer srv.Close()

	out, err := execute(t, NewGetCommand(func() string { return srv.URL }), "42")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"ada"`) || !strings.Contains(out, `"Norway"`) {
		t.Fatalf("output: %s", out)
	}
}

func TestGetRejectsBadID(t *testing.T) {
	if _, err := execute(t, NewGetCommand(func() string { return "http://unused" }), "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestGetSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"user not found"}`))
	}))
	defer srv.Close()

	_, err := execute(t, NewGetCommand(func() string { return srv.URL }), "7")
	if err == nil || !strings.Contains(err.Error(), "user not found") {
		t.Fatalf("expected not-found error, got: %v", err)
	}
}

func TestResolvePostsIDs(t *testing.T) {
	var got struct {
		IDs []int64 `json:"ids"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/users/resolve" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[],"totalCount":0}`))
	}))
	defer srv.Close()

	out, err := execute(t, NewResolveCommand(func() string { return srv.URL }), "7", "8,9")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(got.IDs) != 3 || got.IDs[0] != 7 || got.IDs[2] != 9 {
		t.Fatalf("posted ids: %v", got.IDs)
	}
	if !strings.Contains(out, "totalCount") {
		t.Fatalf("output: %s", out)
	}
}

func TestResolveRejectsBadIDs(t *testing.T) {
	if _, err := execute(t, NewResolveCommand(func() string { return "http://unused" }), "a", "b"); err == nil {
		t.Fatal("expected error for non-numeric ids")
	}
}

func TestListBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("filter") != `region == "Chile"` || q.Get("limit") != "5" {
			t.Fatalf("query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[],"totalCount":0}`))
	}))
	defer srv.Close()

	_, err := execute(t, NewListCommand(func() string { return srv.URL }),
		"--filter", `region == "Chile"`, "--limit", "5")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestHealthSurfacesUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"not_serving"}`))
	}))
	defer srv.Close()

	_, err := execute(t, NewHealthCommand(func() string { return srv.URL }))
	if err == nil || !strings.Contains(err.Error(), "not_serving") {
		t.Fatalf("expected not_serving error, got: %v", err)
	}
}

func TestStatsPrintsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stats" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalUsersCached":3,"regions":{"Norway":2,"Chile":1},"queueSize":0,"inFlight":0,"inFlightIds":[]}`))
	}))
	defer srv.Close()

	out, err := execute(t, NewStatsCommand(func() string { return srv.URL }))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "totalUsersCached") || !strings.Contains(out, "Norway") {
		t.Fatalf("output: %s", out)
	}
}

func TestParseIDArgs(t *testing.T) {
	ids, err := parseIDArgs([]string{" 1 ", "2,3"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Fatalf("ids: %v", ids)
	}
	for _, args := range [][]string{{}, {" , "}, {"x"}, {"0"}, {"-2"}} {
		if _, err := parseIDArgs(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
