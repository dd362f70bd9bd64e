package aur

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newAURServer stands in for the whole AUR site: RPC, cgit and package
// pages under one mux.
func newAURServer(t *testing.T, pkgbuildStatus int, infoBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cgit/aur.git/plain/PKGBUILD", func(w http.ResponseWriter, r *http.Request) {
		if pkgbuildStatus != http.StatusOK {
			w.WriteHeader(pkgbuildStatus)
			return
		}
		fmt.Fprint(w, "pkgname=neovim-nightly-bin\n")
	})
	mux.HandleFunc("/rpc/v5/info/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, infoBody)
	})
	mux.HandleFunc("/packages/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("O") == "0" {
			fmt.Fprint(w, pageHTML(commentSection(100, 101)))
			return
		}
		fmt.Fprint(w, pageHTML())
	})
	return httptest.NewServer(mux)
}

func TestCollect_DegradesWithoutPkgbuild(t *testing.T) {
	srv := newAURServer(t, http.StatusInternalServerError,
		`{"resultcount":1,"version":5,"results":[{"ID":1,"Name":"neovim-nightly-bin","NumVotes":42}]}`)
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	ev, err := c.Collect(context.Background(), "neovim-nightly-bin")
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if ev.Build != "" {
		t.Errorf("build = %q, want empty after fetch failure", ev.Build)
	}
	if ev.Metadata.Name != "neovim-nightly-bin" {
		t.Errorf("metadata name = %q", ev.Metadata.Name)
	}
	if ev.Metadata.NumVotes != 42 {
		t.Errorf("NumVotes = %d, want 42", ev.Metadata.NumVotes)
	}
	if len(ev.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(ev.Comments))
	}
	for _, comment := range ev.Comments {
		if !comment.Pinned {
			t.Errorf("comment %d should be pinned (first page, first section)", comment.ID)
		}
	}
}

func TestCollect_MetadataNameMatchesRequest(t *testing.T) {
	srv := newAURServer(t, http.StatusOK,
		`{"resultcount":1,"version":5,"results":[{"ID":7,"Name":"yay","NumVotes":2042}]}`)
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	ev, err := c.Collect(context.Background(), "yay")
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if ev.Metadata.Name != "yay" {
		t.Errorf("metadata name = %q, want yay", ev.Metadata.Name)
	}
	if !strings.HasPrefix(ev.Build, "pkgname=") {
		t.Errorf("build = %q", ev.Build)
	}
}

func TestCollect_MetadataFailureIsFatal(t *testing.T) {
	srv := newAURServer(t, http.StatusOK, `{"resultcount":0,"version":5,"results":[]}`)
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Collect(context.Background(), "ghost")
	if !errors.Is(err, ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}
