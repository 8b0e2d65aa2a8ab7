package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "token": "tok123"})
	})
	mux.HandleFunc("/api/groups", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		json.NewEncoder(w).Encode([]Group{{ID: 1, Name: "A"}, {ID: 2, Name: "B", OrderNum: 1}})
	})
	mux.HandleFunc("/api/group-orders", func(w http.ResponseWriter, r *http.Request) {
		var assignments []Assignment
		_ = json.NewDecoder(r.Body).Decode(&assignments)
		if len(assignments) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "empty batch"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	return httptest.NewServer(mux)
}

func TestLoginStoresToken(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Login(context.Background(), "admin", "hunter2"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if c.Token != "tok123" {
		t.Fatalf("token = %q, want tok123", c.Token)
	}

	groups, err := c.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if len(groups) != 2 || groups[1].Name != "B" {
		t.Fatalf("groups = %+v", groups)
	}
}

func TestLoginFailureReportsMessage(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL)
	err := c.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("Login() accepted bad credentials")
	}
	if c.Token != "" {
		t.Fatalf("token stored on failed login: %q", c.Token)
	}
}

func TestListGroupsWithoutTokenFails(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListGroups(context.Background()); err == nil {
		t.Fatal("ListGroups() without token succeeded")
	}
}

func TestSaveGroupOrderReportsRejection(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "tok123"
	if err := c.SaveGroupOrder(context.Background(), nil); err == nil {
		t.Fatal("rejected batch did not surface an error")
	}
	if err := c.SaveGroupOrder(context.Background(), []Assignment{{ID: 1, OrderNum: 0}}); err != nil {
		t.Fatalf("SaveGroupOrder() error = %v", err)
	}
}
