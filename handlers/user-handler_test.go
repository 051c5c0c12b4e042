package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestRegisterUser(t *testing.T) {
	router, _, store := setupHTTP(t)
	cookie := sessionCookieFor(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/users", `{"email":"a@x.com","displayName":"Ana"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["insertedId"] == "" {
		t.Fatalf("no insertedId in response: %s", rec.Body.String())
	}
	if len(store.users) != 1 || store.users[0].Extra["displayName"] != "Ana" {
		t.Fatalf("unexpected stored user: %+v", store.users)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _, _ := setupHTTP(t)
	cookie := sessionCookieFor(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/users", `{"email":"a@x.com"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("first register: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/users", `{"email":"a@x.com"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status=%d, want 400", rec.Code)
	}
}

func TestRegisterRequiresEmail(t *testing.T) {
	router, _, _ := setupHTTP(t)
	cookie := sessionCookieFor(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/users", `{"displayName":"Ana"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestGetUser(t *testing.T) {
	router, _, _ := setupHTTP(t)
	cookie := sessionCookieFor(t, router, "a@x.com")

	// Absent user is a 200 with a null body, not an error.
	rec := doJSON(t, router, http.MethodGet, "/user?email=nobody@x.com", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("absent user: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Fatalf("absent user rendered as %q, want null", got)
	}

	rec = doJSON(t, router, http.MethodPost, "/users", `{"email":"a@x.com","displayName":"Ana"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/user?email=a@x.com", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var user map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user["email"] != "a@x.com" || user["displayName"] != "Ana" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user["createdAt"] == nil {
		t.Fatal("user has no createdAt stamp")
	}
}

func TestGetUserRequiresEmail(t *testing.T) {
	router, _, _ := setupHTTP(t)
	cookie := sessionCookieFor(t, router, "a@x.com")

	rec := doJSON(t, router, http.MethodGet, "/user", "", cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}
