// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestCSRF_GetSetsCookie(t *testing.T) {
	next, called := okHandler()
	handler := CSRF(next)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !*called {
		t.Fatal("GET should pass through")
	}

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("GET without a token should set the CSRF cookie")
	}
	if len(token) != csrfTokenLength*2 {
		t.Errorf("token length = %d, want %d hex chars", len(token), csrfTokenLength*2)
	}
}

func TestCSRF_PostWithoutToken_Forbidden(t *testing.T) {
	next, called := okHandler()
	handler := CSRF(next)

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *called {
		t.Error("POST without a token must not reach the handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCSRF_PostWithMismatchedToken_Forbidden(t *testing.T) {
	next, called := okHandler()
	handler := CSRF(next)

	form := url.Values{}
	form.Set(CSRFFormField, "attacker-token")

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "real-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *called {
		t.Error("mismatched token must not reach the handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCSRF_PostWithMatchingToken_Passes(t *testing.T) {
	next, called := okHandler()
	handler := CSRF(next)

	form := url.Values{}
	form.Set(CSRFFormField, "matching-token")

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "matching-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !*called {
		t.Error("matching token should reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCSRFTokenFromCtx(t *testing.T) {
	var ctxToken string
	handler := CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxToken = CSRFTokenFromCtx(r.Context())
	}))

	// First visit: the request carries no cookie, but the page rendered by
	// this very request must still see the token that went out on the
	// response, or its forms would submit an empty token.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxToken == "" {
		t.Fatal("first request should carry a token in context")
	}
	var cookieToken string
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			cookieToken = c.Value
		}
	}
	if ctxToken != cookieToken {
		t.Errorf("context token %q != cookie token %q", ctxToken, cookieToken)
	}

	// Returning visit: the existing cookie token flows through.
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if ctxToken != "existing-token" {
		t.Errorf("got %q, want existing-token", ctxToken)
	}

	if got := CSRFTokenFromCtx(context.Background()); got != "" {
		t.Errorf("bare context: got %q, want empty", got)
	}
}
