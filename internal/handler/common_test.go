package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/repository"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not authenticated", lifecycle.ErrNotAuthenticated, http.StatusUnauthorized},
		{"wrong role", lifecycle.ErrWrongRole, http.StatusForbidden},
		{"not owner", lifecycle.ErrNotOwner, http.StatusForbidden},
		{"own donation", lifecycle.ErrOwnDonation, http.StatusForbidden},
		{"invalid transition", lifecycle.ErrInvalidTransition, http.StatusConflict},
		{"write conflict", repository.ErrConflict, http.StatusConflict},
		{"invalid event", lifecycle.ErrInvalidEvent, http.StatusBadRequest},
		{"donation missing", repository.ErrDonationNotFound, http.StatusNotFound},
		{"user missing", repository.ErrUserNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(t)
			if err := writeDomainError(c, tc.err); err != nil {
				t.Fatalf("writeDomainError returned %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestWriteDomainErrorHidesStorageDetails(t *testing.T) {
	c, rec := testContext(t)
	if err := writeDomainError(c, errors.New("table donations is gone")); err != nil {
		t.Fatalf("writeDomainError returned %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", rec.Code)
	}
	if body := rec.Body.String(); body == "" || strings.Contains(body, "donations is gone") {
		t.Fatalf("internal detail leaked to client: %q", body)
	}
}

func TestGetActorClaimTypes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want uint64
	}{
		{"json number", float64(7), 7},
		{"native uint64", uint64(9), 9},
		{"string subject", "12", 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testContext(t)
			c.Set("user_id", tc.raw)
			c.Set("role", lifecycle.RoleNGO)
			a, err := getActor(c)
			if err != nil {
				t.Fatalf("getActor: %v", err)
			}
			if a.ID != tc.want || a.Role != lifecycle.RoleNGO {
				t.Fatalf("actor %+v", a)
			}
		})
	}
}

func TestGetActorRejectsIncompleteIdentity(t *testing.T) {
	c, _ := testContext(t)
	if _, err := getActor(c); err == nil {
		t.Fatal("empty context accepted")
	}

	c, _ = testContext(t)
	c.Set("user_id", float64(7))
	if _, err := getActor(c); err == nil {
		t.Fatal("missing role accepted")
	}

	c, _ = testContext(t)
	c.Set("user_id", "not-a-number")
	c.Set("role", lifecycle.RoleDonor)
	if _, err := getActor(c); err == nil {
		t.Fatal("garbage subject accepted")
	}
}

func TestPathID(t *testing.T) {
	c, _ := testContext(t)
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := pathID(c)
	if err != nil || id != 42 {
		t.Fatalf("pathID = %d, %v", id, err)
	}

	for _, bad := range []string{"", "0", "-1", "abc"} {
		c, _ := testContext(t)
		c.SetParamNames("id")
		c.SetParamValues(bad)
		if _, err := pathID(c); err == nil {
			t.Fatalf("pathID accepted %q", bad)
		}
	}
}
