package site

import (
	"net/http"
	"testing"

	"dealdesk/database"
)

func TestSignUpFirstUserBecomesAdmin(t *testing.T) {
	resetDB(t)
	router := testRouter()

	body := map[string]string{"username": "founder", "password": "hunter2"}
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	var first database.AdminUser
	database.GetDB().Where("username = ?", "founder").First(&first)
	if !first.IsAdmin {
		t.Error("first user should be admin")
	}

	body = map[string]string{"username": "second", "password": "hunter2"}
	rec = doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	var second database.AdminUser
	database.GetDB().Where("username = ?", "second").First(&second)
	if second.IsAdmin {
		t.Error("second user should not be admin")
	}
}

func TestSignUpDuplicateUsername(t *testing.T) {
	resetDB(t)
	router := testRouter()

	body := map[string]string{"username": "founder", "password": "hunter2"}
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: got status %d, want 400", rec.Code)
	}
}

func TestSignInRotatesSessionToken(t *testing.T) {
	resetDB(t)
	router := testRouter()

	body := map[string]string{"username": "founder", "password": "hunter2"}
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got status %d: %s", rec.Code, rec.Body.String())
	}

	var before database.AdminUser
	database.GetDB().Where("username = ?", "founder").First(&before)

	rec = doJSON(t, router, http.MethodPost, "/auth/signin", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: got status %d: %s", rec.Code, rec.Body.String())
	}

	var after database.AdminUser
	database.GetDB().Where("username = ?", "founder").First(&after)
	if before.SessionToken == after.SessionToken {
		t.Error("session token was not rotated on sign-in")
	}

	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == AuthenticatedUserTokenCookieName && c.Value == after.SessionToken {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set to the new token")
	}
}

func TestSignInWrongPassword(t *testing.T) {
	resetDB(t)
	router := testRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", map[string]string{"username": "founder", "password": "hunter2"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/signin", map[string]string{"username": "founder", "password": "wrong"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}
