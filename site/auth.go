package site

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"dealdesk/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type contextKey string

const AuthenticatedUserContextKey = contextKey("authenticated_user")
const AuthenticatedUserTokenCookieName = "authenticated_user_token"

func getSignedInUserOrNil(r *http.Request) *database.AdminUser {
	user, _ := r.Context().Value(AuthenticatedUserContextKey).(*database.AdminUser)
	return user
}

// requireAdmin returns the signed-in admin, or writes a 401 and returns
// nil. Every admin-only mutation goes through this before touching the
// database, so unauthorized callers never cause a partial side effect.
func requireAdmin(w http.ResponseWriter, r *http.Request) *database.AdminUser {
	user := getSignedInUserOrNil(r)
	if user == nil || !user.IsAdmin {
		respondError(w, http.StatusUnauthorized, "admin access required")
		return nil
	}
	return user
}

func requireUser(w http.ResponseWriter, r *http.Request) *database.AdminUser {
	user := getSignedInUserOrNil(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return user
}

func generateAuthToken() (string, error) {
	const tokenLength = 32
	tokenBytes := make([]byte, tokenLength)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// TryPutUserInContextMiddleware resolves the session cookie to a user and
// stores it in the request context. Invalid cookies are cleared.
func TryPutUserInContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AuthenticatedUserTokenCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		var user database.AdminUser
		result := database.GetDB().Where(&database.AdminUser{SessionToken: cookie.Value}).First(&user)
		if result.Error != nil {
			http.SetCookie(w, &http.Cookie{
				Name:   AuthenticatedUserTokenCookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AuthenticatedUserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthProtectedMiddleware guards the server-rendered dashboard pages.
func AuthProtectedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getSignedInUserOrNil(r) == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSignUp creates an account. The very first account becomes the
// admin; later ones start without admin rights.
func UserSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(w, r, err, "failed to hash password")
		return
	}

	token, err := generateAuthToken()
	if err != nil {
		respondInternal(w, r, err, "failed to generate session token")
		return
	}

	var userCount int64
	if result := database.GetDB().Model(&database.AdminUser{}).Count(&userCount); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to count users")
		return
	}

	newUser := database.AdminUser{
		Username:     req.Username,
		PasswordHash: passwordHash,
		SessionToken: token,
		IsAdmin:      userCount == 0,
	}
	if result := database.GetDB().Create(&newUser); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "username already taken")
			return
		}
		respondInternal(w, r, result.Error, "failed to create user")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "isAdmin": newUser.IsAdmin})
}

func UserSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user database.AdminUser
	result := database.GetDB().Where(&database.AdminUser{Username: req.Username}).First(&user)
	if result.Error != nil {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	// rotate the session token on every sign-in
	token, err := generateAuthToken()
	if err != nil {
		respondInternal(w, r, err, "failed to generate session token")
		return
	}
	user.SessionToken = token
	if result := database.GetDB().Save(&user); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to store session token")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "isAdmin": user.IsAdmin})
}

func UserLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   AuthenticatedUserTokenCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthenticatedUserTokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
