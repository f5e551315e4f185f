package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riddhisc/hrdash/internal/oauth"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	userRepo      repository.UserRepo
	verifier      oauth.TokenVerifier
	jwtSecret     string
	tokenDuration time.Duration
}

func NewUsersHandler(ur repository.UserRepo, verifier oauth.TokenVerifier, jwtSecret string, tokenDuration time.Duration) *UsersHandler {
	return &UsersHandler{userRepo: ur, verifier: verifier, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type authResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	Token string          `json:"token"`
}

func (h *UsersHandler) issueToken(u *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  u.ID,
		"role": string(u.Role),
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *UsersHandler) respondAuth(w http.ResponseWriter, u *models.User, status int) {
	tokenStr, err := h.issueToken(u)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, authResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: tokenStr}, status)
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeServerError(w, err)
		return
	}

	u := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := models.Validate(u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user: "+err.Error())
		return
	}

	if _, err := h.userRepo.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		writeServerError(w, err)
		return
	}

	h.respondAuth(w, u, http.StatusCreated)
}

// Login must not reveal whether the email exists: unknown email and bad
// password produce the same response.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.userRepo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeServerError(w, err)
		return
	}
	// compare against an empty hash even when the user is missing so the
	// response timing does not differ
	hash := ""
	if u != nil {
		hash = u.PasswordHash
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil || u == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.respondAuth(w, u, http.StatusOK)
}

// GoogleLogin verifies the external token and finds-or-creates the account.
// OAuth-provisioned accounts never carry a local password.
func (h *UsersHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	claims, err := h.verifier.Verify(r.Context(), req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid google token")
		return
	}

	ctx := r.Context()
	u, err := h.userRepo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		u = &models.User{
			Name:     claims.Name,
			Email:    strings.ToLower(claims.Email),
			GoogleID: claims.Subject,
			Role:     models.RoleUser,
		}
		if u.Name == "" {
			u.Name = u.Email
		}
		if _, err := h.userRepo.CreateUser(ctx, u); err != nil {
			writeServerError(w, err)
			return
		}
	} else if u.GoogleID == "" {
		// existing local account logging in via Google for the first time
		u.GoogleID = claims.Subject
		if err := h.userRepo.UpdateUser(ctx, u); err != nil {
			writeServerError(w, err)
			return
		}
	}

	h.respondAuth(w, u, http.StatusOK)
}

func (h *UsersHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.userRepo.GetUserByID(r.Context(), userID(r))
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, u, http.StatusOK)
}

type profileUpdateRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Profile  *models.Profile `json:"profile"`
}

// UpdateProfile rehashes the password whenever a new one is supplied.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	u, err := h.userRepo.GetUserByID(ctx, userID(r))
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeServerError(w, err)
			return
		}
		u.PasswordHash = string(hash)
	}
	if req.Profile != nil {
		u.Profile = req.Profile
	}
	if err := models.Validate(u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user: "+err.Error())
		return
	}

	if err := h.userRepo.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "email already in use")
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUsers(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, users, http.StatusOK)
}
