package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  userStore
	jwtSecret string
}

func newUserHandler(userRepo userStore, jwtSecret string) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// userPayload is the register/update request body. Passwords arrive in plain
// text over the wire and are hashed before they ever reach the database.
type userPayload struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerUser creates a new user account
func (h userHandler) registerUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload userPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("user", err))
			return
		}

		if payload.FullName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("fullname"))
			return
		}
		if payload.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if payload.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		hash, err := services.HashPassword(payload.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			FullName:     payload.FullName,
			Email:        payload.Email,
			PasswordHash: hash,
			Phone:        payload.Phone,
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

// login authenticates a user by email and password. An unknown email is a 404;
// a wrong password is a 401 with an explicit invalid-credentials body. On
// success the response carries the user id and a signed token.
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.userRepo.FindByEmail(payload.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("email not found: "+payload.Email))
			return
		}

		if !services.VerifyPassword(payload.Password, user.PasswordHash) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := services.IssueToken(user.ID, h.jwtSecret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"message": "Login successful",
			"id":      fmt.Sprintf("%d", user.ID),
			"token":   token,
		})
	}
}

// getAllUsers retrieves all users
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		h.responder.WriteJSON(w, users)
	}
}

// getUser retrieves a user by id
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// updateUser overwrites a user's profile. Full-overwrite merge: every supplied
// field replaces the stored value; a new password is rehashed, an empty one
// keeps the existing hash.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var payload userPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("user", err))
			return
		}

		user.FullName = payload.FullName
		user.Email = payload.Email
		user.Phone = payload.Phone
		if payload.Password != "" {
			hash, err := services.HashPassword(payload.Password)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
				return
			}
			user.PasswordHash = hash
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// deleteUser removes a user account
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		if err := h.userRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete user", "user", err))
			return
		}

		h.responder.WriteText(w, fmt.Sprintf("User account %d deleted", id))
	}
}
