package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

type ctxKey struct{}

// decodeSensitive decodes a JSON object body and decrypts its sensitive
// fields, keeping values that are not ciphertext.
func (b *Backend) decodeSensitive(r *http.Request, v any) error {
	var obj map[string]any
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		return err
	}
	obj = b.cipher.DecryptFields(obj, crypto.DefaultSensitiveFields)

	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var body models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}
	if body.Email == "" || body.Password == "" {
		writeValidation(w, "email", "field required")
		return
	}
	password, err := b.cipher.Decrypt(body.Password)
	if err != nil {
		password = body.Password
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if strings.EqualFold(u.user.Email, body.Email) {
			utils.WriteDetail(w, "Email already registered", http.StatusBadRequest)
			return
		}
	}

	now := time.Now().UTC()
	// student_id and phone are kept as received, i.e. encrypted at rest.
	user := models.User{
		UserID:     b.newID(),
		Email:      body.Email,
		FullName:   body.FullName,
		Role:       body.Role,
		StudentID:  body.StudentID,
		Department: body.Department,
		Title:      body.Title,
		Phone:      body.Phone,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.users[user.UserID] = &userRecord{user: user, password: password}

	_, _ = utils.WriteJSON(w, user, http.StatusCreated)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := b.decodeSensitive(r, &creds); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	b.mu.Lock()
	var found *userRecord
	for _, u := range b.users {
		if strings.EqualFold(u.user.Email, creds.Email) && u.password == creds.Password {
			found = u
			break
		}
	}
	if found != nil {
		now := time.Now().UTC()
		found.user.LastLogin = &now
	}
	signKey := b.signKey
	b.mu.Unlock()

	if found == nil {
		utils.WriteDetail(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWTToken(tokenIssuer, found.user.UserID, found.user.Role, tokenDuration, signKey)
	if err != nil {
		b.logger.Err(err).Msg("creation of token failed")
		utils.WriteDetail(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        found.user.Profile(),
	}, http.StatusOK)
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, currentUser(r), http.StatusOK)
}

// auth rejects requests without a valid bearer token with 401 and stores
// the caller in the request context.
func (b *Backend) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			utils.WriteDetail(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		b.mu.Lock()
		signKey := b.signKey
		b.mu.Unlock()

		claims, err := utils.ValidateAndParseJWTToken(tokenString, signKey, tokenIssuer)
		if err != nil {
			logger.FromContext(r.Context()).Debug().Err(err).Msg("rejecting token")
			utils.WriteDetail(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}
		userID, _ := claims.UserID()

		b.mu.Lock()
		record, ok := b.users[userID]
		var user models.User
		if ok {
			user = record.user
		}
		b.mu.Unlock()

		if !ok {
			utils.WriteDetail(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func currentUser(r *http.Request) models.User {
	user, _ := r.Context().Value(ctxKey{}).(models.User)
	return user
}

func writeValidation(w http.ResponseWriter, field, msg string) {
	_, _ = utils.WriteJSON(w, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body", field}, "msg": msg, "type": "value_error"}},
	}, http.StatusUnprocessableEntity)
}
