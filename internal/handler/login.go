package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Password string `json:"password"`
}

// LoginHandler exchanges the admin password for a bearer token. Only mounted
// when an admin password is configured.
func LoginHandler(passwordHash []byte, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Password == "" {
			http.Error(w, "password required", http.StatusBadRequest)
			return
		}

		if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(req.Password)); err != nil {
			http.Error(w, "invalid password", http.StatusUnauthorized)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"jti": uuid.NewString(),
			"exp": jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		})
		tokenString, err := token.SignedString([]byte(secret))
		if err != nil {
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
	}
}
