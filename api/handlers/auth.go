package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/mailer"
	"github.com/bluelinehq/police-records-api/models"
)

// resetTokenTTL is how long a password reset token stays redeemable.
const resetTokenTTL = time.Hour

// dummyHash keeps the bcrypt compare on the login path even when the
// username does not exist, so response timing does not leak which usernames
// are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Tokens databases.ResetTokenDatabase
	Config config.Config
	Mail   *mailer.Mailer
}

// LoginHandler checks the credentials and mints a session
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.GetUserByUsername(ctx, req.Username)
	hash := dummyHash
	if err == nil {
		hash = user.Password
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil || err != nil {
		config.ErrorStatus("Invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if !user.IsActive {
		config.ErrorStatus("Account is deactivated", http.StatusForbidden, w, errors.New("inactive account"))
		return
	}

	if err := a.DB.SetLastLogin(ctx, user.ID); err != nil {
		zap.S().Warnw("failed to record last login", "user", user.ID, "error", err)
	}

	token := api.NewSession(user, r)
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(api.SessionTTL.Seconds()),
	})

	b, err := json.Marshal(map[string]models.User{"user": user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// LogoutHandler revokes the session and clears the cookie
func (a Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if c, err := r.Cookie(api.SessionCookie); err == nil {
		api.RevokeSession(c.Value, r)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	b, _ := json.Marshal(models.MessageResponse{Message: "Logged out successfully"})
	w.Write(b)
}

// MeHandler returns the account behind the current session
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.GetUser(ctx, api.SessionUserID(r.Context()))
	if err != nil {
		config.ErrorStatus("User not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.User{"user": user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// RegisterHandler creates an account; reachable only through the admin gate
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" ||
		req.Password != req.ConfirmPassword {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := a.DB.GetUserByUsername(ctx, req.Username); err == nil {
		config.ErrorStatus("Username already exists", http.StatusConflict, w, databases.ErrDuplicate)
		return
	}
	if _, err := a.DB.GetUserByEmail(ctx, req.Email); err == nil {
		config.ErrorStatus("Email already exists", http.StatusConflict, w, databases.ErrDuplicate)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	user, err := a.DB.CreateUser(ctx, models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		BadgeNumber: req.BadgeNumber,
		Department:  req.Department,
		Position:    req.Position,
		Phone:       req.Phone,
	})
	if err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.User{"user": user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ForgotPasswordHandler issues a reset token. The response never reveals
// whether the username exists; the signed token is only echoed back when no
// mail delivery is configured.
func (a Auth) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	nonRevealing := models.MessageResponse{Message: "If the username exists, a reset token has been generated"}

	user, err := a.DB.GetUserByUsername(ctx, req.Username)
	if err != nil {
		b, _ := json.Marshal(nonRevealing)
		w.Write(b)
		return
	}

	jti := uuid.New().String()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Config.SessionSecret))
	if err != nil {
		config.ErrorStatus("failed to generate token", http.StatusInternalServerError, w, err)
		return
	}

	if err := a.Tokens.CreateResetToken(ctx, models.PasswordResetToken{
		Token:     jti,
		UserID:    user.ID,
		ExpiresAt: now.Add(resetTokenTTL),
	}); err != nil {
		config.ErrorStatus("failed to store token", http.StatusInternalServerError, w, err)
		return
	}

	if a.Mail.Enabled() {
		if err := a.Mail.SendPasswordReset(user.Email, user.FirstName, signed); err != nil {
			zap.S().Errorw("failed to send reset email", "user", user.ID, "error", err)
		}
		b, _ := json.Marshal(nonRevealing)
		w.Write(b)
		return
	}

	// Demo mode: no mail key configured, hand the token to the caller.
	b, _ := json.Marshal(map[string]string{
		"message": "Password reset token generated",
		"token":   signed,
	})
	w.Write(b)
}

// ResetPasswordHandler redeems a reset token exactly once
func (a Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Token == "" || req.Password == "" ||
		(req.ConfirmPassword != "" && req.Password != req.ConfirmPassword) {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// Missing, expired, tampered and already-used tokens all fail with the
	// same message.
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(req.Token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Config.SessionSecret), nil
	})
	if err != nil {
		config.ErrorStatus("Invalid or expired token", http.StatusBadRequest, w, err)
		return
	}

	grant, err := a.Tokens.GetResetToken(ctx, claims.ID)
	if err != nil {
		config.ErrorStatus("Invalid or expired token", http.StatusBadRequest, w, err)
		return
	}
	if err := a.Tokens.DeleteResetToken(ctx, claims.ID); err != nil {
		config.ErrorStatus("Invalid or expired token", http.StatusBadRequest, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	if err := a.DB.UpdateUserPassword(ctx, grant.UserID, string(hash)); err != nil {
		config.ErrorStatus("Invalid or expired token", http.StatusBadRequest, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Password updated successfully"})
	w.Write(b)
}

// UpdateProfileHandler patches the caller's own profile
func (a Auth) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	patch := map[string]interface{}{}
	if req.FirstName != nil {
		patch["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		patch["lastName"] = *req.LastName
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.BadgeNumber != nil {
		patch["badgeNumber"] = *req.BadgeNumber
	}
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.Position != nil {
		patch["position"] = *req.Position
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.UpdateUser(ctx, api.SessionUserID(r.Context()), patch)
	if err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.User{"user": user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}
