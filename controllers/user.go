package controllers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"brew-commerce/middleware"
	"brew-commerce/models"
	"brew-commerce/store"
	"brew-commerce/utils"
)

const minPasswordLength = 8

// UserController handles registration, login, profile, and the OTP
// password-reset flow.
type UserController struct {
	Users  *store.UserStore
	OTPs   *store.OTPStore
	Email  *utils.EmailService
	Logger *zap.Logger
}

func NewUserController(users *store.UserStore, otps *store.OTPStore, email *utils.EmailService, logger *zap.Logger) *UserController {
	return &UserController{Users: users, OTPs: otps, Email: email, Logger: logger}
}

// Register creates a password-based account.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		CountryCode string `json:"country_code"`
		Phone       string `json:"phone"`
		Gender      string `json:"gender"`
		DOB         string `json:"dob"`
		Address     string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := uc.Users.FindByEmail(ctx, req.Email); err == nil {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		writeMessage(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       strings.ToLower(req.Email),
		Password:    string(hash),
		CountryCode: req.CountryCode,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DOB:         req.DOB,
		Address:     req.Address,
	}
	if err := uc.Users.Insert(ctx, &user); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// Login authenticates against the password partition. Legacy plain-text
// passwords still compare directly; bcrypt hashes go through bcrypt.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(creds.Password) < minPasswordLength {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, creds.Email)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "No user found")
		return
	}

	valid := false
	if strings.HasPrefix(user.Password, "$2") {
		valid = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) == nil
	} else {
		valid = user.Password == creds.Password
	}
	if !valid {
		writeMessage(w, http.StatusUnauthorized, "Password incorrect")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Success",
		"token":    token,
		"username": user.Username,
	})
}

// Logout marks the password-partition account inactive.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := uc.Users.UpdateStatus(ctx, claims.ID, "inactive"); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		writeMessage(w, http.StatusInternalServerError, "Failed to logout")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetProfile returns the caller's identity from either partition.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	identity, err := uc.Users.Resolve(ctx, claims.ID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

// UpdateProfile applies profile fields to whichever partition holds the
// caller.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Username string `json:"username"`
		Phone    string `json:"phone"`
		Gender   string `json:"gender"`
		DOB      string `json:"dob"`
		Address  string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	fields := bson.M{}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if req.DOB != "" {
		fields["dob"] = req.DOB
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if len(fields) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Nothing to update"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := uc.Users.UpdateProfile(ctx, claims.ID, fields); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Error updating profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Profile updated successfully"})
}

// SendResetOTP issues a password-reset code for a known email.
func (uc *UserController) SendResetOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := uc.Users.FindByEmail(ctx, req.Email); err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Email not found"})
		return
	}

	code, err := generateOTP()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to generate OTP")
		return
	}
	if err := uc.OTPs.Replace(ctx, req.Email, code); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to store OTP")
		return
	}

	if err := uc.Email.SendOTP(req.Email, code); err != nil {
		uc.Logger.Error("otp email failed", zap.String("email", req.Email), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to send OTP"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "OTP sent to your email"})
}

// VerifyOTP consumes a previously issued code.
func (uc *UserController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := uc.OTPs.Consume(ctx, req.Email, req.OTP); err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Invalid or expired OTP"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "OTP verified successfully"})
}

// ChangePassword rehashes and stores a new password after OTP verification.
func (uc *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Password must be at least 8 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := uc.Users.UpdatePassword(ctx, req.Email, string(hash)); err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Password updated successfully"})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
