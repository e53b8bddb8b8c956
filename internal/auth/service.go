package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arjunvnair/campus-event-backend/config"
	"github.com/arjunvnair/campus-event-backend/utils"
)

const (
	campusEmailDomain = "amity.edu"
	otpTTL            = 10 * time.Minute
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(input RegisterInput) error
	VerifyOTP(email, otp string) error
	ResendOTP(email string) error
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)
	Logout(refreshToken string) error

	// ExternalRegister creates a guest account for participants without
	// a campus login. Guests skip OTP verification and cannot sign in.
	ExternalRegister(input ExternalRegisterInput) (*User, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	EnrollmentNumber string
	PhoneNumber      string
	Branch           string
	Year             string
	Role             string
}

func (s *service) Register(in RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if !isCampusEmail(email) {
		return fmt.Errorf("only %s emails are allowed", campusEmailDomain)
	}

	role := strings.ToLower(in.Role)
	if role == "" {
		role = "student"
	}
	if role != "student" && role != "organizer" {
		return errors.New("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	phone, err := cleanPhone(in.PhoneNumber)
	if err != nil {
		return err
	}

	user := &User{
		Name:             strings.TrimSpace(in.Name),
		Email:            email,
		PasswordHash:     string(hash),
		EnrollmentNumber: strings.TrimSpace(in.EnrollmentNumber),
		PhoneNumber:      phone,
		Branch:           in.Branch,
		Year:             in.Year,
		Role:             role,
	}

	if err := s.repo.Create(user); err != nil {
		return err
	}

	return s.sendOTP(user)
}

func (s *service) sendOTP(user *User) error {
	otp := generateOTP()
	key := fmt.Sprintf("otp:%s", user.Email)

	if err := utils.SetToken(key, otp, otpTTL); err != nil {
		return errors.New("could not save verification code")
	}

	if err := utils.SendOTPEmail(user.Email, user.Name, otp); err != nil {
		return errors.New("failed to send verification email")
	}

	return nil
}

// =============================
// OTP Verification
// =============================

func (s *service) VerifyOTP(email, otp string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return errors.New("user not found")
	}
	if user.Verified {
		return nil
	}

	key := fmt.Sprintf("otp:%s", email)
	stored, err := utils.GetToken(key)
	if err != nil {
		return errors.New("verification code expired, request a new one")
	}

	if stored != otp {
		return errors.New("incorrect verification code")
	}

	if err := s.repo.MarkVerified(user.ID); err != nil {
		return errors.New("failed to verify account")
	}

	_ = utils.DeleteToken(key)
	return nil
}

func (s *service) ResendOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return errors.New("user not found")
	}
	if user.Verified {
		return errors.New("account already verified")
	}

	return s.sendOTP(user)
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("couldn't find your account")
		}
		return nil, nil, err
	}

	if user.External {
		return nil, nil, errors.New("guest accounts cannot sign in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	if !user.Verified {
		return nil, nil, errors.New("please verify your email first")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	if _, err := utils.GetToken(revokedKey(refreshToken)); !utils.IsTokenMissing(err) {
		return "", errors.New("session has been logged out")
	}

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateAccessToken(&user)
}

// =============================
// External Registration
// =============================

type ExternalRegisterInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

func (s *service) ExternalRegister(in ExternalRegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}

	// Reuse the existing guest account when the email is known.
	if existing, err := s.repo.FindByEmail(email); err == nil {
		if !existing.External {
			return nil, errors.New("email already belongs to a campus account")
		}
		return existing, nil
	}

	phone, err := cleanPhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		PhoneNumber: phone,
		Role:        "student",
		Verified:    true,
		External:    true,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// =============================
// Logout
// =============================

// Logout denylists the refresh token for the rest of its lifetime.
// Access tokens stay valid until they expire; they are short-lived.
func (s *service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return utils.SetToken(revokedKey(refreshToken), "1", s.refreshTTL)
}

func revokedKey(refreshToken string) string {
	return fmt.Sprintf("revoked:%s", refreshToken)
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Helpers
// =============================

func generateOTP() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("%06d", n.Int64())
}

func isCampusEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+campusEmailDomain)
}

func cleanPhone(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	re := regexp.MustCompile(`\D`)
	cleaned := re.ReplaceAllString(raw, "")

	// Strip leading 91 if present and length is 12
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}

	if len(cleaned) != 10 {
		return "", errors.New("invalid phone number format")
	}

	return cleaned, nil
}
