package sandbox

import (
	"context"
	"fmt"
	"strings"

	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"

	"github.com/dgrijalva/jwt-go"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// Sandbox passwords are hashed at the lowest bcrypt cost.
const passwordCost = bcrypt.MinCost

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if err := req.Validate(); err != nil {
		return model.User{}, response.InvalidData(err.Error())
	}
	email := strings.ToLower(req.Email)
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return model.User{}, fmt.Errorf("register: error hashing password: %w", err)
	}
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Eventers", AccountName: email})
	if err != nil {
		return model.User{}, fmt.Errorf("register: error generating otp secret: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.emails[email]; exists {
		s.mu.Unlock()
		return model.User{}, response.DuplicateEntry()
	}
	a := &account{
		user:      model.User{ID: newID(), Email: email, Name: req.Name, Role: role},
		password:  hash,
		otpSecret: key.Secret(),
	}
	now := s.now().UTC()
	a.user.CreatedAt = &now
	s.accounts[a.user.ID] = a
	s.emails[email] = a.user.ID
	s.mu.Unlock()

	if err := s.sendOTP(ctx, email, a.otpSecret); err != nil {
		logger.Errorf(ctx, "register: %v", err)
		return model.User{}, response.SomethingWrong()
	}
	return a.user, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) (model.Auth, error) {
	if err := req.Validate(); err != nil {
		return model.Auth{}, response.InvalidData(err.Error())
	}
	email := strings.ToLower(req.Email)

	s.mu.RLock()
	id, ok := s.emails[email]
	s.mu.RUnlock()
	if !ok {
		return model.Auth{}, response.UserNotExist()
	}

	stored, ok, err := s.otps.Get(ctx, otpKey(email))
	if err != nil {
		logger.Errorf(ctx, "verifyOTP: error reading otp: %v", err)
		return model.Auth{}, response.SomethingWrong()
	}
	if !ok {
		return model.Auth{}, response.OTPExpired()
	}
	if string(stored) != req.OTP {
		return model.Auth{}, response.OTPMismatch()
	}
	if err := s.otps.Delete(ctx, otpKey(email)); err != nil {
		logger.Warnf(ctx, "verifyOTP: could not drop used otp: %v", err)
	}

	s.mu.Lock()
	a := s.accounts[id]
	a.user.IsVerified = true
	u := a.user
	s.mu.Unlock()

	return s.authFor(u)
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.Auth, error) {
	if err := req.Validate(); err != nil {
		return model.Auth{}, response.InvalidData(err.Error())
	}
	email := strings.ToLower(req.Email)

	s.mu.RLock()
	var a account
	id, ok := s.emails[email]
	if ok {
		a = *s.accounts[id]
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(a.password, []byte(req.Password)) != nil {
		return model.Auth{}, response.CanNotLogin()
	}
	if !a.user.IsVerified {
		if err := s.sendOTP(ctx, email, a.otpSecret); err != nil {
			logger.Errorf(ctx, "login: %v", err)
		}
		return model.Auth{}, response.NotVerified()
	}
	return s.authFor(a.user)
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		logger.Debugf(ctx, "authenticate: rejecting token: %v", err)
		return model.User{}, response.Unauthorized()
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.User{}, response.Unauthorized()
	}
	sub, _ := claims["sub"].(string)

	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[sub]
	if !ok {
		return model.User{}, response.Unauthorized()
	}
	return a.user, nil
}

func (s *Service) authFor(u model.User) (model.Auth, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return model.Auth{}, fmt.Errorf("authFor: error signing token: %w", err)
	}
	return model.Auth{Token: signed, User: u}, nil
}

// SeedUser adds a verified account directly, for demos and tests.
func (s *Service) SeedUser(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return model.User{}, fmt.Errorf("seedUser: error hashing password: %w", err)
	}
	email = strings.ToLower(email)
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emails[email]; exists {
		return model.User{}, response.DuplicateEntry()
	}
	a := &account{
		user:     model.User{ID: newID(), Email: email, Name: name, Role: role, IsVerified: true, CreatedAt: &now},
		password: hash,
	}
	s.accounts[a.user.ID] = a
	s.emails[email] = a.user.ID
	logger.Debugf(ctx, "seedUser: added %s as %s", email, role)
	return a.user, nil
}

func (s *Service) Profile(_ context.Context, userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.publicUser(userID)
	if u == nil {
		return model.User{}, response.UserNotExist()
	}
	return *u, nil
}

// UpdateProfile renames the user and records an uploaded image under
// /uploads when one was sent.
func (s *Service) UpdateProfile(_ context.Context, userID string, in model.ProfileUpdate, imageName string) (model.User, error) {
	if err := in.Validate(); err != nil {
		return model.User{}, response.InvalidData(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[userID]
	if !ok {
		return model.User{}, response.UserNotExist()
	}
	if in.Name != "" {
		a.user.Name = in.Name
	}
	if imageName != "" {
		a.user.ProfileImage = "/uploads/" + imageName
	}
	return a.user, nil
}
