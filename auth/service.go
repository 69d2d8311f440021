package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/mail"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/indieinfra/vitrine/asset"
	vmail "github.com/indieinfra/vitrine/mail"
	"github.com/indieinfra/vitrine/model"
	"github.com/indieinfra/vitrine/storage/record"
)

// ResetCodeTTL is how long a password reset code stays valid.
const ResetCodeTTL = 10 * time.Minute

const minPasswordLen = 8

// AdminRecords is the slice of the record store the admin service depends on.
type AdminRecords interface {
	CreateAdmin(ctx context.Context, name, email, passwordHash, approvalToken string) (model.Admin, error)
	GetAdmin(ctx context.Context, id int64) (model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (model.Admin, error)
	GetAdminByApprovalToken(ctx context.Context, token string) (model.Admin, error)
	ApproveAdmin(ctx context.Context, id int64) error
	DeleteAdmin(ctx context.Context, id int64) error
	SetResetOTP(ctx context.Context, id int64, otp string, expires time.Time) error
	UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error
}

// Service manages admin accounts. New registrations are held unapproved
// until someone follows the approval link mailed to the support address.
type Service struct {
	records        AdminRecords
	sender         vmail.Sender
	jwtSecret      string
	tokenTTL       time.Duration
	supportAddress string
	publicURL      string
}

func NewService(records AdminRecords, sender vmail.Sender, jwtSecret string, tokenTTL time.Duration, supportAddress, publicURL string) *Service {
	return &Service{
		records:        records,
		sender:         sender,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		supportAddress: supportAddress,
		publicURL:      publicURL,
	}
}

func mapRecordErr(err error) error {
	if errors.Is(err, record.ErrNotFound) {
		return asset.ErrNotFound
	}

	return err
}

// Register creates an unapproved admin and mails an approval request to the
// support address. Mail delivery failure does not undo the registration.
func (s *Service) Register(ctx context.Context, name, email, password string) (model.Admin, error) {
	if name == "" {
		return model.Admin{}, fmt.Errorf("%w: adminName is required", asset.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Admin{}, fmt.Errorf("%w: email is not valid", asset.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return model.Admin{}, fmt.Errorf("%w: password must be at least %d characters", asset.ErrValidation, minPasswordLen)
	}

	if _, err := s.records.GetAdminByEmail(ctx, email); err == nil {
		return model.Admin{}, fmt.Errorf("%w: email already registered", asset.ErrConflict)
	} else if !errors.Is(err, record.ErrNotFound) {
		return model.Admin{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Admin{}, fmt.Errorf("hash password: %w", err)
	}

	approvalToken := uuid.NewString()
	admin, err := s.records.CreateAdmin(ctx, name, email, string(hash), approvalToken)
	if err != nil {
		return model.Admin{}, fmt.Errorf("%w: create admin: %v", asset.ErrPersistence, err)
	}

	msg := vmail.ApprovalRequest(s.supportAddress, name, email,
		s.reviewURL(approvalToken, "approve"), s.reviewURL(approvalToken, "deny"))
	if err := s.sender.Send(ctx, msg); err != nil {
		log.Printf("approval request mail for %q not delivered: %v", email, err)
	}

	return admin, nil
}

// Login checks the password and issues a session token. Unapproved accounts
// cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (string, model.Admin, error) {
	admin, err := s.records.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return "", model.Admin{}, fmt.Errorf("%w: invalid credentials", asset.ErrUnauthorized)
		}
		return "", model.Admin{}, fmt.Errorf("load admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", model.Admin{}, fmt.Errorf("%w: invalid credentials", asset.ErrUnauthorized)
	}

	if !admin.Approved {
		return "", model.Admin{}, fmt.Errorf("%w: account is pending approval", asset.ErrUnauthorized)
	}

	token, err := IssueToken(s.jwtSecret, s.tokenTTL, admin)
	if err != nil {
		return "", model.Admin{}, err
	}

	return token, admin, nil
}

// Authenticate resolves a session token to its admin, rejecting tokens for
// deleted or since-unapproved accounts.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (model.Admin, error) {
	claims, err := VerifyToken(s.jwtSecret, tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Admin{}, fmt.Errorf("%w: token expired", asset.ErrUnauthorized)
		}
		return model.Admin{}, fmt.Errorf("%w: invalid token", asset.ErrUnauthorized)
	}

	admin, err := s.records.GetAdmin(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return model.Admin{}, fmt.Errorf("%w: account no longer exists", asset.ErrUnauthorized)
		}
		return model.Admin{}, fmt.Errorf("load admin: %w", err)
	}

	if !admin.Approved {
		return model.Admin{}, fmt.Errorf("%w: account is pending approval", asset.ErrUnauthorized)
	}

	return admin, nil
}

// Review resolves an approval link. Approving marks the account usable;
// denying deletes the registration. The registrant is notified either way.
func (s *Service) Review(ctx context.Context, approvalToken, action string) (model.Admin, error) {
	if action != "approve" && action != "deny" {
		return model.Admin{}, fmt.Errorf("%w: action must be approve or deny", asset.ErrValidation)
	}

	admin, err := s.records.GetAdminByApprovalToken(ctx, approvalToken)
	if err != nil {
		return model.Admin{}, mapRecordErr(err)
	}

	if action == "approve" {
		if err := s.records.ApproveAdmin(ctx, admin.ID); err != nil {
			return model.Admin{}, mapRecordErr(err)
		}
		admin.Approved = true
	} else {
		if err := s.records.DeleteAdmin(ctx, admin.ID); err != nil {
			return model.Admin{}, mapRecordErr(err)
		}
	}

	if err := s.sender.Send(ctx, vmail.ApprovalResult(admin.Email, admin.Approved)); err != nil {
		log.Printf("approval result mail for %q not delivered: %v", admin.Email, err)
	}

	return admin, nil
}

// RequestReset issues a one-time reset code and mails it to the account.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	admin, err := s.records.GetAdminByEmail(ctx, email)
	if err != nil {
		return mapRecordErr(err)
	}

	otp, err := newResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expires := time.Now().UTC().Add(ResetCodeTTL)
	if err := s.records.SetResetOTP(ctx, admin.ID, otp, expires); err != nil {
		return fmt.Errorf("%w: store reset code: %v", asset.ErrPersistence, err)
	}

	if err := s.sender.Send(ctx, vmail.ResetCode(admin.Email, otp, int(ResetCodeTTL.Minutes()))); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}

	return nil
}

// ConfirmReset verifies the code and sets the new password. The stored code
// is cleared on success so it can be used only once.
func (s *Service) ConfirmReset(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", asset.ErrValidation, minPasswordLen)
	}

	admin, err := s.records.GetAdminByEmail(ctx, email)
	if err != nil {
		return mapRecordErr(err)
	}

	if admin.ResetOTP == "" || admin.ResetOTP != otp {
		return fmt.Errorf("%w: invalid reset code", asset.ErrUnauthorized)
	}
	if admin.ResetOTPExpires == nil || time.Now().UTC().After(*admin.ResetOTPExpires) {
		return fmt.Errorf("%w: reset code expired", asset.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.records.UpdateAdminPassword(ctx, admin.ID, string(hash)); err != nil {
		return fmt.Errorf("%w: update password: %v", asset.ErrPersistence, err)
	}

	return nil
}

func (s *Service) reviewURL(token, action string) string {
	q := url.Values{"token": {token}, "action": {action}}
	return fmt.Sprintf("%s/api/admin/approval?%s", s.publicURL, q.Encode())
}

// newResetCode draws a uniform six digit code.
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
