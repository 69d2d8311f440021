package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/indieinfra/vitrine/model"
)

func (s *Store) adminCols() string {
	return "id, admin_name, email, password, approved, approval_token, reset_otp, reset_otp_expires, created_at"
}

func scanAdmin(row interface{ Scan(...any) error }) (model.Admin, error) {
	var a model.Admin
	var otp sql.NullString
	var otpExpires sql.NullTime

	err := row.Scan(&a.ID, &a.AdminName, &a.Email, &a.PasswordHash, &a.Approved, &a.ApprovalToken, &otp, &otpExpires, &a.CreatedAt)
	if err != nil {
		return model.Admin{}, err
	}

	if otp.Valid {
		a.ResetOTP = otp.String
	}
	if otpExpires.Valid {
		t := otpExpires.Time
		a.ResetOTPExpires = &t
	}

	return a, nil
}

func (s *Store) CreateAdmin(ctx context.Context, name, email, passwordHash, approvalToken string) (model.Admin, error) {
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (admin_name, email, password, approved, approval_token, created_at) VALUES (%s, %s, %s, %s, %s, %s)",
		s.table("admins"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3), s.placeholderFor(4), s.placeholderFor(5), s.placeholderFor(6),
	)

	id, err := s.insertID(ctx, query, name, email, passwordHash, false, approvalToken, now)
	if err != nil {
		return model.Admin{}, err
	}

	return model.Admin{
		ID:            id,
		AdminName:     name,
		Email:         email,
		PasswordHash:  passwordHash,
		ApprovalToken: approvalToken,
		CreatedAt:     now,
	}, nil
}

func (s *Store) getAdminWhere(ctx context.Context, column string, value any) (model.Admin, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = %s",
		s.adminCols(), s.table("admins"), column, s.placeholderFor(1),
	)

	a, err := scanAdmin(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Admin{}, ErrNotFound
		}
		return model.Admin{}, err
	}

	return a, nil
}

func (s *Store) GetAdmin(ctx context.Context, id int64) (model.Admin, error) {
	return s.getAdminWhere(ctx, "id", id)
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	return s.getAdminWhere(ctx, "email", email)
}

func (s *Store) GetAdminByApprovalToken(ctx context.Context, token string) (model.Admin, error) {
	return s.getAdminWhere(ctx, "approval_token", token)
}

func (s *Store) ApproveAdmin(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"UPDATE %s SET approved = %s WHERE id = %s",
		s.table("admins"), s.placeholderFor(1), s.placeholderFor(2),
	)

	return s.execExpectingRow(ctx, query, true, id)
}

func (s *Store) DeleteAdmin(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = %s",
		s.table("admins"), s.placeholderFor(1),
	)

	return s.execExpectingRow(ctx, query, id)
}

// SetResetOTP stores a password-reset code with its expiry.
func (s *Store) SetResetOTP(ctx context.Context, id int64, otp string, expires time.Time) error {
	query := fmt.Sprintf(
		"UPDATE %s SET reset_otp = %s, reset_otp_expires = %s WHERE id = %s",
		s.table("admins"), s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3),
	)

	return s.execExpectingRow(ctx, query, otp, expires, id)
}

// UpdateAdminPassword replaces the hash and clears any outstanding OTP.
func (s *Store) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET password = %s, reset_otp = NULL, reset_otp_expires = NULL WHERE id = %s",
		s.table("admins"), s.placeholderFor(1), s.placeholderFor(2),
	)

	return s.execExpectingRow(ctx, query, passwordHash, id)
}
