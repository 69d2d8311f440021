// Package admin exposes account registration, login, the approval link the
// support address receives, and the password reset flow.
package admin

import (
	"net/http"

	"github.com/indieinfra/vitrine/server/handler/common"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/server/util"
)

type registerRequest struct {
	AdminName string `json:"adminName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func HandleRegister(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !util.DecodeJSON(w, r, &req) {
			return
		}

		if _, err := st.Admins.Register(r.Context(), req.AdminName, req.Email, req.Password); err != nil {
			common.LogAndWriteError(w, r, "register admin", err)
			return
		}

		resp.WriteCreated(w, "", messageResponse{
			Message: "Registration received. The account becomes usable once approved.",
		})
	}
}

func HandleLogin(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !util.DecodeJSON(w, r, &req) {
			return
		}

		token, _, err := st.Admins.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			common.LogAndWriteError(w, r, "login", err)
			return
		}

		resp.WriteOK(w, loginResponse{Token: token})
	}
}

// HandleApproval resolves the approve and deny links mailed to the support
// address. It is a GET so the links work from any mail client.
func HandleApproval(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		admin, err := st.Admins.Review(r.Context(), q.Get("token"), q.Get("action"))
		if err != nil {
			common.LogAndWriteError(w, r, "review admin", err)
			return
		}

		if admin.Approved {
			resp.WriteOK(w, messageResponse{Message: "Account approved."})
		} else {
			resp.WriteOK(w, messageResponse{Message: "Account denied and removed."})
		}
	}
}

func HandleForgotPassword(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotRequest
		if !util.DecodeJSON(w, r, &req) {
			return
		}

		if err := st.Admins.RequestReset(r.Context(), req.Email); err != nil {
			common.LogAndWriteError(w, r, "request password reset", err)
			return
		}

		resp.WriteOK(w, messageResponse{Message: "A reset code has been sent."})
	}
}

func HandleResetPassword(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if !util.DecodeJSON(w, r, &req) {
			return
		}

		if err := st.Admins.ConfirmReset(r.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
			common.LogAndWriteError(w, r, "reset password", err)
			return
		}

		resp.WriteOK(w, messageResponse{Message: "Password updated."})
	}
}
