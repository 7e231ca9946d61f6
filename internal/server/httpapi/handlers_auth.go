package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/umeduck/quack-note/internal/common"
	"github.com/umeduck/quack-note/internal/server/provider"
	"github.com/umeduck/quack-note/internal/server/registration"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type resendRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "request body must be valid JSON")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "name, email and password are required")
		return
	}

	result, err := s.registration.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "sign-up rejected", "error", err)
		status, code, message := mapSignUpError(err)
		writeFailure(w, status, code, message)
		return
	}

	resp := envelope{
		Success:       true,
		UserSub:       result.AccountID,
		UserConfirmed: boolPtr(!result.PendingConfirmation),
	}
	if result.Delivery != nil {
		resp.CodeDeliveryDetails = result.Delivery
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "request body must be valid JSON")
		return
	}
	if req.Username == "" || req.ConfirmationCode == "" {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "username and confirmation code are required")
		return
	}

	if err := s.registration.Confirm(r.Context(), req.Username, req.ConfirmationCode); err != nil {
		s.logger.Warn(r.Context(), "confirmation rejected", "username", req.Username, "error", err)
		status, code, message := mapConfirmError(err)
		writeFailure(w, status, code, message)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Your account has been confirmed"})
}

func (s *Server) handleResendCode(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "request body must be valid JSON")
		return
	}
	if req.Username == "" {
		writeFailure(w, http.StatusBadRequest, "MissingParameters", "username is required")
		return
	}

	delivery, err := s.registration.ResendCode(r.Context(), req.Username)
	if err != nil {
		s.logger.Warn(r.Context(), "resend rejected", "username", req.Username, "error", err)
		status, code, message := mapResendError(err)
		writeFailure(w, status, code, message)
		return
	}

	resp := envelope{Success: true, Message: "Confirmation code resent"}
	if delivery != nil {
		resp.CodeDeliveryDetails = delivery
	}
	writeJSON(w, http.StatusOK, resp)
}

// The wire error codes keep the identity provider's exception names, which
// the frontend already switches on.

func mapSignUpError(err error) (int, string, string) {
	switch {
	case errors.Is(err, provider.ErrDuplicateIdentity):
		return http.StatusConflict, "UsernameExistsException", "this email address is already registered"
	case errors.Is(err, provider.ErrWeakCredential):
		return http.StatusUnprocessableEntity, "InvalidPasswordException", "password does not meet the policy requirements"
	case errors.Is(err, provider.ErrInvalidParameter), errors.Is(err, common.ErrorValidation):
		return http.StatusUnprocessableEntity, "InvalidParameterException", err.Error()
	default:
		return http.StatusInternalServerError, "InternalError", "an unexpected error occurred"
	}
}

func mapConfirmError(err error) (int, string, string) {
	switch {
	case errors.Is(err, provider.ErrCodeMismatch):
		return http.StatusUnprocessableEntity, "CodeMismatchException", "the confirmation code is incorrect"
	case errors.Is(err, provider.ErrCodeExpired):
		return http.StatusUnprocessableEntity, "ExpiredCodeException", "the confirmation code has expired"
	case errors.Is(err, provider.ErrAlreadyConfirmed):
		return http.StatusForbidden, "NotAuthorizedException", "the user is already confirmed"
	case errors.Is(err, registration.ErrAccountLocked):
		return http.StatusUnprocessableEntity, "TooManyAttemptsException", "the account is locked after too many failed attempts"
	default:
		return http.StatusInternalServerError, "InternalError", "an unexpected error occurred"
	}
}

func mapResendError(err error) (int, string, string) {
	switch {
	case errors.Is(err, provider.ErrRateLimited):
		return http.StatusTooManyRequests, "LimitExceededException", "resend attempt limit reached, please wait and try again"
	case errors.Is(err, provider.ErrIdentityNotFound):
		return http.StatusNotFound, "UserNotFoundException", "user not found"
	default:
		return http.StatusInternalServerError, "InternalError", "an unexpected error occurred"
	}
}

func boolPtr(b bool) *bool { return &b }
