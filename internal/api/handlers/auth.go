package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type AuthHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		validator:   utils.NewValidator(),
	}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)

		if err != nil {
			// A rejected sign-in still carries a body with the remaining
			// tries or the retry-after hint.
			if appErr, ok := appErrors.IsAppError(err); ok && resp != nil {
				response.WriteJson(w, appErr.StatusCode, response.APIResponse{
					Success: false,
					Data:    resp,
					Error: &response.ErrorResponse{
						Code:    appErr.Code,
						Message: appErr.Message,
					},
				})
				return
			}

			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		resp, err := h.userService.Register(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *AuthHandler) RecoveryQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RecoveryQuestionRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		resp, err := h.userService.RecoveryQuestion(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) RecoveryAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RecoveryAnswerRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		resp, err := h.userService.RecoveryAnswer(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
