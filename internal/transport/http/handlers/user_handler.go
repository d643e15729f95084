package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/service"
	"github.com/pavlem/postflow/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if users == nil {
		users = []domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input userInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateUser(input.Username, input.Email); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Create(r.Context(), input.Username, input.Email)
	if err != nil {
		log.Printf("ERROR create user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input userInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateUser(input.Username, input.Email); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Update(r.Context(), id, input.Username, input.Email)
	if err != nil {
		log.Printf("ERROR update user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
