package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/service"
	"github.com/pavlem/postflow/internal/transport/http/middleware"
	"github.com/pavlem/postflow/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
	userService *service.UserService
}

func NewPostHandler(postService *service.PostService, userService *service.UserService) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
	}
}

type postInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Title, input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR create post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	post, err := h.postService.Create(r.Context(), input.Title, input.Content, userID)
	if err != nil {
		log.Printf("ERROR create post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	post, err := h.postService.Delete(r.Context(), id)
	if err != nil {
		log.Printf("ERROR delete post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Title, input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ERROR update post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != userID {
		writeError(w, http.StatusForbidden, "Unauthorized to update this post")
		return
	}

	updated, err := h.postService.Update(r.Context(), id, input.Title, input.Content, userID)
	if err != nil {
		log.Printf("ERROR update post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR list posts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list posts by user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	posts, err := h.postService.GetByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list posts by user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}
