package httpserver

import (
	"fmt"
	"net/http"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

type userCreateRequest struct {
	Name                  string  `json:"name" validate:"required,max=100"`
	InterestedCategoryIDs []int64 `json:"interestedCategoryIds" validate:"dive,gt=0"`
}

type userResponse struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	InterestedCategoryIDs []int64 `json:"interestedCategoryIds"`
	CommentIDs            []int64 `json:"commentIds"`
}

type categoryCreateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	user, err := s.catalog.CreateUser(r.Context(), req.Name, req.InterestedCategoryIDs)
	if err != nil {
		s.respondServiceError(w, r, err, "create user")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", user.ID))
	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.catalog.ListUsers(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list users")
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	user, err := s.catalog.GetUser(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err, "fetch user")
		return
	}
	s.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if err := s.catalog.DeleteUser(r.Context(), userID); err != nil {
		s.respondServiceError(w, r, err, "delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	category, err := s.catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		s.respondServiceError(w, r, err, "create category")
		return
	}
	s.respondJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list categories")
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func toUserResponse(user domain.User) userResponse {
	interests := user.InterestedCategoryIDs
	if interests == nil {
		interests = []int64{}
	}
	comments := user.CommentIDs
	if comments == nil {
		comments = []int64{}
	}
	return userResponse{
		ID:                    user.ID,
		Name:                  user.Name,
		InterestedCategoryIDs: interests,
		CommentIDs:            comments,
	}
}
