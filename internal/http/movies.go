package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Clark-Hu/movies-catalog/internal/catalog"
	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

const dateLayout = "2006-01-02"

type movieCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	CategoryID  int64  `json:"categoryId" validate:"gt=0"`
	ReleaseDate string `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=2000"`
}

type movieCreatedResponse struct {
	ID int64 `json:"id"`
}

type movieResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	CategoryID    int64   `json:"categoryId"`
	ReleaseDate   string  `json:"releaseDate"`
	Description   string  `json:"description"`
	AverageRating float64 `json:"averageRating"`
}

type movieDetailResponse struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	ReleaseDate   string   `json:"releaseDate"`
	Description   string   `json:"description"`
	AverageRating float64  `json:"averageRating"`
	Comments      []string `json:"comments"`
}

type ratingRequest struct {
	UserID int64 `json:"userId" validate:"gt=0"`
	Score  int   `json:"score" validate:"min=1,max=100"`
}

type ratingResponse struct {
	MovieID       int64   `json:"movieId"`
	AverageRating float64 `json:"averageRating"`
}

type commentRequest struct {
	UserID int64  `json:"userId" validate:"gt=0"`
	Text   string `json:"text" validate:"required,max=1000"`
}

type commentResponse struct {
	ID      int64  `json:"id"`
	MovieID int64  `json:"movieId"`
	UserID  int64  `json:"userId"`
	Text    string `json:"text"`
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	releaseDate, err := time.Parse(dateLayout, req.ReleaseDate)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "releaseDate must follow YYYY-MM-DD format")
		return
	}

	movie, err := s.catalog.AddMovie(r.Context(), catalog.NewMovie{
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		ReleaseDate: releaseDate,
		Description: req.Description,
	})
	if err != nil {
		s.respondServiceError(w, r, err, "create movie")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/movies/%d", movie.ID))
	s.respondJSON(w, http.StatusCreated, movieCreatedResponse{ID: movie.ID})
}

func (s *Server) handleSearchMovies(w http.ResponseWriter, r *http.Request) {
	title, page, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.catalog.Search(r.Context(), title, page)
	if err != nil {
		s.respondServiceError(w, r, err, "search movies")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

// parseSearchQuery reads title and page. The title is passed through untouched;
// page defaults to 1 when absent.
func parseSearchQuery(query url.Values) (string, int, error) {
	title := query.Get("title")
	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, fmt.Errorf("invalid page value")
		}
		page = parsed
	}
	return title, page, nil
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID, err := idParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if recompute, _ := strconv.ParseBool(r.URL.Query().Get("recompute")); recompute {
		if _, err := s.catalog.RecomputeRating(r.Context(), movieID); err != nil {
			s.respondServiceError(w, r, err, "recompute rating")
			return
		}
	}

	detail, err := s.catalog.Detail(r.Context(), movieID)
	if err != nil {
		s.respondServiceError(w, r, err, "fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, movieDetailResponse{
		Title:         detail.Title,
		Category:      detail.Category,
		ReleaseDate:   detail.ReleaseDate.Format(dateLayout),
		Description:   detail.Description,
		AverageRating: detail.AverageRating,
		Comments:      detail.Comments,
	})
}

func (s *Server) handleRateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := idParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	average, err := s.catalog.RecordRating(r.Context(), movieID, req.UserID, req.Score)
	if err != nil {
		s.respondServiceError(w, r, err, "process rating")
		return
	}
	s.respondJSON(w, http.StatusCreated, ratingResponse{MovieID: movieID, AverageRating: average})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	movieID, err := idParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req commentRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	comment, err := s.catalog.AddComment(r.Context(), movieID, req.UserID, req.Text)
	if err != nil {
		s.respondServiceError(w, r, err, "add comment")
		return
	}
	s.respondJSON(w, http.StatusCreated, commentResponse{
		ID:      comment.ID,
		MovieID: comment.MovieID,
		UserID:  comment.UserID,
		Text:    comment.Text,
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.catalog.Recommendations(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err, "fetch recommendations")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		CategoryID:    movie.CategoryID,
		ReleaseDate:   movie.ReleaseDate.Format(dateLayout),
		Description:   movie.Description,
		AverageRating: movie.AverageRating,
	}
}

func toMovieResponses(movies []domain.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(m))
	}
	return out
}
