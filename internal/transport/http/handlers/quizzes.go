package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/transport/http/middleware"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

// QuizHandler exposes quiz and quiz attempt endpoints.
type QuizHandler struct {
	quizzes *usecase.QuizService
	log     *zap.Logger
}

// NewQuizHandler constructs QuizHandler.
func NewQuizHandler(quizzes *usecase.QuizService, log *zap.Logger) *QuizHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizHandler{quizzes: quizzes, log: log}
}

// RegisterRoutes binds quiz routes. Mutations go on the admin group.
func (h *QuizHandler) RegisterRoutes(authed, admin gin.IRouter) {
	authed.GET("/quizzes", h.list)
	authed.GET("/quizzes/:id", h.get)
	authed.POST("/quizzes/:id/attempt", h.attempt)
	authed.GET("/attempts", h.listAttempts)

	admin.GET("/admin-quizzes", h.adminList)
	admin.GET("/attempts/:id", h.quizAttempts)
	admin.POST("/quizzes", h.create)
	admin.PUT("/quizzes/:id", h.update)
	admin.DELETE("/quizzes/:id", h.delete)
}

func quizView(quiz domain.Quiz) QuizView {
	return QuizView{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		TimerSeconds: quiz.TimerSeconds,
		CreatedAt:    quiz.CreatedAt,
	}
}

func (h *QuizHandler) list(c *gin.Context) {
	quizzes, err := h.quizzes.List(c.Request.Context())
	if err != nil {
		h.log.Error("list quizzes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]QuizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		views = append(views, quizView(quiz))
	}

	c.JSON(http.StatusOK, successResponse("", views))
}

func (h *QuizHandler) get(c *gin.Context) {
	quiz, err := h.quizzes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
			return
		}
		h.log.Error("get quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse("", quizView(*quiz)))
}

func (h *QuizHandler) create(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	quiz, err := h.quizzes.Create(c.Request.Context(), req.Title, req.Description, req.TimerSeconds, accountRef(c))
	if err != nil {
		if errors.Is(err, usecase.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
			return
		}
		h.log.Error("create quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Quiz created successfully", quizView(quiz)))
}

func (h *QuizHandler) adminList(c *gin.Context) {
	overviews, err := h.quizzes.AdminList(c.Request.Context())
	if err != nil {
		h.log.Error("list admin quizzes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]AdminQuizView, 0, len(overviews))
	for _, overview := range overviews {
		views = append(views, AdminQuizView{
			QuizView:     quizView(overview.Quiz),
			AttemptCount: overview.AttemptCount,
		})
	}

	c.JSON(http.StatusOK, successResponse("", views))
}

func (h *QuizHandler) update(c *gin.Context) {
	var req QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	quiz, err := h.quizzes.Update(c.Request.Context(), c.Param("id"), usecase.QuizUpdate{
		Title:        req.Title,
		Description:  req.Description,
		TimerSeconds: req.TimerSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
		default:
			h.log.Error("update quiz failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Quiz updated successfully", quizView(*quiz)))
}

func (h *QuizHandler) quizAttempts(c *gin.Context) {
	attempts, err := h.quizzes.ListQuizAttempts(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
			return
		}
		h.log.Error("list quiz attempts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]AdminAttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		views = append(views, AdminAttemptView{
			ID:        attempt.ID,
			AccountID: attempt.AccountID,
			QuizID:    attempt.QuizID,
			Score:     attempt.Score,
			CreatedAt: attempt.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, successResponse("", views))
}

func (h *QuizHandler) delete(c *gin.Context) {
	if err := h.quizzes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
			return
		}
		h.log.Error("delete quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse("Quiz deleted successfully", nil))
}

func (h *QuizHandler) attempt(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("Not authorized to access this route"))
		return
	}

	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	attempt, err := h.quizzes.Attempt(c.Request.Context(), accountID, c.Param("id"), req.Score)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
		default:
			h.log.Error("record attempt failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse("Attempt recorded successfully", AttemptView{
		ID:        attempt.ID,
		QuizID:    attempt.QuizID,
		Score:     attempt.Score,
		CreatedAt: attempt.CreatedAt,
	}))
}

func (h *QuizHandler) listAttempts(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("Not authorized to access this route"))
		return
	}

	attempts, err := h.quizzes.ListAttempts(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("list attempts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]AttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		views = append(views, AttemptView{
			ID:        attempt.ID,
			QuizID:    attempt.QuizID,
			Score:     attempt.Score,
			CreatedAt: attempt.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, successResponse("", views))
}
