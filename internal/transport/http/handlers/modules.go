package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

// ModuleHandler exposes module CRUD endpoints.
type ModuleHandler struct {
	modules *usecase.ModuleService
	log     *zap.Logger
}

// NewModuleHandler constructs ModuleHandler.
func NewModuleHandler(modules *usecase.ModuleService, log *zap.Logger) *ModuleHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ModuleHandler{modules: modules, log: log}
}

// RegisterRoutes binds module routes. Mutations go on the admin group.
func (h *ModuleHandler) RegisterRoutes(authed, admin gin.IRouter) {
	authed.GET("/modules/topic/:topicId", h.listByTopic)
	authed.GET("/modules/:id", h.get)

	admin.POST("/modules", h.create)
	admin.PUT("/modules/:id", h.update)
	admin.DELETE("/modules/:id", h.delete)
}

func moduleView(module domain.Module) ModuleView {
	return ModuleView{
		ID:        module.ID,
		TopicID:   module.TopicID,
		Name:      module.Name,
		Content:   module.Content,
		SortOrder: module.SortOrder,
		QuizID:    module.QuizID,
		CreatedAt: module.CreatedAt,
		UpdatedAt: module.UpdatedAt,
	}
}

func (h *ModuleHandler) listByTopic(c *gin.Context) {
	modules, err := h.modules.ListByTopic(c.Request.Context(), c.Param("topicId"))
	if err != nil {
		if errors.Is(err, usecase.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Topic not found"))
			return
		}
		h.log.Error("list modules failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]ModuleView, 0, len(modules))
	for _, module := range modules {
		views = append(views, moduleView(module))
	}

	c.JSON(http.StatusOK, successResponse("", views))
}

func (h *ModuleHandler) get(c *gin.Context) {
	module, err := h.modules.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrModuleNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Module not found"))
			return
		}
		h.log.Error("get module failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse("", moduleView(*module)))
}

func (h *ModuleHandler) create(c *gin.Context) {
	var req ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	module, err := h.modules.Create(c.Request.Context(), usecase.ModuleInput{
		TopicID:   req.TopicID,
		Name:      req.Name,
		Content:   req.Content,
		SortOrder: req.SortOrder,
		QuizID:    req.QuizID,
		CreatedBy: accountRef(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrTopicNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Topic not found"))
		case errors.Is(err, usecase.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
		default:
			h.log.Error("create module failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse("Module created successfully", moduleView(module)))
}

func (h *ModuleHandler) update(c *gin.Context) {
	var req ModuleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	module, err := h.modules.Update(c.Request.Context(), c.Param("id"), usecase.ModuleUpdate{
		Name:      req.Name,
		Content:   req.Content,
		SortOrder: req.SortOrder,
		QuizID:    req.QuizID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrModuleNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Module not found"))
		case errors.Is(err, usecase.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Quiz not found"))
		default:
			h.log.Error("update module failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Module updated successfully", moduleView(*module)))
}

func (h *ModuleHandler) delete(c *gin.Context) {
	if err := h.modules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrModuleNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Module not found"))
			return
		}
		h.log.Error("delete module failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse("Module deleted successfully", nil))
}
