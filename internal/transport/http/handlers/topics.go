package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

// TopicHandler exposes topic CRUD endpoints.
type TopicHandler struct {
	topics *usecase.TopicService
	log    *zap.Logger
}

// NewTopicHandler constructs TopicHandler.
func NewTopicHandler(topics *usecase.TopicService, log *zap.Logger) *TopicHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TopicHandler{topics: topics, log: log}
}

// RegisterRoutes binds topic routes. Mutations go on the admin group.
func (h *TopicHandler) RegisterRoutes(authed, admin gin.IRouter) {
	authed.GET("/topics", h.list)
	authed.GET("/topics/:id", h.get)

	admin.POST("/topics", h.create)
	admin.PUT("/topics/:id", h.update)
	admin.DELETE("/topics/:id", h.delete)
}

func topicView(topic domain.Topic) TopicView {
	return TopicView{
		ID:          topic.ID,
		Name:        topic.Name,
		Description: topic.Description,
		CreatedAt:   topic.CreatedAt,
		UpdatedAt:   topic.UpdatedAt,
	}
}

func (h *TopicHandler) list(c *gin.Context) {
	topics, err := h.topics.List(c.Request.Context())
	if err != nil {
		h.log.Error("list topics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	views := make([]TopicView, 0, len(topics))
	for _, topic := range topics {
		views = append(views, topicView(topic))
	}

	c.JSON(http.StatusOK, successResponse("", views))
}

func (h *TopicHandler) get(c *gin.Context) {
	topic, err := h.topics.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Topic not found"))
			return
		}
		h.log.Error("get topic failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse("", topicView(*topic)))
}

func (h *TopicHandler) create(c *gin.Context) {
	var req TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	createdBy := accountRef(c)
	topic, err := h.topics.Create(c.Request.Context(), req.Name, req.Description, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrTopicNameTaken):
			c.JSON(http.StatusConflict, errorResponse("Topic with this name already exists"))
		default:
			h.log.Error("create topic failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse("Topic created successfully", topicView(topic)))
}

func (h *TopicHandler) update(c *gin.Context) {
	var req TopicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	topic, err := h.topics.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrTopicNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Topic not found"))
		case errors.Is(err, usecase.ErrTopicNameTaken):
			c.JSON(http.StatusConflict, errorResponse("Topic with this name already exists"))
		default:
			h.log.Error("update topic failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Topic updated successfully", topicView(*topic)))
}

func (h *TopicHandler) delete(c *gin.Context) {
	deleted, err := h.topics.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Topic not found"))
			return
		}
		h.log.Error("delete topic failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		return
	}

	c.JSON(http.StatusOK, successResponse(
		fmt.Sprintf("Topic and %d related modules deleted", deleted), nil))
}
