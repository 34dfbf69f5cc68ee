package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// MessagingController handles the one thread each student shares with
// the admin team.
type MessagingController struct {
	messagingService *services.MessagingService
	logger           zerolog.Logger
}

// NewMessagingController creates a new MessagingController
func NewMessagingController(messagingService *services.MessagingService, logger zerolog.Logger) *MessagingController {
	return &MessagingController{
		messagingService: messagingService,
		logger:           logger,
	}
}

// SendToStudent sends a staff message into a student's thread
// @Summary Message a student
// @Description Creates the conversation on first contact.
// @Tags messaging
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.SendMessageRequest true "Message body"
// @Success 201 {object} dto.APIResponse{data=models.Message} "Message sent"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/messages [post]
func (c *MessagingController) SendToStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.messagingService.SendToStudent(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// SendFromStudent sends a message from the student side
// @Summary Send message to the institute
// @Tags messaging
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message body"
// @Success 201 {object} dto.APIResponse{data=models.Message} "Message sent"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Security BearerAuth
// @Router /messages [post]
func (c *MessagingController) SendFromStudent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.messagingService.SendFromStudent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// ListConversations lists all threads for the admin inbox
// @Summary List conversations
// @Description Most recently active first, flagging threads with unread student messages.
// @Tags messaging
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Security BearerAuth
// @Router /conversations [get]
func (c *MessagingController) ListConversations(ctx *gin.Context) {
	conversations, err := c.messagingService.ListConversations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// ListMessages returns a conversation's messages, oldest first
// @Summary List conversation messages
// @Description Reading the thread marks it read for the caller's side.
// @Tags messaging
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 403 {object} dto.APIResponse "Not your conversation"
// @Failure 404 {object} dto.APIResponse "Conversation not found"
// @Security BearerAuth
// @Router /conversations/{id}/messages [get]
func (c *MessagingController) ListMessages(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role := currentRole(ctx)
	if !role.IsStaff() && role != models.RoleStudent {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Only staff or the conversation's student can read this thread")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	studentSide := role == models.RoleStudent
	if studentSide {
		userID, ok := currentUserID(ctx)
		if !ok {
			return
		}
		own, err := c.messagingService.GetStudentConversation(ctx.Request.Context(), userID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if own.ID != id {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You can only read your own conversation")
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	messages, err := c.messagingService.ListMessages(ctx.Request.Context(), id, studentSide)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// MyConversation returns the student's own thread, creating it if needed
// @Summary Current student conversation
// @Tags messaging
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Conversation} "Conversation"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Security BearerAuth
// @Router /messages/conversation [get]
func (c *MessagingController) MyConversation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	conversation, err := c.messagingService.GetStudentConversation(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversation))
}
