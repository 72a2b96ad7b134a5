package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/domain"
	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/service"
)

// ChatRunner answers a single prompt. *service.InferenceClient is the
// production implementation.
type ChatRunner interface {
	Run(ctx context.Context, prompt string) (json.RawMessage, error)
}

type Handler struct {
	runner ChatRunner
	logger service.Logger
}

func New(runner ChatRunner, logger service.Logger) *Handler {
	if logger == nil {
		logger = service.NopLogger{}
	}
	return &Handler{runner: runner, logger: logger}
}

func (h *Handler) chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.ChatRequest
	if err := bindChatRequest(c, &req); err != nil {
		h.logger.LogWarn(ctx, "chat", "rejected request", "detail", err.Error())
		c.JSON(http.StatusUnprocessableEntity, domain.ErrorResponse{Detail: err.Error()})
		return
	}

	data, err := h.runner.Run(ctx, req.Prompt)
	if err != nil {
		status, detail := domain.StatusFor(err)
		c.JSON(status, domain.ErrorResponse{Detail: detail})
		return
	}

	c.JSON(http.StatusOK, domain.ChatResponse{Response: data})
}

func bindChatRequest(c *gin.Context, req *domain.ChatRequest) error {
	if ct := c.ContentType(); !isJSONContentType(ct) {
		return fmt.Errorf("content type must be %s, got %q", gin.MIMEJSON, ct)
	}
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return errors.New("request body must be a JSON object")
		}
		return fmt.Errorf("%s: must be a string", typeErr.Field)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%s: field required", strings.ToLower(verrs[0].Field()))
	}
	return fmt.Errorf("invalid JSON body: %w", err)
}

// isJSONContentType accepts application/json and application/*+json.
func isJSONContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return ct == gin.MIMEJSON || (strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}
