package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// SaveFeedback stores the questionnaire body verbatim. An empty body is
// stored as an empty object, matching the submission form behavior.
func (ctrl *FeedbackController) SaveFeedback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	body, err := c.GetRawData()
	if err != nil {
		log.Warn("Failed to read feedback body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da requisição inválidos.")
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "O corpo da requisição deve ser um JSON válido.")
		return
	}

	id, err := ctrl.feedbackService.SaveResponse(body)
	if err != nil {
		log.Error("Failed to save feedback", err, nil)
		apperrors.InternalError(c, "Erro ao salvar feedback.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}
