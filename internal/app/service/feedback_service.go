package service

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

type FeedbackService interface {
	// SaveResponse stores the questionnaire payload as-is and returns the
	// generated id. The payload is opaque to the backend.
	SaveResponse(payload []byte) (uint, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

func (s *feedbackService) SaveResponse(payload []byte) (uint, error) {
	response := &model.QuestionnaireResponse{
		Data: model.JSONBlob(payload),
	}
	if err := s.feedbackRepo.Create(response); err != nil {
		logger.Error("Failed to save questionnaire response", err)
		return 0, err
	}

	logger.Info("Questionnaire response saved", map[string]interface{}{
		"response_id": response.ID,
	})
	return response.ID, nil
}
