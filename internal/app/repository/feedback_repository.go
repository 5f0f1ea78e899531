package repository

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(response *model.QuestionnaireResponse) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(response *model.QuestionnaireResponse) error {
	logger.Debug("Storing questionnaire response")

	if err := r.db.Create(response).Error; err != nil {
		logger.Error("Failed to store questionnaire response", err)
		return err
	}

	logger.Debug("Questionnaire response stored", map[string]interface{}{
		"response_id": response.ID,
	})
	return nil
}
