package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
)

type FeatureController struct {
	featureService service.FeatureService
}

func NewFeatureController(featureService service.FeatureService) *FeatureController {
	return &FeatureController{featureService: featureService}
}

func (ctrl *FeatureController) ListFeatures(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	features, err := ctrl.featureService.ListFeatures()
	if err != nil {
		log.Error("Failed to list features", err, nil)
		apperrors.InternalError(c, "Erro ao listar recursos de acessibilidade.")
		return
	}

	views := make([]service.FeatureView, 0, len(features))
	for _, feature := range features {
		views = append(views, service.FeatureView{
			Key:   feature.Key,
			Label: feature.Label,
		})
	}

	c.JSON(http.StatusOK, views)
}
