package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
)

type PlaceController struct {
	placeService service.PlaceService
}

func NewPlaceController(placeService service.PlaceService) *PlaceController {
	return &PlaceController{placeService: placeService}
}

type PlaceRequest struct {
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Address      string                 `json:"address"`
	CEP          string                 `json:"cep"`
	Street       string                 `json:"street"`
	Number       string                 `json:"number"`
	Complement   string                 `json:"complement"`
	Neighborhood string                 `json:"neighborhood"`
	City         string                 `json:"city"`
	State        string                 `json:"state"`
	Phone        string                 `json:"phone"`
	Website      string                 `json:"website"`
	Description  string                 `json:"description"`
	Latitude     *float64               `json:"lat"`
	Longitude    *float64               `json:"lng"`
	Features     []string               `json:"features"`
	Photos       []service.PhotoPayload `json:"photos"`
}

func (ctrl *PlaceController) CreatePlace(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("User ID not found in context for place creation", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da requisição inválidos.")
		return
	}

	view, err := ctrl.placeService.CreatePlace(service.PlaceInput{
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Phone:        req.Phone,
		Website:      req.Website,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		FeatureKeys:  req.Features,
		Photos:       req.Photos,
		OwnerID:      userID,
	})
	if err != nil {
		ctrl.respondCreateError(c, err)
		return
	}

	log.Info("Place created", map[string]interface{}{
		"place_id": view.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusCreated, view)
}

func (ctrl *PlaceController) respondCreateError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	var photoErr *service.PhotoError
	switch {
	case errors.Is(err, service.ErrMissingRequiredFields):
		apperrors.BadRequest(c, apperrors.PlaceMissingFields, "Nome, categoria e descrição são obrigatórios.")
	case errors.Is(err, service.ErrIncompleteAddress):
		apperrors.BadRequest(c, apperrors.PlaceIncompleteAddress, "CEP, logradouro, número, bairro, cidade e estado são obrigatórios.")
	case errors.Is(err, service.ErrInvalidState):
		apperrors.BadRequest(c, apperrors.PlaceInvalidState, "Informe a sigla do estado com 2 caracteres.")
	case errors.Is(err, service.ErrNoPhotos):
		apperrors.BadRequest(c, apperrors.PhotoMissing, "Informe ao menos uma foto do local.")
	case errors.As(err, &photoErr):
		apperrors.BadRequest(c, photoErr.Reason, "Falha ao processar as fotos. Envie imagens JPG, PNG, GIF ou WEBP de até 5MB.")
	default:
		log.Error("Failed to create place", err, nil)
		apperrors.InternalError(c, "Erro ao cadastrar local.")
	}
}

func (ctrl *PlaceController) SearchPlaces(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// A malformed limit degrades to the default instead of failing the read.
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	views, err := ctrl.placeService.SearchPlaces(service.SearchOptions{
		Term:         c.Query("search"),
		Category:     c.Query("category"),
		CEP:          c.Query("cep"),
		Street:       c.Query("street"),
		Number:       c.Query("number"),
		Complement:   c.Query("complement"),
		Neighborhood: c.Query("neighborhood"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		Features:     c.QueryArray("features"),
		Limit:        limit,
		ViewerID:     middleware.ViewerID(c),
	})
	if err != nil {
		log.Error("Failed to search places", err, nil)
		apperrors.InternalError(c, "Erro ao listar locais.")
		return
	}

	log.Info("Places listed", map[string]interface{}{
		"count": len(views),
	})
	c.JSON(http.StatusOK, views)
}

func (ctrl *PlaceController) GetPlaceByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parsePlaceID(c)
	if !ok {
		return
	}

	view, err := ctrl.placeService.GetPlaceDetail(id, middleware.ViewerID(c))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			log.Warn("Place not found", map[string]interface{}{
				"place_id": id,
			})
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Local não encontrado.")
			return
		}
		log.Error("Failed to fetch place", err, map[string]interface{}{
			"place_id": id,
		})
		apperrors.InternalError(c, "Erro ao carregar dados do local.")
		return
	}

	c.JSON(http.StatusOK, view)
}

// parsePlaceID reads the :id route param, answering 400 on malformed input.
func parsePlaceID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid place ID", map[string]interface{}{
			"place_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
