package service

import (
	"errors"
	"strings"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"github.com/livreacesso/livre-acesso-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrPlaceNotFound         = errors.New("local não encontrado")
	ErrMissingRequiredFields = errors.New("nome, categoria e descrição são obrigatórios")
	ErrIncompleteAddress     = errors.New("CEP, logradouro, número, bairro, cidade e estado são obrigatórios")
	ErrInvalidState          = errors.New("informe a sigla do estado com 2 caracteres")
	ErrNoPhotos              = errors.New("informe ao menos uma foto do local")
)

// DefaultSearchLimit caps search results; requests cannot raise it.
const DefaultSearchLimit = 50

// PlaceInput is the create payload after transport binding, before
// normalization.
type PlaceInput struct {
	Name         string
	Category     string
	Address      string
	CEP          string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Phone        string
	Website      string
	Description  string
	Latitude     *float64
	Longitude    *float64
	FeatureKeys  []string
	Photos       []PhotoPayload
	OwnerID      uint
}

// SearchOptions carries raw search criteria; the service normalizes them.
type SearchOptions struct {
	Term         string
	Category     string
	CEP          string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Features     []string
	Limit        int
	ViewerID     *uint
}

type PlaceService interface {
	CreatePlace(input PlaceInput) (*PlaceView, error)
	SearchPlaces(opts SearchOptions) ([]PlaceView, error)
	GetPlaceDetail(id uint, viewerID *uint) (*PlaceDetailView, error)
	PlaceExists(id uint) error
}

type placeService struct {
	placeRepo      repository.PlaceRepository
	featureService FeatureService
	photoService   PhotoService
}

func NewPlaceService(placeRepo repository.PlaceRepository, featureService FeatureService, photoService PhotoService) PlaceService {
	return &placeService{
		placeRepo:      placeRepo,
		featureService: featureService,
		photoService:   photoService,
	}
}

// BuildFullAddress composes the single-line display address from the
// structured fields, e.g. "Rua A, 10 | Centro | São Paulo - SP | CEP 01001-000".
func BuildFullAddress(street, number, complement, neighborhood, city, state, cep string) string {
	var parts []string

	streetLine := street
	if street != "" && number != "" {
		streetLine = street + ", " + number
	}
	if streetLine != "" {
		parts = append(parts, streetLine)
	}
	if complement != "" {
		parts = append(parts, complement)
	}
	if neighborhood != "" {
		parts = append(parts, neighborhood)
	}

	var cityState []string
	if city != "" {
		cityState = append(cityState, city)
	}
	if state != "" {
		cityState = append(cityState, state)
	}
	if len(cityState) > 0 {
		parts = append(parts, strings.Join(cityState, " - "))
	}

	if formatted := util.FormatCEP(cep); formatted != "" {
		parts = append(parts, "CEP "+formatted)
	}
	return strings.Join(parts, " | ")
}

func (s *placeService) CreatePlace(input PlaceInput) (*PlaceView, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	description := strings.TrimSpace(input.Description)
	street := strings.TrimSpace(input.Street)
	number := strings.TrimSpace(input.Number)
	complement := strings.TrimSpace(input.Complement)
	neighborhood := strings.TrimSpace(input.Neighborhood)
	city := strings.TrimSpace(input.City)
	state := strings.ToUpper(strings.TrimSpace(input.State))
	cepDigits := util.NormalizeCEP(input.CEP)

	logger.Info("Creating place", map[string]interface{}{
		"name":     name,
		"city":     city,
		"owner_id": input.OwnerID,
	})

	if name == "" || category == "" || description == "" {
		return nil, ErrMissingRequiredFields
	}
	if street == "" || number == "" || neighborhood == "" || city == "" || state == "" || cepDigits == "" {
		return nil, ErrIncompleteAddress
	}
	if len(state) != 2 {
		return nil, ErrInvalidState
	}
	if len(input.Photos) == 0 {
		return nil, ErrNoPhotos
	}

	address := strings.TrimSpace(input.Address)
	if address == "" {
		address = BuildFullAddress(street, number, complement, neighborhood, city, state, cepDigits)
	}

	// Photos go first: a rejected batch must not leave freshly registered
	// feature tags behind.
	photos, err := s.photoService.Ingest(input.Photos)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}

	featureKeys := ParseFeatureKeys(input.FeatureKeys)
	features, err := s.featureService.ResolveKeys(featureKeys)
	if err != nil {
		s.photoService.Discard(photos)
		return nil, err
	}

	ownerID := input.OwnerID
	place := &model.Place{
		OwnerID:            &ownerID,
		Name:               name,
		Category:           category,
		Description:        description,
		Address:            address,
		CEP:                cepDigits,
		Street:             street,
		Number:             number,
		Complement:         complement,
		Neighborhood:       neighborhood,
		City:               city,
		State:              state,
		Phone:              strings.TrimSpace(input.Phone),
		Website:            strings.TrimSpace(input.Website),
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		AccessibilityFlags: model.BuildAccessibilityFlags(featureKeys),
	}

	if err := s.placeRepo.Create(place, features, photos); err != nil {
		// The files are on storage but their rows never landed; reclaim
		// them now instead of waiting for the sweeper.
		s.photoService.Discard(photos)
		logger.Error("Failed to create place", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	created, err := s.placeRepo.FindByID(place.ID, &ownerID)
	if err != nil {
		logger.Error("Failed to reload created place", err, map[string]interface{}{
			"place_id": place.ID,
		})
		return nil, err
	}

	logger.Info("Place created", map[string]interface{}{
		"place_id": created.ID,
		"name":     created.Name,
	})

	view := ToListView(created, &ownerID)
	return &view, nil
}

func (s *placeService) SearchPlaces(opts SearchOptions) ([]PlaceView, error) {
	term := strings.ToLower(strings.TrimSpace(opts.Term))

	// The postal code shows up in the free text only when the term reduces
	// to a full 8-digit code; shorter digit runs stay plain text.
	termCEP := ""
	if digits := util.DigitsOnly(term); len(digits) == 8 {
		termCEP = digits
	}

	cep := util.DigitsOnly(opts.CEP)
	if len(cep) > 8 {
		cep = cep[:8]
	}

	limit := opts.Limit
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}

	filter := repository.PlaceFilter{
		Term:         term,
		TermCEP:      termCEP,
		CEP:          cep,
		Category:     strings.TrimSpace(opts.Category),
		Street:       strings.ToLower(strings.TrimSpace(opts.Street)),
		Number:       strings.ToLower(strings.TrimSpace(opts.Number)),
		Complement:   strings.ToLower(strings.TrimSpace(opts.Complement)),
		Neighborhood: strings.ToLower(strings.TrimSpace(opts.Neighborhood)),
		City:         strings.ToLower(strings.TrimSpace(opts.City)),
		State:        strings.ToUpper(strings.TrimSpace(opts.State)),
		Features:     ParseFeatureKeys(opts.Features),
		Limit:        limit,
		ViewerID:     opts.ViewerID,
	}

	places, err := s.placeRepo.Search(filter)
	if err != nil {
		logger.Error("Failed to search places", err)
		return nil, err
	}

	views := make([]PlaceView, 0, len(places))
	for i := range places {
		views = append(views, ToListView(&places[i], opts.ViewerID))
	}

	logger.Info("Places searched", map[string]interface{}{
		"count": len(views),
	})
	return views, nil
}

func (s *placeService) GetPlaceDetail(id uint, viewerID *uint) (*PlaceDetailView, error) {
	place, err := s.placeRepo.FindByID(id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Place not found", map[string]interface{}{
				"place_id": id,
			})
			return nil, ErrPlaceNotFound
		}
		logger.Error("Failed to fetch place", err, map[string]interface{}{
			"place_id": id,
		})
		return nil, err
	}

	view := ToDetailView(place, viewerID)
	return &view, nil
}

// PlaceExists verifies the place row before dependent writes.
func (s *placeService) PlaceExists(id uint) error {
	exists, err := s.placeRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPlaceNotFound
	}
	return nil
}
