package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/livreacesso/livre-acesso-backend/config"
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/livreacesso/livre-acesso-backend/pkg/util"
	"gorm.io/gorm"
)

// Seeds a demo account and a handful of places so a fresh environment has
// something to search against.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	featureRepo := repository.NewFeatureRepository(db.GetDB())
	placeRepo := repository.NewPlaceRepository(db.GetDB())

	demo, err := userRepo.FindByEmail("demo@livreacesso.org")
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to look up demo user:", err)
		}
		hash, err := util.HashPassword("demo-password-123")
		if err != nil {
			log.Fatal("Failed to hash demo password:", err)
		}
		demo = &model.User{
			Email:        "demo@livreacesso.org",
			PasswordHash: hash,
			Name:         "Conta",
			Surname:      "Demonstração",
		}
		if err := userRepo.Create(demo); err != nil {
			log.Fatal("Failed to create demo user:", err)
		}
		fmt.Printf("Demo user created: %s\n", demo.Email)
	}

	seedPlaces := []struct {
		place    model.Place
		features []string
	}{
		{
			place: model.Place{
				Name:         "Biblioteca Municipal Central",
				Category:     "cultura",
				Description:  "Biblioteca pública com acervo em braile e atendimento prioritário.",
				CEP:          "01001000",
				Street:       "Praça da Sé",
				Number:       "100",
				Neighborhood: "Sé",
				City:         "São Paulo",
				State:        "SP",
			},
			features: []string{"ramp_access", "elevator", "braille_signage", "priority_service"},
		},
		{
			place: model.Place{
				Name:         "Parque das Águas",
				Category:     "lazer",
				Description:  "Parque urbano com piso tátil nas trilhas principais.",
				CEP:          "30110017",
				Street:       "Avenida dos Andradas",
				Number:       "2500",
				Neighborhood: "Santa Efigênia",
				City:         "Belo Horizonte",
				State:        "MG",
			},
			features: []string{"tactile_floor", "accessible_bathroom", "reserved_parking"},
		},
		{
			place: model.Place{
				Name:         "Cine Acessível",
				Category:     "cultura",
				Description:  "Salas com audiodescrição e sessões com legendas.",
				CEP:          "80010010",
				Street:       "Rua XV de Novembro",
				Number:       "75",
				Neighborhood: "Centro",
				City:         "Curitiba",
				State:        "PR",
			},
			features: []string{"audio_description", "subtitles", "wheelchair_available"},
		},
	}

	ownerID := demo.ID
	created := 0
	for _, seed := range seedPlaces {
		exists, err := placeExists(placeRepo, seed.place.Name, seed.place.City)
		if err != nil {
			log.Fatal("Failed to check existing place:", err)
		}
		if exists {
			continue
		}

		features := make([]model.Feature, 0, len(seed.features))
		for _, key := range seed.features {
			feature, _, err := featureRepo.ResolveOrCreate(key)
			if err != nil {
				log.Fatal("Failed to resolve feature:", err)
			}
			features = append(features, *feature)
		}

		place := seed.place
		place.OwnerID = &ownerID
		place.Address = fmt.Sprintf("%s, %s | %s | %s - %s | CEP %s",
			place.Street, place.Number, place.Neighborhood, place.City, place.State, util.FormatCEP(place.CEP))
		place.AccessibilityFlags = model.BuildAccessibilityFlags(seed.features)

		if err := placeRepo.Create(&place, features, nil); err != nil {
			log.Fatal("Failed to create place:", err)
		}
		created++
		fmt.Printf("Seeded place: %s (%s)\n", place.Name, place.City)
	}

	fmt.Printf("Seed completed, %d place(s) created.\n", created)
}

func placeExists(placeRepo repository.PlaceRepository, name, city string) (bool, error) {
	places, err := placeRepo.Search(repository.PlaceFilter{
		Term:  strings.ToLower(name),
		City:  strings.ToLower(city),
		Limit: 1,
	})
	if err != nil {
		return false, err
	}
	return len(places) > 0, nil
}
