package service

import (
	"strings"

	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"

	"github.com/cockroachdb/errors"
)

type LocationService interface {
	GetCities() ([]model.City, error)
	GetTowns(cityID uint) ([]model.Town, error)
	// ImportLocations loads cities and towns, skipping ones that already exist.
	ImportLocations(cities []CityImport) (int, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) GetCities() ([]model.City, error) {
	cities, err := s.repo.FindCities()
	return cities, errors.Wrap(err, "list cities")
}

func (s *locationService) GetTowns(cityID uint) ([]model.Town, error) {
	towns, err := s.repo.FindTowns(cityID)
	return towns, errors.Wrap(err, "list towns")
}

// CityImport is one entry of a location import file.
type CityImport struct {
	Name  string   `json:"name"`
	Towns []string `json:"towns"`
}

func (s *locationService) ImportLocations(cities []CityImport) (int, error) {
	total := 0
	for _, c := range cities {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return total, invalid("city name is required")
		}
		towns := make([]string, 0, len(c.Towns))
		for _, t := range c.Towns {
			if t = strings.TrimSpace(t); t != "" {
				towns = append(towns, t)
			}
		}
		n, err := s.repo.Import(name, towns)
		if err != nil {
			return total, errors.Wrapf(err, "import %s", name)
		}
		total += n
	}
	return total, nil
}
