// internal/app/features/company/handler.go
package company

import (
	"encoding/json"
	"fmt"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	contactstore "github.com/Instanvi/ABM-api/internal/app/store/contacts"
	industrystore "github.com/Instanvi/ABM-api/internal/app/store/industries"
	locationstore "github.com/Instanvi/ABM-api/internal/app/store/locations"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /company endpoints.
type Handler struct {
	companies  *companystore.Store
	locations  *locationstore.Store
	industries *industrystore.Store
	contacts   *contactstore.Store
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		companies:  companystore.New(db),
		locations:  locationstore.New(db),
		industries: industrystore.New(db),
		contacts:   contactstore.New(db),
		log:        logger,
	}
}

// locationInput uses pointers so a missing field is distinguishable from a
// zero value; add validation reports each absent field by name.
type locationInput struct {
	Country   *string  `json:"country"`
	State     *string  `json:"state"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l *locationInput) missingFields() []string {
	var missing []string
	if l.Country == nil {
		missing = append(missing, "country")
	}
	if l.State == nil {
		missing = append(missing, "state")
	}
	if l.City == nil {
		missing = append(missing, "city")
	}
	if l.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if l.Longitude == nil {
		missing = append(missing, "longitude")
	}
	return missing
}

func (l *locationInput) model() models.Location {
	return models.Location{
		Country:   *l.Country,
		State:     *l.State,
		City:      *l.City,
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
	}
}

// contactInput accepts phone as a string, a number, or a list of either;
// storage always holds a list of strings.
type contactInput struct {
	Phone json.RawMessage `json:"phone"`
	Email *string         `json:"email"`
}

func (c *contactInput) model() (models.Contact, error) {
	contact := models.Contact{Phone: []string{}}
	if c.Email != nil {
		contact.Email = *c.Email
	}
	if len(c.Phone) > 0 {
		phones, err := parsePhones(c.Phone)
		if err != nil {
			return models.Contact{}, err
		}
		contact.Phone = phones
	}
	return contact, nil
}

func parsePhones(raw json.RawMessage) ([]string, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		phones := make([]string, 0, len(list))
		for _, item := range list {
			p, err := parsePhone(item)
			if err != nil {
				return nil, err
			}
			phones = append(phones, p)
		}
		return phones, nil
	}
	p, err := parsePhone(raw)
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

func parsePhone(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("phone entries must be strings or numbers")
}

// parseIndustry accepts either a plain name string or an object carrying a
// name field.
func parseIndustry(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name, nil
	}
	return "", fmt.Errorf("industry must be a name or an object with a `name` field")
}
