// internal/app/features/employee/handler.go
package employee

import (
	"encoding/json"
	"fmt"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	contactstore "github.com/Instanvi/ABM-api/internal/app/store/contacts"
	employeestore "github.com/Instanvi/ABM-api/internal/app/store/employees"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /employee endpoints.
type Handler struct {
	employees *employeestore.Store
	contacts  *contactstore.Store
	companies *companystore.Store
	log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		employees: employeestore.New(db),
		contacts:  contactstore.New(db),
		companies: companystore.New(db),
		log:       logger,
	}
}

// contactInput accepts phone as a string, a number, or a list of either.
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
