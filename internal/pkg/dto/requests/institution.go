package requests

import "medicalcv-service/internal/app/models"

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (c Contact) toModel() models.Contact {
	return models.Contact{Phone: c.Phone, Email: c.Email, Address: c.Address}
}

type Institution struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Type     string   `json:"type" validate:"required,oneof=hospital clinic"`
	Contact  Contact  `json:"contact"`
	Services []string `json:"services" validate:"dive,required"`
}

func (p *Institution) ToModel() models.Institution {
	return models.Institution{
		Name:     p.Name,
		Type:     models.InstitutionType(p.Type),
		Contact:  p.Contact.toModel(),
		Services: p.Services,
	}
}
