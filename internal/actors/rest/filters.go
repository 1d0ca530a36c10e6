package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

func personFilter(c *gin.Context, req model.FilterRequest) (model.PersonFilter, error) {
	return model.PersonFilter{
		FilterRequest: req,
		Country:       c.Query("country"),
		DocumentType:  c.Query("documentType"),
	}, nil
}

func companyFilter(c *gin.Context, req model.FilterRequest) (model.CompanyFilter, error) {
	return model.CompanyFilter{
		FilterRequest: req,
		Type:          c.Query("type"),
		Country:       c.Query("country"),
	}, nil
}

func userFilter(c *gin.Context, req model.FilterRequest) (model.UserFilter, error) {
	return model.UserFilter{
		FilterRequest: req,
		Role:          c.Query("role"),
		CompanyID:     c.Query("companyId"),
		PersonID:      c.Query("personId"),
	}, nil
}

func speakerFilter(c *gin.Context, req model.FilterRequest) (model.SpeakerFilter, error) {
	f := model.SpeakerFilter{
		FilterRequest: req,
		CompanyID:     c.Query("companyId"),
		PersonID:      c.Query("personId"),
		Specialty:     c.Query("specialty"),
	}
	var err error
	if f.MinExperience, err = optionalInt(c, "minExperience"); err != nil {
		return f, err
	}
	if f.MaxExperience, err = optionalInt(c, "maxExperience"); err != nil {
		return f, err
	}
	if f.MinRate, err = optionalFloat(c, "minRate"); err != nil {
		return f, err
	}
	if f.MaxRate, err = optionalFloat(c, "maxRate"); err != nil {
		return f, err
	}
	return f, nil
}

func paymentMethodFilter(c *gin.Context, req model.FilterRequest) (model.PaymentMethodFilter, error) {
	return model.PaymentMethodFilter{
		FilterRequest: req,
		Type:          c.Query("type"),
		CompanyID:     c.Query("companyId"),
		Currency:      c.Query("currency"),
	}, nil
}
