package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ListServicesRequest carries nothing; it exists so the list endpoint
// goes through the same bind/validate pipeline as the others.
type ListServicesRequest struct{}

func (r *ListServicesRequest) Validate() error {
	return nil
}

// CountryRequest addresses a single record by the {country} path segment.
type CountryRequest struct {
	Country string `param:"country" validate:"required"`
}

func (r *CountryRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CountryRequest) PathParams() map[string]*string {
	return map[string]*string{"country": &r.Country}
}

// CreateServiceRequest is the body of POST /services.
//
// Every field is optional. Type mismatches (a number where a list is
// expected, say) are rejected while the body is decoded, before Validate
// runs.
type CreateServiceRequest struct {
	CreateServicePayload
}

func (r *CreateServiceRequest) Validate() error {
	return nil
}

// UpdateServiceRequest is PUT /services/{country}: the path segment picks
// the record, the body lists the fields to replace.
type UpdateServiceRequest struct {
	Target string `param:"country" json:"-" validate:"required"`
	UpdateServicePayload
}

func (r *UpdateServiceRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateServiceRequest) PathParams() map[string]*string {
	return map[string]*string{"country": &r.Target}
}

func (r *CreateServiceRequest) BindFailureMessage() string {
	return MsgCreateFailed
}

func (r *UpdateServiceRequest) BindFailureMessage() string {
	return MsgUpdateFailed
}
