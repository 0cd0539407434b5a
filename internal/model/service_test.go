package model

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewService_DefaultsAbsentLists(t *testing.T) {
	s := NewService(&CreateServicePayload{
		Country:    "Japan",
		FamousFood: []FoodEntry{{Name: "Sushi"}},
	})

	assert.Equal(t, "Japan", s.Country)
	assert.Equal(t, []FoodEntry{{Name: "Sushi"}}, s.FamousFood)
	assert.NotNil(t, s.TraditionalDress)
	assert.Empty(t, s.TraditionalDress)
	assert.NotNil(t, s.FamousPlaces)
	assert.NotNil(t, s.Language)

	body, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"traditionalDress":[]`)
	assert.Contains(t, string(body), `"famousFood":[{"name":"Sushi"}]`)
}

func TestUpdateServicePayload_ApplyTo(t *testing.T) {
	stored := &Service{
		Country:          "Japan",
		TraditionalDress: []DressEntry{{Name: "Kimono"}},
		FamousFood:       []FoodEntry{{Name: "Sushi"}, {Name: "Tempura"}},
	}
	stored.Normalize()

	update := &UpdateServicePayload{
		FamousFood: &[]FoodEntry{{Name: "Ramen"}},
	}
	update.ApplyTo(stored)

	assert.Equal(t, "Japan", stored.Country)
	assert.Equal(t, []DressEntry{{Name: "Kimono"}}, stored.TraditionalDress)
	assert.Equal(t, []FoodEntry{{Name: "Ramen"}}, stored.FamousFood)
}

func TestUpdateServicePayload_ApplyToEmptyListClears(t *testing.T) {
	stored := &Service{FamousPlaces: []PlaceEntry{{Name: "Mount Fuji"}}}

	(&UpdateServicePayload{FamousPlaces: &[]PlaceEntry{}}).ApplyTo(stored)

	assert.NotNil(t, stored.FamousPlaces)
	assert.Empty(t, stored.FamousPlaces)
}

func TestUpdateServicePayload_ApplyToDoesNotAlias(t *testing.T) {
	food := []FoodEntry{{Name: "Ramen"}}
	stored := &Service{}

	(&UpdateServicePayload{FamousFood: &food}).ApplyTo(stored)
	food[0].Name = "Udon"

	assert.Equal(t, "Ramen", stored.FamousFood[0].Name)
}

func TestUpdateServicePayload_DecodePresence(t *testing.T) {
	var p UpdateServicePayload
	require.NoError(t, json.Unmarshal([]byte(`{"famousFood":[{"name":"Ramen"}],"language":null}`), &p))

	assert.Nil(t, p.Country)
	assert.Nil(t, p.TraditionalDress)
	assert.Nil(t, p.Language, "null is treated as absent")
	require.NotNil(t, p.FamousFood)
	assert.Equal(t, []FoodEntry{{Name: "Ramen"}}, *p.FamousFood)
	assert.False(t, p.IsEmpty())

	assert.True(t, (&UpdateServicePayload{}).IsEmpty())
	assert.False(t, (&UpdateServicePayload{Country: ptr("Peru")}).IsEmpty())
}

func TestUpdateServiceRequest_BodyCountryIsPayloadField(t *testing.T) {
	var r UpdateServiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"country":"Nippon"}`), &r))

	assert.Empty(t, r.Target)
	require.NotNil(t, r.UpdateServicePayload.Country)
	assert.Equal(t, "Nippon", *r.UpdateServicePayload.Country)
}

func TestCountryRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CountryRequest{Country: "japan"}).Validate())

	err := (&CountryRequest{}).Validate()
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "required", validationErrs[0].Tag())
}

func TestStructuralTypeMismatchIsRejected(t *testing.T) {
	var r CreateServiceRequest
	err := json.Unmarshal([]byte(`{"country":"Japan","famousFood":"Sushi"}`), &r)
	assert.Error(t, err)
}
