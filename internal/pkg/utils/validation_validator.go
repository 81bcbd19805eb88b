package utils

import (
	"medilab-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("sample_collection_type", validateSampleCollectionType)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSampleCollectionType(fl validator.FieldLevel) bool {
	value := models.SampleCollectionType(fl.Field().String())
	return value == models.SampleCollectionClinicVisit || value == models.SampleCollectionHomeVisit
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := models.PaymentMethod(fl.Field().String())
	return value == models.PaymentMethodCashOnDelivery || value == models.PaymentMethodCardOnline
}
