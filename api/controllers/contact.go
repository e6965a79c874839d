package controllers

import (
	"net/http"

	"github.com/Aman2975/hugli-backend/api/responses"
	"github.com/Aman2975/hugli-backend/api/validators"
	"github.com/Aman2975/hugli-backend/internal/contact"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/metrics"
)

type contactRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ServiceType string `json:"serviceType"`
}

// ContactSubmit records a public enquiry. Only the name is mandatory.
func ContactSubmit(svc contact.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var body contactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Submit(r.Context(), contact.SubmitInput{
			Name:        body.Name,
			Email:       body.Email,
			Phone:       body.Phone,
			Company:     body.Company,
			Subject:     body.Subject,
			Message:     body.Message,
			ServiceType: body.ServiceType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if m != nil {
			m.IncContactMessages()
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}
