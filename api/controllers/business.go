package controllers

import (
	"net/http"

	"github.com/Aman2975/hugli-backend/api/responses"
	"github.com/Aman2975/hugli-backend/pkg/config"
)

type businessInfoResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BusinessInfo returns the shop's public contact details for the frontend
// footer and the offline-order fallback message.
func BusinessInfo(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, businessInfoResponse{
			Name:    cfg.Business.Name,
			Email:   cfg.Business.Email,
			Phone:   cfg.Business.Phone,
			Address: cfg.Business.Address,
		})
	}
}
