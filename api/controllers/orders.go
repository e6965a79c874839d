package controllers

import (
	"net/http"
	"time"

	"github.com/Aman2975/hugli-backend/api/responses"
	"github.com/Aman2975/hugli-backend/api/validators"
	"github.com/Aman2975/hugli-backend/internal/checkout"
	"github.com/Aman2975/hugli-backend/internal/orders"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/metrics"
)

type orderItemRequest struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Quantity    int            `json:"quantity"`
	Options     map[string]any `json:"options"`
}

type createOrderRequest struct {
	Items        []orderItemRequest    `json:"items" validate:"required,min=1,dive"`
	CustomerInfo checkout.CustomerInfo `json:"customerInfo" validate:"required"`
	DeliveryInfo checkout.DeliveryInfo `json:"deliveryInfo" validate:"required"`
	Preferences  checkout.Preferences  `json:"preferences"`
}

func (req createOrderRequest) toInput() (orders.CreateOrderInput, error) {
	var deliveryDate time.Time
	if req.DeliveryInfo.DeliveryDate != "" {
		parsed, err := checkout.ParseDeliveryDate(req.DeliveryInfo.DeliveryDate)
		if err != nil {
			return orders.CreateOrderInput{}, err
		}
		deliveryDate = parsed
	}

	items := make([]orders.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.ItemInput{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Icon:        item.Icon,
			Quantity:    item.Quantity,
			Options:     item.Options,
		})
	}

	return orders.CreateOrderInput{
		Items: items,
		Customer: orders.CustomerInput{
			Name:    req.CustomerInfo.Name,
			Email:   req.CustomerInfo.Email,
			Phone:   req.CustomerInfo.Phone,
			Company: req.CustomerInfo.Company,
			Address: req.CustomerInfo.Address,
		},
		Delivery: orders.DeliveryInput{
			Type:                req.DeliveryInfo.DeliveryType,
			Address:             req.DeliveryInfo.DeliveryAddress,
			Date:                deliveryDate,
			Time:                req.DeliveryInfo.DeliveryTime,
			SpecialInstructions: req.DeliveryInfo.SpecialInstructions,
		},
		Preferences: orders.PreferencesInput{
			Urgency:              req.Preferences.Urgency,
			ContactMethod:        req.Preferences.ContactMethod,
			PreferredContactTime: req.Preferences.PreferredContactTime,
		},
	}, nil
}

// OrdersCreate accepts a fully-formed order payload, the direct alternative
// to the step-by-step checkout flow.
func OrdersCreate(svc orders.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.UserID = optionalUserID(r)

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if m != nil {
			m.IncOrdersCreated()
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersListMine lists the authenticated customer's orders, newest first.
func OrdersListMine(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForUser(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func OrdersGetMine(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetForUser(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func parseOrderStatus(raw string) (*enums.OrderStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
	}
	return &status, nil
}
