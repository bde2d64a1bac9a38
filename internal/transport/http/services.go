package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jav1009/community-service-api/internal/app"
	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

// CatalogService is the minimal interface the service endpoints need.
type CatalogService interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id int64) (domain.Service, error)
	CreateService(ctx context.Context, in app.CreateServiceInput) (domain.Service, error)
	UpdateService(ctx context.Context, id int64, in app.UpdateServiceInput) (domain.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

// HandleServices serves the /api/services collection: list and create.
func HandleServices(svc CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			services, err := svc.ListServices(r.Context())
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			data := make([]serviceResponse, 0, len(services))
			for _, s := range services {
				data = append(data, newServiceResponse(s))
			}
			count := len(data)
			writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
		case http.MethodPost:
			var req createServiceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			created, err := svc.CreateService(r.Context(), app.CreateServiceInput{
				Name:              req.Name,
				Description:       req.Description,
				Price:             req.Price,
				EstimatedDuration: req.EstimatedDuration,
				IsAvailable:       req.IsAvailable,
			})
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusCreated, envelope{
				Success: true,
				Message: "Service created successfully",
				Data:    newServiceResponse(created),
			})
		default:
			writeRouteNotFound(w, r)
		}
	}
}

// HandleServiceByID serves /api/services/{id}: get, update, delete.
func HandleServiceByID(svc CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idText, ok := parseServiceItemPath(r.URL.Path)
		if !ok {
			writeRouteNotFound(w, r)
			return
		}
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			// Matches the store behavior for unknown ids: the row simply
			// does not exist.
			writeError(w, http.StatusNotFound, fmt.Sprintf("Service with ID %s not found", idText))
			return
		}

		switch r.Method {
		case http.MethodGet:
			service, err := svc.GetService(r.Context(), id)
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: newServiceResponse(service)})
		case http.MethodPut:
			var req updateServiceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			updated, err := svc.UpdateService(r.Context(), id, app.UpdateServiceInput{
				Name:              req.Name,
				Description:       req.Description,
				Price:             req.Price,
				EstimatedDuration: req.EstimatedDuration,
				IsAvailable:       req.IsAvailable,
			})
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{
				Success: true,
				Message: "Service updated successfully",
				Data:    newServiceResponse(updated),
			})
		case http.MethodDelete:
			if err := svc.DeleteService(r.Context(), id); err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{
				Success: true,
				Message: fmt.Sprintf("Service with ID %d deleted successfully", id),
			})
		default:
			writeRouteNotFound(w, r)
		}
	}
}

func parseServiceItemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "api" || parts[1] != "services" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type createServiceRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             *float64 `json:"price"`
	EstimatedDuration int      `json:"estimated_duration"`
	IsAvailable       *bool    `json:"is_available"`
}

type updateServiceRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	EstimatedDuration *int     `json:"estimated_duration"`
	IsAvailable       *bool    `json:"is_available"`
}

type serviceResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	EstimatedDuration int       `json:"estimated_duration"`
	IsAvailable       bool      `json:"is_available"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newServiceResponse(s domain.Service) serviceResponse {
	return serviceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Price:             s.Price,
		EstimatedDuration: s.EstimatedDuration,
		IsAvailable:       s.IsAvailable,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
