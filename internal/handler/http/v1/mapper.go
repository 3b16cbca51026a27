package v1

import "github.com/riders-app/pinchazo-backend/internal/models"

// ModelToAlertResponse converts a domain alert into the response DTO.
func ModelToAlertResponse(model *models.PinchazoAlert) *AlertResponse {
	resp := &AlertResponse{
		ID:          model.ID,
		UserID:      model.UserID,
		Status:      string(model.Status),
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Notes:       model.Notes,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		CompletedAt: model.CompletedAt,
		CanceledAt:  model.CanceledAt,
	}
	if model.GomeroID != nil {
		resp.Gomero = &GomeroInfo{ID: *model.GomeroID}
		if model.GomeroNombre != nil {
			resp.Gomero.Nombre = *model.GomeroNombre
		}
		if model.GomeroTelefono != nil {
			resp.Gomero.Telefono = *model.GomeroTelefono
		}
	}
	return resp
}

// ModelsToAlertResponses converts a slice of alerts into response DTOs.
func ModelsToAlertResponses(models []*models.PinchazoAlert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}
