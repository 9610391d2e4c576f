package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"hainetsukaishu-backend/internal/models"
	"hainetsukaishu-backend/internal/service"
	"hainetsukaishu-backend/internal/utils"
)

// DataController handles HTTP requests for derived telemetry figures.
type DataController struct {
	service *service.QueryService
}

// NewDataController creates a new DataController.
func NewDataController(service *service.QueryService) *DataController {
	return &DataController{
		service: service,
	}
}

// respondServiceError maps the service taxonomy onto HTTP: invalid
// device 400, no data 404, everything else is a store failure 500.
func (c *DataController) respondServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidDevice):
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest, "Invalid deviceId", nil, http.StatusBadRequest))
	case errors.Is(err, service.ErrNoData):
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeNotFound, err.Error(), nil, http.StatusNotFound))
	default:
		log.Printf("Error while trying to %s: %v", action, err)
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("Failed to %s", action), nil, http.StatusInternalServerError))
	}
}

// queryDevice resolves the optional ?device= parameter for the
// endpoints that address a single implicit device.
func (c *DataController) queryDevice(r *http.Request) string {
	if device := r.URL.Query().Get("device"); device != "" {
		return device
	}
	return c.service.DefaultDevice()
}

// HandleCurrentPrice handles GET /api/price/{deviceId}.
func (c *DataController) HandleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]
	resp, err := c.service.CurrentPrice(r.Context(), deviceID)
	if err != nil {
		c.respondServiceError(w, err, "fetch price")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// HandleHourlyPrice handles GET /api/price/hour/{deviceId}.
func (c *DataController) HandleHourlyPrice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]
	resp, err := c.service.WindowPrice(r.Context(), deviceID, time.Hour)
	if err != nil {
		c.respondServiceError(w, err, "fetch hourly price")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// HandleDailyPrice handles GET /api/price/day/{deviceId}.
func (c *DataController) HandleDailyPrice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]
	resp, err := c.service.WindowPrice(r.Context(), deviceID, 24*time.Hour)
	if err != nil {
		c.respondServiceError(w, err, "fetch daily price")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// HandleRealtime handles GET /api/realtime.
func (c *DataController) HandleRealtime(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.Realtime(r.Context(), c.queryDevice(r))
	if err != nil {
		c.respondServiceError(w, err, "fetch realtime data")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// HandleDailyReport handles GET /api/daily.
func (c *DataController) HandleDailyReport(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.DailyReport(r.Context(), c.queryDevice(r))
	if err != nil {
		c.respondServiceError(w, err, "fetch daily report")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// HandleDevices handles GET /api/devices.
func (c *DataController) HandleDevices(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.DeviceListResponse{Devices: c.service.Devices()})
}

// HandleRoot is the liveness probe.
func (c *DataController) HandleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Backend is running!"})
}
