package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"hainetsukaishu-backend/internal/controller"
	"hainetsukaishu-backend/internal/push"
)

// SetupRouter defines all API routes.
func SetupRouter(c *controller.DataController, hub *push.Hub) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", c.HandleRoot).Methods(http.MethodGet)
	router.HandleFunc("/api/price/hour/{deviceId}", c.HandleHourlyPrice).Methods(http.MethodGet)
	router.HandleFunc("/api/price/day/{deviceId}", c.HandleDailyPrice).Methods(http.MethodGet)
	router.HandleFunc("/api/price/{deviceId}", c.HandleCurrentPrice).Methods(http.MethodGet)
	router.HandleFunc("/api/realtime", c.HandleRealtime).Methods(http.MethodGet)
	router.HandleFunc("/api/daily", c.HandleDailyReport).Methods(http.MethodGet)
	router.HandleFunc("/api/devices", c.HandleDevices).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.HandleWS)

	return router
}
