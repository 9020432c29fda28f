package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/ports"
)

type RouterConfig struct {
	Logger   zerolog.Logger
	CORS     CORSConfig
	Tokens   ports.TokenManager
	Auth     *AuthHandler
	Users    *UserHandler
	Vehicles *VehicleHandler
	Bookings *BookingHandler
}

type healthResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := Authenticate(cfg.Tokens)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Message:   "Car Rental API is running",
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)
	mux.HandleFunc("POST /api/auth/admin-login", cfg.Auth.AdminLogin)

	mux.HandleFunc("GET /api/users/me", auth(cfg.Users.Me))
	mux.HandleFunc("PUT /api/users/me", auth(cfg.Users.UpdateMe))
	mux.HandleFunc("GET /api/users/bookings", auth(cfg.Users.Bookings))
	mux.HandleFunc("GET /api/users/payments", auth(cfg.Users.Payments))
	mux.HandleFunc("PUT /api/users/change-password", auth(cfg.Users.ChangePassword))
	mux.HandleFunc("GET /api/users/all", auth(cfg.Users.ListAll))
	mux.HandleFunc("GET /api/users/admins", auth(cfg.Users.ListAdmins))
	mux.HandleFunc("POST /api/users/create-admin", auth(cfg.Users.CreateAdmin))
	mux.HandleFunc("DELETE /api/users/admin/{id}", auth(cfg.Users.DeleteAdmin))

	mux.HandleFunc("GET /api/cars", cfg.Vehicles.List)
	mux.HandleFunc("GET /api/cars/{id}", cfg.Vehicles.Get)
	mux.HandleFunc("POST /api/cars", auth(cfg.Vehicles.Create))
	mux.HandleFunc("PUT /api/cars/{id}", auth(cfg.Vehicles.Update))
	mux.HandleFunc("DELETE /api/cars/{id}", auth(cfg.Vehicles.Delete))

	mux.HandleFunc("POST /api/bookings", auth(cfg.Bookings.CreateBooking))
	mux.HandleFunc("GET /api/bookings/my", auth(cfg.Bookings.ListMine))
	mux.HandleFunc("GET /api/bookings/all", auth(cfg.Bookings.ListAll))
	mux.HandleFunc("GET /api/bookings/{id}", auth(cfg.Bookings.Get))
	mux.HandleFunc("POST /api/bookings/{id}/mark-paid", auth(cfg.Bookings.MarkPaid))
	mux.HandleFunc("POST /api/bookings/{id}/pay", auth(cfg.Bookings.Pay))
	mux.HandleFunc("PATCH /api/bookings/{id}/status", auth(cfg.Bookings.UpdateStatus))
	mux.HandleFunc("GET /api/bookings/{id}/invoice", auth(cfg.Bookings.Invoice))

	return chain(Metrics(mux), RequestLogger(cfg.Logger), Recover, CORS(cfg.CORS))
}
