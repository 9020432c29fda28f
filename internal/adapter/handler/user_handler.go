package handler

import (
	"net/http"
	"strconv"

	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/services"
)

type UserHandler struct {
	users    *services.UserService
	profiles *services.ProfileService
	auth     *services.AuthService
}

func NewUserHandler(users *services.UserService, profiles *services.ProfileService, auth *services.AuthService) *UserHandler {
	return &UserHandler{users: users, profiles: profiles, auth: auth}
}

type adminCreatedResponse struct {
	Message string       `json:"message"`
	Admin   *domain.User `json:"admin"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetProfile(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProfileUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), identityFrom(r.Context()), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.profiles.ListBookings(r.Context(), identityFrom(r.Context()), q.Get("status"), pageFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *UserHandler) Payments(w http.ResponseWriter, r *http.Request) {
	page, err := h.profiles.ListPayments(r.Context(), identityFrom(r.Context()), pageFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req services.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), identityFrom(r.Context()), req); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.users.ListAdmins(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, admins)
}

func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	admin, err := h.users.CreateAdmin(r.Context(), identityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, adminCreatedResponse{Message: "Admin created successfully", Admin: admin})
}

func (h *UserHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Admin")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.users.DeleteAdmin(r.Context(), identityFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Admin deleted successfully")
}

func pageFrom(r *http.Request) domain.Page {
	q := r.URL.Query()

	number, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return domain.Page{Number: number, Limit: limit}
}
