package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"citaverde/internal/booking"
	"citaverde/internal/checkin"
	"citaverde/internal/models"
	"citaverde/internal/store"

	"github.com/google/uuid"
)

type Handler struct {
	store    store.Store
	assigner *booking.Assigner
	verifier *checkin.Verifier
}

type envelope struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *responseError `json:"error,omitempty"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(st store.Store) *Handler {
	return &Handler{
		store:    st,
		assigner: booking.NewAssigner(st),
		verifier: checkin.NewVerifier(st),
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/turnos", h.handleTurns)
	mux.HandleFunc("/api/turnos/", h.handleTurnByID)
	mux.HandleFunc("/api/colas", h.handleQueueSnapshot)
	mux.HandleFunc("/api/qr/verificar", h.handleVerifyQR)
	mux.HandleFunc("/api/citas", h.handleAppointments)
	mux.HandleFunc("/api/citas/confirmar", h.handleConfirmAppointment)
	mux.HandleFunc("/api/citas/cancelar", h.handleCancelAppointment)
	mux.HandleFunc("/api/citas/", h.handleAppointmentActions)
	mux.HandleFunc("/api/admin/sedes", h.handleSedes)
	mux.HandleFunc("/api/admin/sedes/", h.handleSedeByID)
	mux.HandleFunc("/api/admin/servicios", h.handleServices)
	mux.HandleFunc("/api/admin/servicios/", h.handleServiceByID)
	mux.HandleFunc("/api/admin/profesionales", h.handleProfessionals)
	mux.HandleFunc("/api/admin/profesionales/", h.handleProfessionalByID)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type createTurnRequest struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	SedeID    string `json:"sede_id"`
	ServiceID string `json:"service_id"`
}

func (h *Handler) handleTurns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req createTurnRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.UserName = strings.TrimSpace(req.UserName)
	req.SedeID = strings.TrimSpace(req.SedeID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)

	if req.UserID == "" || req.SedeID == "" || req.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id, sede_id, and service_id are required")
		return
	}
	if !isValidUUID(req.SedeID) || !isValidUUID(req.ServiceID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "sede_id and service_id must be UUIDs")
		return
	}

	turn, err := h.assigner.Assign(r.Context(), booking.Request{
		UserID:    req.UserID,
		UserName:  req.UserName,
		SedeID:    req.SedeID,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, turn)
}

func (h *Handler) handleTurnByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/turnos/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGetTurn(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "acciones" && r.Method == http.MethodPost:
		h.handleTurnAction(w, r, parts[0], parts[2])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleGetTurn(w http.ResponseWriter, r *http.Request, turnID string) {
	if !isValidUUID(turnID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "turn id must be a UUID")
		return
	}
	turn, found, err := h.store.GetTurn(r.Context(), turnID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "turno not found")
		return
	}
	writeData(w, http.StatusOK, turn)
}

func (h *Handler) handleTurnAction(w http.ResponseWriter, r *http.Request, turnID, action string) {
	if !isValidUUID(turnID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "turn id must be a UUID")
		return
	}
	from, to, ok := store.TurnTransition(action)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	turn, err := h.store.UpdateTurnStatus(r.Context(), turnID, from, to)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, turn)
}

func (h *Handler) handleQueueSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sedeID := strings.TrimSpace(r.URL.Query().Get("sede_id"))
	serviceID := strings.TrimSpace(r.URL.Query().Get("service_id"))
	if sedeID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "sede_id is required")
		return
	}
	if !isValidUUID(sedeID) || (serviceID != "" && !isValidUUID(serviceID)) {
		writeError(w, http.StatusBadRequest, "invalid_request", "sede_id and service_id must be UUIDs")
		return
	}

	turns, err := h.store.SnapshotQueue(r.Context(), sedeID, serviceID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, turns)
}

type verifyQRRequest struct {
	Code string `json:"codigo"`
}

type verifyQRResponse struct {
	Outcome     string              `json:"resultado"`
	Appointment *models.Appointment `json:"cita,omitempty"`
	Turn        *models.Turn        `json:"turno,omitempty"`
	CheckedInAt *time.Time          `json:"checked_in_at,omitempty"`
}

func (h *Handler) handleVerifyQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req verifyQRRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	result, err := h.verifier.Verify(r.Context(), checkin.Request{
		Code:      strings.TrimSpace(req.Code),
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	resp := verifyQRResponse{
		Outcome:     result.Outcome,
		Appointment: result.Appointment,
		Turn:        result.Turn,
	}
	if !result.CheckedInAt.IsZero() {
		at := result.CheckedInAt
		resp.CheckedInAt = &at
	}
	writeData(w, http.StatusOK, resp)
}

type createAppointmentRequest struct {
	UserID         string `json:"user_id"`
	SedeID         string `json:"sede_id"`
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

func (h *Handler) handleAppointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreateAppointment(w, r)
	case http.MethodGet:
		h.handleListAppointments(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.SedeID = strings.TrimSpace(req.SedeID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.ProfessionalID = strings.TrimSpace(req.ProfessionalID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if req.UserID == "" || req.SedeID == "" || req.ServiceID == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id, sede_id, service_id, date, and time are required")
		return
	}
	if !isValidUUID(req.SedeID) || !isValidUUID(req.ServiceID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "sede_id and service_id must be UUIDs")
		return
	}
	if req.ProfessionalID != "" && !isValidUUID(req.ProfessionalID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "professional_id must be a UUID when provided")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "time must be HH:MM")
		return
	}

	appointment, err := h.store.InsertAppointment(r.Context(), store.CreateAppointmentInput{
		UserID:         req.UserID,
		SedeID:         req.SedeID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, appointment)
}

func (h *Handler) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	appointments, err := h.store.ListAppointmentsByUser(r.Context(), userID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, appointments)
}

type appointmentTokenRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req appointmentTokenRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	appointment, found, err := h.store.GetAppointmentByToken(r.Context(), req.Token)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "cita not found")
		return
	}
	writeData(w, http.StatusOK, appointment)
}

func (h *Handler) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req appointmentTokenRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	appointment, found, err := h.store.GetAppointmentByToken(r.Context(), req.Token)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "cita not found")
		return
	}

	from, to, _ := store.AppointmentTransition("cancelar")
	cancelled, err := h.store.UpdateAppointmentStatus(r.Context(), appointment.AppointmentID, from, to)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, cancelled)
}

func (h *Handler) handleAppointmentActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/citas/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[1] != "acciones" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	appointmentID := parts[0]
	action := parts[2]
	if !isValidUUID(appointmentID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "cita id must be a UUID")
		return
	}
	from, to, ok := store.AppointmentTransition(action)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	appointment, err := h.store.UpdateAppointmentStatus(r.Context(), appointmentID, from, to)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, appointment)
}

type sedeRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Active  *bool  `json:"active"`
}

func (h *Handler) handleSedes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sedes, err := h.store.ListSedes(r.Context())
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, sedes)
	case http.MethodPost:
		var req sedeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		sede, err := h.store.CreateSede(r.Context(), models.Sede{
			Name:    req.Name,
			Address: strings.TrimSpace(req.Address),
			City:    strings.TrimSpace(req.City),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, sede)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSedeByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sedeID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/sedes/"), "/")
	if !isValidUUID(sedeID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "sede id must be a UUID")
		return
	}

	var req sedeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	sede, err := h.store.UpdateSede(r.Context(), models.Sede{
		SedeID:  sedeID,
		Name:    req.Name,
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Active:  active,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, sede)
}

type serviceRequest struct {
	SedeID          string `json:"sede_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          *bool  `json:"active"`
}

func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sedeID := strings.TrimSpace(r.URL.Query().Get("sede_id"))
		if sedeID != "" && !isValidUUID(sedeID) {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id must be a UUID")
			return
		}
		services, err := h.store.ListServices(r.Context(), sedeID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, services)
	case http.MethodPost:
		var req serviceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.SedeID = strings.TrimSpace(req.SedeID)
		req.Name = strings.TrimSpace(req.Name)
		if req.SedeID == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id and name are required")
			return
		}
		if !isValidUUID(req.SedeID) {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id must be a UUID")
			return
		}
		if req.DurationMinutes <= 0 {
			req.DurationMinutes = booking.DefaultDurationMinutes
		}
		service, err := h.store.CreateService(r.Context(), models.Service{
			SedeID:          req.SedeID,
			Name:            req.Name,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, service)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleServiceByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	serviceID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/servicios/"), "/")
	if !isValidUUID(serviceID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "service id must be a UUID")
		return
	}

	var req serviceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = booking.DefaultDurationMinutes
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service, err := h.store.UpdateService(r.Context(), models.Service{
		ServiceID:       serviceID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Active:          active,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, service)
}

type professionalRequest struct {
	SedeID    string `json:"sede_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Active    *bool  `json:"active"`
}

func (h *Handler) handleProfessionals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sedeID := strings.TrimSpace(r.URL.Query().Get("sede_id"))
		if sedeID != "" && !isValidUUID(sedeID) {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id must be a UUID")
			return
		}
		professionals, err := h.store.ListProfessionals(r.Context(), sedeID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, professionals)
	case http.MethodPost:
		var req professionalRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.SedeID = strings.TrimSpace(req.SedeID)
		req.Name = strings.TrimSpace(req.Name)
		if req.SedeID == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id and name are required")
			return
		}
		if !isValidUUID(req.SedeID) {
			writeError(w, http.StatusBadRequest, "invalid_request", "sede_id must be a UUID")
			return
		}
		professional, err := h.store.CreateProfessional(r.Context(), models.Professional{
			SedeID:    req.SedeID,
			Name:      req.Name,
			Specialty: strings.TrimSpace(req.Specialty),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeData(w, http.StatusOK, professional)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleProfessionalByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	professionalID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/profesionales/"), "/")
	if !isValidUUID(professionalID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "professional id must be a UUID")
		return
	}

	var req professionalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	professional, err := h.store.UpdateProfessional(r.Context(), models.Professional{
		ProfessionalID: professionalID,
		Name:           req.Name,
		Specialty:      strings.TrimSpace(req.Specialty),
		Active:         active,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	writeData(w, http.StatusOK, professional)
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	return true
}

func isValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request", err.Error()
	case errors.Is(err, store.ErrNoQueueAvailable):
		return http.StatusNotFound, "no_queue_available", "no hay colas disponibles para este servicio"
	case errors.Is(err, store.ErrCodeNotFound):
		return http.StatusNotFound, "code_not_found", "codigo QR no encontrado"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found", "resource not found"
	case errors.Is(err, store.ErrAlreadyUsed):
		return http.StatusBadRequest, "code_already_used", "este codigo QR ya fue utilizado"
	case errors.Is(err, store.ErrOutOfWindow):
		return http.StatusBadRequest, "out_of_window", err.Error()
	case errors.Is(err, store.ErrInvalidState):
		return http.StatusBadRequest, "invalid_state", "state does not allow this action"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{
		Success: false,
		Error: &responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
