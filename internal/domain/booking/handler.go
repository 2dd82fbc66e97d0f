package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/manas360/manas360/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/providers/:role", h.GetProvider)

	api.POST("/bookings", h.OpenBooking)
	api.GET("/bookings/:id", h.GetBooking)
	api.POST("/bookings/:id/begin", h.Begin)
	api.POST("/bookings/:id/back", h.Back)
	api.POST("/bookings/:id/date", h.SelectDate)
	api.POST("/bookings/:id/time", h.SelectTime)
	api.POST("/bookings/:id/time-mode", h.SetTimeMode)
	api.POST("/bookings/:id/proceed", h.Proceed)
	api.POST("/bookings/:id/confirm", h.Confirm)

	api.GET("/appointments", h.ListAppointments)
	api.GET("/patients/:id/appointments", h.ListPatientAppointments)
}

// flowView is the externally visible booking flow state. The date window is
// recomputed on every render.
type flowView struct {
	ID            uuid.UUID    `json:"id"`
	State         FlowState    `json:"state"`
	PatientID     uuid.UUID    `json:"patient_id"`
	Provider      Provider     `json:"provider"`
	Date          string       `json:"date"`
	DateLabel     string       `json:"date_label"`
	MonthLabel    string       `json:"month_label"`
	IsCustomDate  bool         `json:"is_custom_date"`
	QuickPicks    []DateOption `json:"quick_picks"`
	SlotTimes     []string     `json:"slot_times"`
	ManualTime    bool         `json:"manual_time"`
	Time          string       `json:"time,omitempty"`
	ContactName   string       `json:"contact_name,omitempty"`
	ContactPhone  string       `json:"contact_phone,omitempty"`
	AppointmentID string       `json:"appointment_id,omitempty"`
}

func (h *Handler) newFlowView(f *Flow) flowView {
	now := h.svc.Now()
	v := flowView{
		ID:           f.ID,
		State:        f.State(),
		PatientID:    f.PatientID,
		Provider:     f.Provider,
		Date:         f.Date().Format("2006-01-02"),
		DateLabel:    DateLabel(f.Date()),
		MonthLabel:   MonthLabel(f.Date()),
		IsCustomDate: IsCustomDate(f.Date(), now),
		QuickPicks:   QuickPickDates(now),
		SlotTimes:    SlotTimes,
		ManualTime:   f.ManualTime(),
		Time:         f.TimeLabel(),
		ContactName:  f.ContactName(),
		ContactPhone: f.ContactPhone(),
	}
	if f.AppointmentID() != uuid.Nil {
		v.AppointmentID = f.AppointmentID().String()
	}
	return v
}

func (h *Handler) GetProvider(c echo.Context) error {
	p, err := ProviderFor(ProviderRole(c.Param("role")))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type openBookingRequest struct {
	ProviderRole ProviderRole `json:"provider_role"`
	PatientID    uuid.UUID    `json:"patient_id"`
}

func (h *Handler) OpenBooking(c echo.Context) error {
	var req openBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.svc.Open(c.Request().Context(), req.ProviderRole, req.PatientID)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusCreated, h.newFlowView(f))
}

func (h *Handler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, err := h.svc.Get(id)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusOK, h.newFlowView(f))
}

func (h *Handler) Begin(c echo.Context) error {
	return h.transition(c, h.svc.Begin)
}

func (h *Handler) Back(c echo.Context) error {
	return h.transition(c, h.svc.BackToCard)
}

func (h *Handler) Proceed(c echo.Context) error {
	return h.transition(c, h.svc.Proceed)
}

func (h *Handler) transition(c echo.Context, fn func(uuid.UUID) (*Flow, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, err := fn(id)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusOK, h.newFlowView(f))
}

type selectDateRequest struct {
	Date string `json:"date"` // calendar date, 2006-01-02
}

func (h *Handler) SelectDate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req selectDateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, want YYYY-MM-DD")
	}
	f, err := h.svc.SelectDate(id, d)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusOK, h.newFlowView(f))
}

type selectTimeRequest struct {
	Slot   string `json:"slot,omitempty"`   // one of the canned slot labels
	Manual string `json:"manual,omitempty"` // 24-hour HH:MM entry
}

func (h *Handler) SelectTime(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req selectTimeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var f *Flow
	if req.Manual != "" {
		f, err = h.svc.SetManualTime(id, req.Manual)
	} else {
		f, err = h.svc.ChooseSlot(id, req.Slot)
	}
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusOK, h.newFlowView(f))
}

type timeModeRequest struct {
	Manual bool `json:"manual"`
}

func (h *Handler) SetTimeMode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req timeModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.svc.SetTimeMode(id, req.Manual)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusOK, h.newFlowView(f))
}

type confirmRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type confirmResponse struct {
	Appointment *Appointment `json:"appointment"`
	Route       string       `json:"route"`
}

func (h *Handler) Confirm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Confirm(c.Request().Context(), id, req.Name, req.Phone)
	if err != nil {
		return flowError(err)
	}
	return c.JSON(http.StatusCreated, confirmResponse{Appointment: a, Route: PatientSummaryRoute})
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.Appointments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPatientAppointments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.AppointmentsByPatient(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// flowError maps booking errors to HTTP statuses: missing sessions and
// registry lookups are 404, blocked transitions are 409, bad input is 400.
func flowError(err error) error {
	switch {
	case errors.Is(err, ErrFlowNotFound), errors.Is(err, ErrPatientNotFound), errors.Is(err, ErrUnknownRole):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrWrongState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
