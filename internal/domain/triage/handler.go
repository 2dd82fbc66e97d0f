package triage

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.StartAssessment)
	api.GET("/assessments/:id", h.GetAssessment)
	api.POST("/assessments/:id/name", h.SubmitName)
	api.POST("/assessments/:id/answers", h.Answer)
	api.POST("/assessments/:id/back", h.Back)
	api.POST("/assessments/:id/finish", h.Finish)
}

// questionView is the current question plus walkthrough progress.
type questionView struct {
	Index    int     `json:"index"`
	Total    int     `json:"total"`
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Progress float64 `json:"progress"`
}

// stateView is the externally visible walkthrough state.
type stateView struct {
	ID             uuid.UUID       `json:"id"`
	Phase          Phase           `json:"phase"`
	Name           string          `json:"name,omitempty"`
	Question       *questionView   `json:"question,omitempty"`
	Options        []AnswerOption  `json:"options,omitempty"`
	Result         *Result         `json:"result,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Exits          []Exit          `json:"exits,omitempty"`
	Finished       bool            `json:"finished"`
	PatientID      string          `json:"patient_id,omitempty"`
}

func newStateView(w *Walkthrough) stateView {
	v := stateView{
		ID:       w.ID,
		Phase:    w.Phase(),
		Name:     w.Name(),
		Finished: w.Finished(),
	}

	switch w.Phase() {
	case PhaseQuestion:
		i := w.QuestionIndex()
		v.Question = &questionView{
			Index:    i,
			Total:    len(Questions),
			ID:       Questions[i].ID,
			Text:     Questions[i].Text,
			Progress: float64(i+1) / float64(len(Questions)),
		}
		v.Options = AnswerOptions
	case PhaseComplete:
		res, _ := w.Result()
		rec := RecommendationFor(res.Pathway)
		v.Result = &res
		v.Recommendation = &rec
		v.Exits = AllowedExits(res.Pathway)
	}

	if w.PatientID() != uuid.Nil {
		v.PatientID = w.PatientID().String()
	}
	return v
}

func (h *Handler) StartAssessment(c echo.Context) error {
	w := h.mgr.Start()
	return c.JSON(http.StatusCreated, newStateView(w))
}

func (h *Handler) GetAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.mgr.Get(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, newStateView(w))
}

type submitNameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) SubmitName(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req submitNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.mgr.SubmitName(id, req.Name)
	if err != nil {
		return walkthroughError(err)
	}
	return c.JSON(http.StatusOK, newStateView(w))
}

type answerRequest struct {
	Value int `json:"value"`
}

func (h *Handler) Answer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.mgr.Answer(id, req.Value)
	if err != nil {
		return walkthroughError(err)
	}
	return c.JSON(http.StatusOK, newStateView(w))
}

func (h *Handler) Back(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.mgr.Back(id)
	if err != nil {
		return walkthroughError(err)
	}
	return c.JSON(http.StatusOK, newStateView(w))
}

type finishRequest struct {
	Exit Exit `json:"exit"`
}

type finishResponse struct {
	PatientID uuid.UUID `json:"patient_id"`
	Route     string    `json:"route"`
}

func (h *Handler) Finish(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req finishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patientID, route, err := h.mgr.Finish(c.Request().Context(), id, req.Exit)
	if err != nil {
		return walkthroughError(err)
	}
	return c.JSON(http.StatusCreated, finishResponse{PatientID: patientID, Route: route})
}

// walkthroughError maps walkthrough errors to HTTP statuses: missing
// sessions are 404, blocked transitions are 409, bad input is 400.
func walkthroughError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrWrongPhase), errors.Is(err, ErrNotComplete), errors.Is(err, ErrAlreadyFinished):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
