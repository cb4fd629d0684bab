package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/trainer-booking/internal/catalog"
	"github.com/Leganyst/trainer-booking/internal/service"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- identity ---

func (h *Handler) RegisterClient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	// Администраторы создаются только при старте процесса.
	cl, err := h.Identity.RegisterClient(c.Request.Context(), service.RegisterClientInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClient(cl))
}

func (h *Handler) ListServices(c *gin.Context) {
	all := catalog.All()
	out := make([]serviceResponse, 0, len(all))
	for _, s := range all {
		out = append(out, toService(s))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.Identity.ListTrainers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]trainerResponse, 0, len(trainers))
	for i := range trainers {
		out = append(out, toTrainer(&trainers[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTrainer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Identity.GetTrainer(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrainer(t))
}

func (h *Handler) CreateTrainer(c *gin.Context) {
	var req createTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	clientID, ok := optionalID(c, "client_id", req.ClientID)
	if !ok {
		return
	}

	t, err := h.Identity.CreateTrainer(c.Request.Context(), callerOf(c), service.CreateTrainerInput{
		Name:            req.Name,
		Surname:         req.Surname,
		Sex:             req.Sex,
		Age:             req.Age,
		YearsExperience: req.YearsExperience,
		ProfilePic:      req.ProfilePic,
		Type:            req.Type,
		ClientID:        clientID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTrainer(t))
}

// --- availability ---

func (h *Handler) CheckAvailability(c *gin.Context) {
	trainerID, err := uuid.Parse(c.Query("trainer_id"))
	if err != nil {
		badRequest(c, "trainer_id must be a UUID")
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		badRequest(c, "start must be an RFC3339 timestamp")
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	excludeID, ok := queryID(c, "exclude_appointment_id")
	if !ok {
		return
	}

	res, err := h.Appointments.CheckAvailability(c.Request.Context(), callerOf(c), service.CheckAvailabilityInput{
		ClientID:  clientID,
		TrainerID: trainerID,
		Start:     start,
		ServiceID: c.Query("service_id"),
		ExcludeID: excludeID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, availabilityResponse{Available: res.OK, Reason: string(res.Reason), Message: res.Message})
}

func (h *Handler) ListFreeSlots(c *gin.Context) {
	trainerID, ok := pathID(c)
	if !ok {
		return
	}
	date, ok := h.queryDate(c, "date")
	if !ok {
		return
	}

	slots, err := h.Appointments.ListFreeSlots(c.Request.Context(), callerOf(c), trainerID, date, c.Query("service_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{Start: s.Start, End: s.End, Available: s.Available, Reason: string(s.Reason)})
	}
	c.JSON(http.StatusOK, out)
}

// --- appointments ---

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	trainerID, err := uuid.Parse(req.TrainerID)
	if err != nil {
		badRequest(c, "trainer_id must be a UUID")
		return
	}
	clientID, ok := optionalID(c, "client_id", req.ClientID)
	if !ok {
		return
	}

	v, err := h.Appointments.Create(c.Request.Context(), callerOf(c), service.CreateAppointmentInput{
		ClientID:  clientID,
		TrainerID: trainerID,
		Start:     req.Start,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAppointment(*v))
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	trainerID, ok := optionalID(c, "trainer_id", req.TrainerID)
	if !ok {
		return
	}

	v, err := h.Appointments.Reschedule(c.Request.Context(), callerOf(c), id, service.RescheduleInput{
		TrainerID: trainerID,
		Start:     req.Start,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAppointment(*v))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req cancelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	rec, err := h.Appointments.Cancel(c.Request.Context(), callerOf(c), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCancellation(*rec))
}

func (h *Handler) CancelAll(c *gin.Context) {
	var req cancelAllRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	caller := callerOf(c)
	var clientID *uuid.UUID
	if !req.All {
		id, ok := optionalID(c, "client_id", req.ClientID)
		if !ok {
			return
		}
		if id == nil {
			id = &caller.ClientID
		}
		clientID = id
	}

	res, err := h.Appointments.CancelAll(c.Request.Context(), caller, clientID, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": res.Cancelled, "skipped": res.Skipped})
}

func (h *Handler) ListMyAppointments(c *gin.Context) {
	page, size := paging(c)
	p, err := h.Appointments.ListMyAppointments(c.Request.Context(), callerOf(c), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(p, toAppointment))
}

func (h *Handler) ListAllAppointments(c *gin.Context) {
	page, size := paging(c)
	p, err := h.Appointments.ListAllAppointments(c.Request.Context(), callerOf(c), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(p, toAppointment))
}

func (h *Handler) ListCancellations(c *gin.Context) {
	page, size := paging(c)
	p, err := h.Appointments.ListCancellations(c.Request.Context(), callerOf(c), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(p, toCancellation))
}

// --- work hours ---

func (h *Handler) GetEffectiveWorkHours(c *gin.Context) {
	trainerID, ok := queryID(c, "trainer_id")
	if !ok {
		return
	}
	date, ok := h.queryDate(c, "date")
	if !ok {
		return
	}

	eff, err := h.WorkHours.GetEffectiveWorkHours(c.Request.Context(), trainerID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hoursResponse{OpenHour: eff.Open, CloseHour: eff.Close, Source: string(eff.Source)})
}

func (h *Handler) SetGlobalWorkHours(c *gin.Context) {
	var req hoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	wh, err := h.WorkHours.SetGlobalWorkHours(c.Request.Context(), callerOf(c), *req.OpenHour, *req.CloseHour)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hoursResponse{OpenHour: wh.OpenHour, CloseHour: wh.CloseHour})
}

func (h *Handler) SetTrainerWorkHours(c *gin.Context) {
	trainerID, ok := pathID(c)
	if !ok {
		return
	}
	var req hoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	wh, err := h.WorkHours.SetTrainerWorkHours(c.Request.Context(), callerOf(c), trainerID, *req.OpenHour, *req.CloseHour)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hoursResponse{OpenHour: wh.OpenHour, CloseHour: wh.CloseHour})
}

func (h *Handler) ListOverrides(c *gin.Context) {
	trainerID, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.WorkHours.ListTrainerWorkHourOverrides(c.Request.Context(), trainerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]overrideResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOverride(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SetOverride(c *gin.Context) {
	trainerID, ok := pathID(c)
	if !ok {
		return
	}
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err1 := time.Parse(service.DateLayout, req.StartDate)
	end, err2 := time.Parse(service.DateLayout, req.EndDate)
	if err1 != nil || err2 != nil {
		badRequest(c, "start_date and end_date must be YYYY-MM-DD")
		return
	}

	o, err := h.WorkHours.SetTrainerWorkHourOverride(
		c.Request.Context(), callerOf(c), trainerID, start, end, *req.OpenHour, *req.CloseHour,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOverride(*o))
}

// --- statistics ---

func (h *Handler) GetStatistics(c *gin.Context) {
	st, err := h.Statistics.GetStatistics(c.Request.Context(), callerOf(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatistics(st))
}

// --- helpers ---

// bindOptionalJSON: тело необязательное, пустое тело (в том числе chunked) не ошибка.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return false
	}
	return true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func queryID(c *gin.Context, key string) (*uuid.UUID, bool) {
	v := c.Query(key)
	return optionalID(c, key, &v)
}

func optionalID(c *gin.Context, field string, v *string) (*uuid.UUID, bool) {
	if v == nil || *v == "" {
		return nil, true
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		badRequest(c, field+" must be a UUID")
		return nil, false
	}
	return &id, true
}

// queryDate: YYYY-MM-DD в поясе бизнеса.
func (h *Handler) queryDate(c *gin.Context, key string) (time.Time, bool) {
	loc := h.Rules.Location
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(service.DateLayout, c.Query(key), loc)
	if err != nil {
		badRequest(c, key+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func paging(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("page_size"))
	return page, size
}
