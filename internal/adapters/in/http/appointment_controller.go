package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
)

type AppointmentController struct {
	useCase in.AppointmentUseCase
}

func NewAppointmentController(useCase in.AppointmentUseCase) *AppointmentController {
	return &AppointmentController{useCase: useCase}
}

func (c *AppointmentController) RegisterRoutes(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.GET("", c.list)
		appointments.GET("/tabs", c.tabs)
		appointments.POST("", requireRole(domain.RolePatient, domain.RoleReceptionist, domain.RoleAdmin), c.book)
		appointments.PATCH("/:id/reschedule", c.reschedule)
		appointments.PATCH("/:id/cancel", c.cancel)
		appointments.PATCH("/:id/status", requireRole(domain.RoleDoctor, domain.RoleReceptionist, domain.RoleAdmin), c.updateStatus)
	}
}

// parseFilter: вкладка по умолчанию Scheduled, диапазон дат опционален
func parseFilter(ctx *gin.Context) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		DoctorID: ctx.Query("doctorId"),
		Tab:      domain.StatusTabScheduled,
	}

	if value := ctx.Query("tab"); value != "" {
		tab, err := domain.ParseStatusTab(value)
		if err != nil {
			return filter, err
		}
		filter.Tab = tab
	}

	if value := ctx.Query("from"); value != "" {
		from, err := json_types.ParseDate(value)
		if err != nil {
			return filter, err
		}
		filter.DateRange.From = from
	}
	if value := ctx.Query("to"); value != "" {
		to, err := json_types.ParseDate(value)
		if err != nil {
			return filter, err
		}
		filter.DateRange.To = to
	}

	return filter, nil
}

func (c *AppointmentController) list(ctx *gin.Context) {
	filter, err := parseFilter(ctx)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	appointments, err := c.useCase.ListAppointments(ctx.Request.Context(), sessionFrom(ctx), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"tab":          filter.Tab,
		"appointments": appointments,
	})
}

func (c *AppointmentController) tabs(ctx *gin.Context) {
	counts, err := c.useCase.TabCounts(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tabs": counts})
}

func (c *AppointmentController) book(ctx *gin.Context) {
	var form domain.BookingForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	appointment, err := c.useCase.Book(ctx.Request.Context(), sessionFrom(ctx), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (c *AppointmentController) reschedule(ctx *gin.Context) {
	var form domain.RescheduleForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	appointment, err := c.useCase.Reschedule(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func (c *AppointmentController) cancel(ctx *gin.Context) {
	appointment, err := c.useCase.Cancel(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func (c *AppointmentController) updateStatus(ctx *gin.Context) {
	var form domain.StatusUpdateForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	appointment, err := c.useCase.UpdateStatus(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointment": appointment})
}
