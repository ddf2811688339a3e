package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
)

// SlotController - маршруты /doctors: список, специальности и все, что
// касается сетки слотов конкретного врача
type SlotController struct {
	useCase          in.SlotUseCase
	directoryUseCase in.DirectoryUseCase
}

func NewSlotController(useCase in.SlotUseCase, directoryUseCase in.DirectoryUseCase) *SlotController {
	return &SlotController{
		useCase:          useCase,
		directoryUseCase: directoryUseCase,
	}
}

func (c *SlotController) RegisterRoutes(api *gin.RouterGroup) {
	doctors := api.Group("/doctors")
	{
		doctors.GET("", c.listDoctors)
		doctors.GET("/specialties", c.specialties)
		doctors.GET("/:doctorId", c.getDoctor)
		doctors.GET("/:doctorId/slots", c.slotGrid)
		doctors.GET("/:doctorId/hours", c.hours)
		doctors.GET("/:doctorId/booked", c.booked)
		doctors.POST("/:doctorId/time-picker", c.timePicker)
	}
}

type TimePickerRequest struct {
	State  domain.TimePickerState   `json:"state"`
	Action *domain.TimePickerAction `json:"action"`
}

func (c *SlotController) listDoctors(ctx *gin.Context) {
	doctors, err := c.directoryUseCase.ListDoctors(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	// Фильтр по специальности, как в форме записи
	if specialty := ctx.Query("specialty"); specialty != "" {
		filtered := make([]domain.Doctor, 0, len(doctors))
		for _, doctor := range doctors {
			if doctor.DoctorDetails.SpecialtyType == specialty {
				filtered = append(filtered, doctor)
			}
		}
		doctors = filtered
	}

	ctx.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (c *SlotController) specialties(ctx *gin.Context) {
	specialties, err := c.directoryUseCase.Specialties(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"specialties": specialties})
}

func (c *SlotController) getDoctor(ctx *gin.Context) {
	doctor, err := c.useCase.GetDoctor(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("doctorId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

func (c *SlotController) slotGrid(ctx *gin.Context) {
	granularity := 0
	if value := ctx.Query("granularity"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			badRequest(ctx, "Invalid granularity")
			return
		}
		granularity = parsed
	}

	var weekStart json_types.Date
	if value := ctx.Query("weekStart"); value != "" {
		parsed, err := json_types.ParseDate(value)
		if err != nil {
			badRequest(ctx, "Invalid weekStart date format")
			return
		}
		weekStart = parsed
	}

	grid, err := c.useCase.SlotGrid(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("doctorId"), granularity, weekStart)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grid)
}

func (c *SlotController) hours(ctx *gin.Context) {
	hours, err := c.useCase.DoctorHours(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("doctorId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hours": hours})
}

func (c *SlotController) booked(ctx *gin.Context) {
	index, err := c.useCase.BookedSlots(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("doctorId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bookedSlots": index})
}

func (c *SlotController) timePicker(ctx *gin.Context) {
	var req TimePickerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	view, err := c.useCase.TimePicker(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("doctorId"), req.State, req.Action)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}
