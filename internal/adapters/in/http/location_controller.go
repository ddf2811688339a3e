package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
)

type LocationController struct {
	useCase in.LocationUseCase
}

func NewLocationController(useCase in.LocationUseCase) *LocationController {
	return &LocationController{useCase: useCase}
}

func (c *LocationController) RegisterRoutes(api *gin.RouterGroup) {
	locations := api.Group("/locations")
	{
		locations.GET("/countries", c.countries)
		locations.GET("/states", c.states)
		locations.GET("/cities", c.cities)
		locations.POST("/cascade", c.cascade)
	}
}

type CascadeRequest struct {
	State  domain.CascadeState  `json:"state"`
	Action domain.CascadeAction `json:"action"`
}

func (c *LocationController) countries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"countries": c.useCase.Countries()})
}

func (c *LocationController) states(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"states": c.useCase.States(ctx.Query("country"))})
}

func (c *LocationController) cities(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"cities": c.useCase.Cities(ctx.Query("country"), ctx.Query("state"))})
}

func (c *LocationController) cascade(ctx *gin.Context) {
	var req CascadeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"state": c.useCase.Cascade(req.State, req.Action)})
}
