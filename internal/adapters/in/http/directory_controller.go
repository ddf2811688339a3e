package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
)

const (
	profileImageField = "profileImage"
	maxImageSize      = 5 << 20
)

// DirectoryController проксирует справочники и каталог: пациенты,
// регистраторы, больницы, лекарства, счета и счетчики дашборда
type DirectoryController struct {
	useCase in.DirectoryUseCase
}

func NewDirectoryController(useCase in.DirectoryUseCase) *DirectoryController {
	return &DirectoryController{useCase: useCase}
}

func (c *DirectoryController) RegisterRoutes(api *gin.RouterGroup) {
	staff := requireRole(domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist)
	desk := requireRole(domain.RoleAdmin, domain.RoleReceptionist)
	admin := requireRole(domain.RoleAdmin)

	patients := api.Group("/patients")
	{
		patients.GET("", staff, c.listPatients)
		patients.GET("/:id", staff, c.getPatient)
		patients.POST("", desk, c.registerPatient)
		patients.PATCH("/:id", desk, c.updatePatient)
		patients.DELETE("/:id", desk, c.deletePatient)
	}

	api.GET("/receptionists", admin, c.listReceptionists)
	api.GET("/hospitals", c.listHospitals)

	medicines := api.Group("/medicines")
	{
		medicines.GET("", c.listMedicines)
		medicines.POST("", admin, c.createMedicine)
		medicines.PUT("/:id", admin, c.updateMedicine)
		medicines.DELETE("/:id", admin, c.deleteMedicine)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("", c.listInvoices)
		invoices.GET("/:id", c.getInvoice)
		invoices.POST("", desk, c.createInvoice)
		invoices.PATCH("/:id/status", desk, c.updateInvoiceStatus)
	}

	api.GET("/dashboard/stats", staff, c.dashboardStats)
}

func (c *DirectoryController) listPatients(ctx *gin.Context) {
	patients, err := c.useCase.ListPatients(ctx.Request.Context(), sessionFrom(ctx), ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (c *DirectoryController) getPatient(ctx *gin.Context) {
	patient, err := c.useCase.GetPatient(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (c *DirectoryController) registerPatient(ctx *gin.Context) {
	form, image, ok := bindPatientForm(ctx)
	if !ok {
		return
	}

	patient, err := c.useCase.RegisterPatient(ctx.Request.Context(), sessionFrom(ctx), form, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"patient": patient})
}

func (c *DirectoryController) updatePatient(ctx *gin.Context) {
	form, image, ok := bindPatientForm(ctx)
	if !ok {
		return
	}

	patient, err := c.useCase.UpdatePatient(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"), form, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (c *DirectoryController) deletePatient(ctx *gin.Context) {
	if err := c.useCase.DeletePatient(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindPatientForm принимает и JSON, и multipart с необязательным
// изображением профиля
func bindPatientForm(ctx *gin.Context) (domain.PatientForm, *domain.Upload, bool) {
	var form domain.PatientForm
	if err := ctx.ShouldBind(&form); err != nil {
		badRequest(ctx, err.Error())
		return form, nil, false
	}

	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		return form, nil, true
	}

	header, err := ctx.FormFile(profileImageField)
	if err == http.ErrMissingFile {
		return form, nil, true
	}
	if err != nil {
		badRequest(ctx, err.Error())
		return form, nil, false
	}

	image, err := readUpload(header)
	if err != nil {
		badRequest(ctx, err.Error())
		return form, nil, false
	}
	return form, image, true
}

func readUpload(header *multipart.FileHeader) (*domain.Upload, error) {
	if header.Size > maxImageSize {
		return nil, fmt.Errorf("profile image exceeds %d bytes", maxImageSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &domain.Upload{
		FieldName:   profileImageField,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *DirectoryController) listReceptionists(ctx *gin.Context) {
	receptionists, err := c.useCase.ListReceptionists(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"receptionists": receptionists})
}

func (c *DirectoryController) listHospitals(ctx *gin.Context) {
	hospitals, err := c.useCase.ListHospitals(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hospitals": hospitals})
}

func (c *DirectoryController) listMedicines(ctx *gin.Context) {
	medicines, err := c.useCase.ListMedicines(ctx.Request.Context(), sessionFrom(ctx), ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

func (c *DirectoryController) createMedicine(ctx *gin.Context) {
	var form domain.MedicineForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	medicine, err := c.useCase.CreateMedicine(ctx.Request.Context(), sessionFrom(ctx), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"medicine": medicine})
}

func (c *DirectoryController) updateMedicine(ctx *gin.Context) {
	var form domain.MedicineForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	medicine, err := c.useCase.UpdateMedicine(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

func (c *DirectoryController) deleteMedicine(ctx *gin.Context) {
	if err := c.useCase.DeleteMedicine(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *DirectoryController) listInvoices(ctx *gin.Context) {
	filter := domain.InvoiceFilter{
		Status: domain.InvoiceStatus(ctx.Query("status")),
		Search: ctx.Query("search"),
	}
	if filter.Status != "" && filter.Status != domain.InvoiceStatusPaid && filter.Status != domain.InvoiceStatusUnpaid {
		badRequest(ctx, "Invalid invoice status")
		return
	}

	invoices, err := c.useCase.ListInvoices(ctx.Request.Context(), sessionFrom(ctx), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (c *DirectoryController) getInvoice(ctx *gin.Context) {
	invoice, err := c.useCase.GetInvoice(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (c *DirectoryController) createInvoice(ctx *gin.Context) {
	var form domain.InvoiceForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	invoice, err := c.useCase.CreateInvoice(ctx.Request.Context(), sessionFrom(ctx), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

func (c *DirectoryController) updateInvoiceStatus(ctx *gin.Context) {
	var form domain.InvoiceStatusForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	invoice, err := c.useCase.UpdateInvoiceStatus(ctx.Request.Context(), sessionFrom(ctx), ctx.Param("id"), form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (c *DirectoryController) dashboardStats(ctx *gin.Context) {
	stats, err := c.useCase.DashboardStats(ctx.Request.Context(), sessionFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
