package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-directory/internal/app"
	"employee-directory/internal/repository"
	"employee-directory/internal/transport/http/response"
	"employee-directory/internal/upload"
)

type EmployeeHandler struct {
	employeeService *app.EmployeeService
}

func NewEmployeeHandler(employeeService *app.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create accepts a multipart form: the employee fields plus a single "photo"
// file. A missing file is left to the service's ordered validation so the
// error message stays deterministic.
func (h *EmployeeHandler) Create(c *gin.Context) {
	input := app.CreateEmployeeInput{
		FullName:    c.PostForm("fullName"),
		DateOfBirth: c.PostForm("dateOfBirth"),
		Email:       c.PostForm("email"),
		Department:  c.PostForm("department"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Designation: c.PostForm("designation"),
		Gender:      c.PostForm("gender"),
	}
	if fh, err := c.FormFile("photo"); err == nil {
		input.Photo = fh
	}

	employee, err := h.employeeService.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case app.IsValidation(err):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, upload.ErrUnsupportedType):
			response.Error(c, http.StatusUnsupportedMediaType, "Only image files are allowed")
		case errors.Is(err, upload.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "Photo exceeds the 3MB size limit")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create employee")
		}
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	filter := repository.EmployeeFilter{
		Search:      c.Query("search"),
		Department:  c.Query("department"),
		Designation: c.Query("designation"),
		Gender:      c.Query("gender"),
	}

	employees, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, h.employeeService.MetaOptions())
}
