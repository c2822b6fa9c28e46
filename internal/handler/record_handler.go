package handler

import (
	"errors"

	"go-recordshop/internal/middleware"
	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/internal/service"
	"go-recordshop/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const msgRecordNotFound = "Record not found."

type RecordHandler struct {
	service service.RecordService
}

func NewRecordHandler(s service.RecordService) *RecordHandler {
	return &RecordHandler{service: s}
}

// RecordRequest is the body of POST and PUT /api/records. Numeric fields are pointers so
// that an absent value is rejected instead of being stored as zero.
type RecordRequest struct {
	Title       string           `json:"title" validate:"required"`
	Artist      string           `json:"artist" validate:"required"`
	Format      string           `json:"format" validate:"required"`
	Genre       string           `json:"genre" validate:"required"`
	ReleaseYear *int             `json:"releaseYear" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	StockQty    *int             `json:"stockQty" validate:"required"`

	CustomerID        string `json:"customerId"`
	CustomerFirstName string `json:"customerFirstName"`
	CustomerLastName  string `json:"customerLastName"`
	CustomerContact   string `json:"customerContact"`
	CustomerEmail     string `json:"customerEmail"`
}

// Fields converts a validated request. Omitted customer fields come through as "".
func (r *RecordRequest) Fields() model.RecordFields {
	f := model.RecordFields{
		Title:             r.Title,
		Artist:            r.Artist,
		Format:            r.Format,
		Genre:             r.Genre,
		CustomerID:        r.CustomerID,
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerContact:   r.CustomerContact,
		CustomerEmail:     r.CustomerEmail,
	}
	if r.ReleaseYear != nil {
		f.ReleaseYear = *r.ReleaseYear
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	if r.StockQty != nil {
		f.StockQty = *r.StockQty
	}
	return f
}

// parseRecordRequest returns the 400 body to send when the request is unusable.
func parseRecordRequest(c *fiber.Ctx) (*RecordRequest, fiber.Map) {
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.Map{"message": "Invalid JSON"}
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return nil, fiber.Map{
			"message": "Validation failed: " + errs[0].String(),
			"errors":  errs,
		}
	}
	return &req, nil
}

// recordID reads :id. Anything that is not a positive integer cannot name a record.
func recordID(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msgRecordNotFound})
}

// GetRecords returns every record
// GET /api/records
func (h *RecordHandler) GetRecords(c *fiber.Ctx) error {
	records, err := h.service.GetAllRecords()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	if records == nil {
		records = []model.Record{}
	}
	return c.JSON(records)
}

// GetRecord returns a single record
// GET /api/records/:id
func (h *RecordHandler) GetRecord(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return notFound(c)
	}

	record, err := h.service.GetRecord(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(record)
}

// CreateRecord adds a record; the server assigns the id
// POST /api/records
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	req, errBody := parseRecordRequest(c)
	if errBody != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errBody)
	}

	record, err := h.service.CreateRecord(req.Fields(), middleware.Principal(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create record"})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdateRecord replaces every field of a record
// PUT /api/records/:id
func (h *RecordHandler) UpdateRecord(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return notFound(c)
	}

	req, errBody := parseRecordRequest(c)
	if errBody != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errBody)
	}

	record, err := h.service.UpdateRecord(id, req.Fields(), middleware.Principal(c))
	if errors.Is(err, repository.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update record"})
	}
	return c.JSON(record)
}

// DeleteRecord removes a record and echoes it back
// DELETE /api/records/:id
func (h *RecordHandler) DeleteRecord(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return notFound(c)
	}

	record, err := h.service.DeleteRecord(id, middleware.Principal(c))
	if errors.Is(err, repository.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete record"})
	}
	return c.JSON(fiber.Map{"message": "Record deleted.", "record": record})
}

// GetFormats GET /api/formats
func (h *RecordHandler) GetFormats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetFormats())
}

// GetGenres GET /api/genres
func (h *RecordHandler) GetGenres(c *fiber.Ctx) error {
	return c.JSON(h.service.GetGenres())
}
