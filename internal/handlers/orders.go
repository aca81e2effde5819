package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/export"
	"printshop-backend/internal/models"
	"printshop-backend/internal/services"
)

// UploadLimits bounds what one order submission may carry.
type UploadLimits struct {
	MaxFileBytes int64
	MaxFiles     int
}

type OrdersHandler struct {
	orders *services.OrderService
	limits UploadLimits
	logger *slog.Logger
}

func NewOrdersHandler(orders *services.OrderService, limits UploadLimits, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders: orders,
		limits: limits,
		logger: logger,
	}
}

// SubmitOrder godoc
// @Summary     Submit a print order
// @Description Accepts the order form as a JSON string in the orderData field together with zero or more files. Each file may be at most 50 MB.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       orderData formData string true "Order fields as JSON"
// @Param       files formData file false "Files to print (multiple allowed)"
// @Success     200 {object} models.SubmitOrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		badRequest(c, "Invalid multipart form")
		return
	}
	defer func() { _ = form.RemoveAll() }()

	raw := firstValue(form, "orderData")
	if raw == "" {
		badRequest(c, "orderData is required")
		return
	}

	var input models.OrderInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		badRequest(c, "orderData is not valid JSON")
		return
	}

	headers := make([]*multipart.FileHeader, 0, len(form.File["files"])+len(form.File["files[]"]))
	headers = append(headers, form.File["files"]...)
	headers = append(headers, form.File["files[]"]...)
	if h.limits.MaxFiles > 0 && len(headers) > h.limits.MaxFiles {
		badRequest(c, fmt.Sprintf("At most %d files per order", h.limits.MaxFiles))
		return
	}

	uploads := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		if h.limits.MaxFileBytes > 0 && fh.Size > h.limits.MaxFileBytes {
			tooLarge(c)
			return
		}

		f, err := fh.Open()
		if err != nil {
			internalError(c, h.logger, "failed to open uploaded file", err)
			return
		}
		defer f.Close()

		uploads = append(uploads, services.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}

	orderID, err := h.orders.Submit(c.Request.Context(), input, uploads)
	if err != nil {
		internalError(c, h.logger, "failed to submit order", err)
		return
	}

	c.JSON(http.StatusOK, models.SubmitOrderResponse{
		Success: true,
		OrderID: orderID,
		Message: "Order submitted successfully",
	})
}

// ListOrders godoc
// @Summary     List orders
// @Description Returns every order with its files, newest first.
// @Tags        orders
// @Produce     json
// @Security    Session
// @Success     200 {array}  models.Order
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary     Get one order
// @Description Public status lookup by order identifier.
// @Tags        orders
// @Produce     json
// @Param       orderId path string true "Order ID (ORD-<millis>)"
// @Success     200 {object} models.Order
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{orderId} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("orderId"))
	if errors.Is(err, services.ErrOrderNotFound) {
		notFound(c, "Order not found")
		return
	}
	if err != nil {
		internalError(c, h.logger, "failed to get order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary     Update order status
// @Description Overwrites the status of an order. Any non-empty status is accepted.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Session
// @Param       orderId path string true "Order ID"
// @Param       request body models.UpdateStatusRequest true "New status"
// @Success     200 {object} models.StatusResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{orderId}/status [put]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		badRequest(c, "status is required")
		return
	}

	err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidOrder):
		badRequest(c, "status is required")
		return
	case errors.Is(err, services.ErrOrderNotFound):
		notFound(c, "Order not found")
		return
	case err != nil:
		internalError(c, h.logger, "failed to update order status", err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Message: "Order status updated",
	})
}

// ClearOrders godoc
// @Summary     Delete all orders
// @Description Removes every uploaded file and every order. Irreversible.
// @Tags        orders
// @Produce     json
// @Security    Session
// @Success     200 {object} models.StatusResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [delete]
func (h *OrdersHandler) ClearOrders(c *gin.Context) {
	if err := h.orders.ClearAll(c.Request.Context()); err != nil {
		internalError(c, h.logger, "failed to clear orders", err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Message: "All orders cleared",
	})
}

// ExportCSV godoc
// @Summary     Export orders as CSV
// @Tags        export
// @Produce     text/csv
// @Security    Session
// @Success     200 {file} file
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /export/orders.csv [get]
func (h *OrdersHandler) ExportCSV(c *gin.Context) {
	h.export(c, export.FormatCSV)
}

// ExportXLSX godoc
// @Summary     Export orders as an Excel workbook
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    Session
// @Success     200 {file} file
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /export/orders.xlsx [get]
func (h *OrdersHandler) ExportXLSX(c *gin.Context) {
	h.export(c, export.FormatXLSX)
}

func (h *OrdersHandler) export(c *gin.Context, format string) {
	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	if err := h.orders.Export(c.Request.Context(), &buf, format); err != nil {
		internalError(c, h.logger, "failed to export orders", err)
		return
	}

	filename := fmt.Sprintf("orders_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

func firstValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Success: false,
		Error:   "File too large",
		Message: "Each file must be 50 MB or smaller",
	})
}
