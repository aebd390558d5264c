package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/server/http/dto"
)

// AddressHandler manages the address book endpoints.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// List handles GET /api/user/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		response = append(response, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/user/addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address := fromAddressRequest(req)
	address.UserID = CurrentUserID(c)
	created, err := h.facade.CreateAddress(c.Request.Context(), address)
	if err != nil {
		h.addressError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(*created))
}

// Update handles PUT /api/user/addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	addressID, ok := addressID(c)
	if !ok {
		return
	}
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address := fromAddressRequest(req)
	address.UserID = CurrentUserID(c)
	address.AddressID = addressID
	if err := h.facade.UpdateAddress(c.Request.Context(), address); err != nil {
		h.addressError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/user/addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	addressID, ok := addressID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteAddress(c.Request.Context(), CurrentUserID(c), addressID); err != nil {
		h.addressError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefault handles POST /api/user/addresses/:id/default.
func (h *AddressHandler) SetDefault(c *gin.Context) {
	addressID, ok := addressID(c)
	if !ok {
		return
	}
	if err := h.facade.SetDefaultAddress(c.Request.Context(), CurrentUserID(c), addressID); err != nil {
		h.addressError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AddressHandler) addressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidAddress), errors.Is(err, domainErrors.ErrInvalidPincode):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func addressID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func fromAddressRequest(req dto.AddressRequest) *model.Address {
	return &model.Address{
		Label:     req.Label,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		Pincode:   req.Pincode,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

func toAddressResponse(address model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		AddressID: address.AddressID,
		Label:     address.Label,
		Line1:     address.Line1,
		Line2:     address.Line2,
		City:      address.City,
		Pincode:   address.Pincode,
		Latitude:  address.Latitude,
		Longitude: address.Longitude,
		IsDefault: address.IsDefault,
	}
}
