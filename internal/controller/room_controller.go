package controller

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/internal/service"
)

type CreateRoomInput struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	Location           string   `json:"location" validate:"required"`
	RentPrice          int      `json:"rentPrice" validate:"required,gt=0"`
	PropertyType       string   `json:"propertyType" validate:"required,property_type"`
	TenantPreference   string   `json:"tenantPreference" validate:"required,tenant_preference"`
	OwnerContactNumber string   `json:"ownerContactNumber" validate:"required"`
	Amenities          []string `json:"amenities"`
	AreaSqft           *int     `json:"areaSqft" validate:"omitempty,gte=0"`
	FloorNumber        *int     `json:"floorNumber"`
	ImageURLs          []string `json:"imageUrls" validate:"omitempty,max=16,dive,required"`
}

// nullableInt tells an absent field apart from an explicit null.
type nullableInt struct {
	Set   bool
	Value *int
}

func (n *nullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateRoomInput is a partial update. The owner can not be changed.
// areaSqft and floorNumber accept null to clear them.
type UpdateRoomInput struct {
	Title              *string                 `json:"title"`
	Description        *string                 `json:"description"`
	Location           *string                 `json:"location"`
	RentPrice          *int                    `json:"rentPrice"`
	PropertyType       *model.PropertyType     `json:"propertyType"`
	TenantPreference   *model.TenantPreference `json:"tenantPreference"`
	OwnerContactNumber *string                 `json:"ownerContactNumber"`
	Amenities          *[]string               `json:"amenities"`
	AreaSqft           nullableInt             `json:"areaSqft"`
	FloorNumber        nullableInt             `json:"floorNumber"`
	IsAvailable        *bool                   `json:"isAvailable"`
}

func (in UpdateRoomInput) toUpdate() repository.RoomUpdate {
	return repository.RoomUpdate{
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		RentPrice:          in.RentPrice,
		PropertyType:       in.PropertyType,
		TenantPreference:   in.TenantPreference,
		OwnerContactNumber: in.OwnerContactNumber,
		Amenities:          in.Amenities,
		AreaSqft:           in.AreaSqft.Value,
		FloorNumber:        in.FloorNumber.Value,
		IsAvailable:        in.IsAvailable,
		ClearAreaSqft:      in.AreaSqft.Set && in.AreaSqft.Value == nil,
		ClearFloorNumber:   in.FloorNumber.Set && in.FloorNumber.Value == nil,
	}
}

type RoomController struct {
	rooms *service.Rooms
}

func NewRoomController(rooms *service.Rooms) *RoomController {
	return &RoomController{rooms: rooms}
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *fiber.Ctx, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// ListRooms is the public search. Supported query parameters are location,
// minPrice, maxPrice, propertyType and tenantPref.
func (h *RoomController) ListRooms(c *fiber.Ctx) error {
	minPrice, ok := queryInt(c, "minPrice")
	if !ok {
		return badRequest(c, "Invalid minPrice")
	}
	maxPrice, ok := queryInt(c, "maxPrice")
	if !ok {
		return badRequest(c, "Invalid maxPrice")
	}

	tenantPref := c.Query("tenantPref")
	if tenantPref == "" {
		tenantPref = c.Query("tenantPreference")
	}

	rooms, err := h.rooms.Search(c.UserContext(), repository.RoomFilter{
		Location:         c.Query("location"),
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
		PropertyType:     model.PropertyType(c.Query("propertyType")),
		TenantPreference: model.TenantPreference(tenantPref),
	})
	if err != nil {
		return respondError(c, err, "Failed to fetch rooms")
	}
	return c.JSON(fiber.Map{
		"rooms": rooms,
	})
}

func (h *RoomController) FeaturedRooms(c *fiber.Ctx) error {
	rooms, err := h.rooms.Featured(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch rooms")
	}
	return c.JSON(fiber.Map{
		"rooms": rooms,
	})
}

func (h *RoomController) MyRooms(c *fiber.Ctx) error {
	rooms, err := h.rooms.Mine(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch rooms")
	}
	return c.JSON(fiber.Map{
		"rooms": rooms,
	})
}

// GetRoom answers 404 for any id that can not name a room, malformed ones
// included.
func (h *RoomController) GetRoom(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, service.NotFound("Room not found"), "Failed to fetch room")
	}

	room, err := h.rooms.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch room")
	}
	return c.JSON(fiber.Map{
		"room": room,
	})
}

func (h *RoomController) CreateRoom(c *fiber.Ctx) error {
	input := new(CreateRoomInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := validateInput(input); err != nil {
		return badRequest(c, err.Error())
	}

	room, err := h.rooms.Create(c.UserContext(), callerID(c), service.NewRoom{
		Title:              input.Title,
		Description:        input.Description,
		Location:           input.Location,
		RentPrice:          input.RentPrice,
		PropertyType:       model.PropertyType(input.PropertyType),
		TenantPreference:   model.TenantPreference(input.TenantPreference),
		OwnerContactNumber: input.OwnerContactNumber,
		Amenities:          input.Amenities,
		AreaSqft:           input.AreaSqft,
		FloorNumber:        input.FloorNumber,
		ImageURLs:          input.ImageURLs,
	})
	if err != nil {
		return respondError(c, err, "Failed to create room")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"room": room,
	})
}

func (h *RoomController) UpdateRoom(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}

	input := new(UpdateRoomInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	room, err := h.rooms.Update(c.UserContext(), callerID(c), id, input.toUpdate())
	if err != nil {
		return respondError(c, err, "Failed to update room")
	}
	return c.JSON(fiber.Map{
		"room": room,
	})
}

func (h *RoomController) DeleteRoom(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}

	if err := h.rooms.Delete(c.UserContext(), callerID(c), id); err != nil {
		return respondError(c, err, "Failed to delete room")
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
