package handlers

import (
	"github.com/gin-gonic/gin"

	"ricemill/internal/infrastructure/http/v1/dto"
)

// UsersHandler is the admin user management API.
type UsersHandler struct {
	*BaseHandler
	service AuthService
}

func NewUsersHandler(base *BaseHandler, service AuthService) *UsersHandler {
	return &UsersHandler{BaseHandler: base, service: service}
}

// List handles GET /users
func (h *UsersHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter := req.ToFilter()

	users, total, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, "Users retrieved successfully", dto.FromUsers(users),
		dto.NewPagination(req.Page, req.Limit, int64(total)))
}

// Create handles POST /users
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToAuthRequest()
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, "User created successfully", dto.FromUser(user))
}

// AssignMills handles PUT /users/:userId/mills
func (h *UsersHandler) AssignMills(c *gin.Context) {
	userID, ok := h.ParseID(c, "userId")
	if !ok {
		return
	}
	var req dto.AssignMillsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	millIDs, err := req.ParseIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.AssignMills(c.Request.Context(), userID, millIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Mill assignments updated successfully", dto.FromUser(user))
}

// SetActive handles PATCH /users/:userId/status
func (h *UsersHandler) SetActive(c *gin.Context) {
	userID, ok := h.ParseID(c, "userId")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.SetActive(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "User status updated successfully", dto.FromUser(user))
}
