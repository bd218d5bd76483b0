package httpapi

import (
	"errors"
	"net/http"

	"grocery-platform/internal/auth"
	"grocery-platform/internal/grocery"
	"grocery-platform/internal/users"
	"grocery-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	Auth    *auth.Service
	Users   *users.Service
	Grocery *grocery.Service
}

// fail maps service errors onto the response taxonomy. Anything not
// recognized is treated as a backing-store outage: the cause is
// logged, never echoed.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, users.ErrInvalidArgument), errors.Is(err, grocery.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrNotFound), errors.Is(err, grocery.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, users.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
	case errors.Is(err, grocery.ErrGroceryInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "grocery is not active"})
	default:
		logger.FromGin(c).Error("request failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dependency unavailable"})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	pair, p, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": pair, "principal": p})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *Handlers) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		badRequest(c)
		return
	}
	pair, err := h.Auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

func (h *Handlers) me(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c.Request.Context())
	c.JSON(http.StatusOK, p)
}

func (h *Handlers) createGrocery(c *gin.Context) {
	var req grocery.GroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	g, err := h.Grocery.CreateGrocery(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *Handlers) listGroceries(c *gin.Context) {
	list, err := h.Grocery.ListGroceries(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) getGrocery(c *gin.Context) {
	g, err := h.Grocery.GetGrocery(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handlers) updateGrocery(c *gin.Context) {
	var req grocery.GroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	g, err := h.Grocery.UpdateGrocery(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handlers) deleteGrocery(c *gin.Context) {
	if err := h.Grocery.DeleteGrocery(c.Request.Context(), c.Param("uid")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) createItem(c *gin.Context) {
	var req grocery.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	it, err := h.Grocery.CreateItem(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h *Handlers) listItems(c *gin.Context) {
	items, err := h.Grocery.ListItems(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) getItem(c *gin.Context) {
	it, err := h.Grocery.GetItem(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handlers) updateItem(c *gin.Context) {
	var req grocery.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	it, err := h.Grocery.UpdateItem(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handlers) deleteItem(c *gin.Context) {
	if err := h.Grocery.DeleteItem(c.Request.Context(), c.Param("uid")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) addIncome(c *gin.Context) {
	var req grocery.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	in, err := h.Grocery.AddIncome(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h *Handlers) listIncomes(c *gin.Context) {
	in, err := h.Grocery.ListIncomes(c.Request.Context(), c.Param("uid"), c.Query("from"), c.Query("to"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *Handlers) createUser(c *gin.Context) {
	var req users.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	u, err := h.Users.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handlers) createSupplier(c *gin.Context) {
	var req users.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	u, err := h.Users.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handlers) listUsers(c *gin.Context) {
	list, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) getUser(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handlers) updateUser(c *gin.Context) {
	var req users.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	u, err := h.Users.Update(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handlers) deleteUser(c *gin.Context) {
	if err := h.Users.SoftDelete(c.Request.Context(), c.Param("uid")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type responsibilityRequest struct {
	GroceryUID string `json:"grocery_id"`
}

func (h *Handlers) assignResponsibility(c *gin.Context) {
	var req responsibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GroceryUID == "" {
		badRequest(c)
		return
	}
	if err := h.Users.AssignResponsibility(c.Request.Context(), c.Param("uid"), req.GroceryUID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) unassignResponsibility(c *gin.Context) {
	if err := h.Users.UnassignResponsibility(c.Request.Context(), c.Param("uid"), c.Param("gid")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
