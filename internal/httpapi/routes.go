package httpapi

import (
	"net/http"

	"grocery-platform/internal/auth"
	"grocery-platform/internal/authz"

	"github.com/gin-gonic/gin"
)

func groceryByParam(c *gin.Context) authz.Resource {
	return authz.GroceryResource(c.Param("uid"))
}

func itemByParam(c *gin.Context) authz.Resource {
	return authz.ItemResource(c.Param("uid"))
}

func itemInGrocery(c *gin.Context) authz.Resource {
	return authz.ItemInGrocery(c.Param("uid"))
}

func incomeOfGrocery(c *gin.Context) authz.Resource {
	return authz.IncomeResource(c.Param("uid"))
}

// Register wires the versioned API onto the router. Identity is
// resolved once per request; each route group then layers the checks
// it needs.
func Register(r *gin.Engine, h *Handlers, codec *auth.Codec, engine *authz.Engine, loginThrottle gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(auth.Authenticate(codec))

	authGroup := v1.Group("/auth")
	if loginThrottle != nil {
		authGroup.Use(loginThrottle)
	}
	authGroup.POST("/login", h.login)
	authGroup.POST("/refresh", h.refresh)
	v1.GET("/me", auth.RequireAuthenticated(), h.me)

	groceries := v1.Group("/groceries", auth.RequireAuthenticated())
	groceries.GET("", h.listGroceries)
	groceries.POST("", authz.Require(engine, groceryByParam), h.createGrocery)
	groceries.GET("/:uid", authz.Require(engine, groceryByParam), h.getGrocery)
	groceries.PUT("/:uid", authz.Require(engine, groceryByParam), h.updateGrocery)
	groceries.DELETE("/:uid", authz.Require(engine, groceryByParam), h.deleteGrocery)

	groceries.GET("/:uid/items", authz.Require(engine, itemInGrocery), h.listItems)
	groceries.POST("/:uid/items", authz.Require(engine, itemInGrocery), h.createItem)
	groceries.GET("/:uid/incomes", authz.Require(engine, incomeOfGrocery), h.listIncomes)
	groceries.POST("/:uid/incomes", authz.Require(engine, incomeOfGrocery), h.addIncome)

	items := v1.Group("/items", auth.RequireAuthenticated())
	items.GET("/:uid", authz.Require(engine, itemByParam), h.getItem)
	items.PUT("/:uid", authz.Require(engine, itemByParam), h.updateItem)
	items.DELETE("/:uid", authz.Require(engine, itemByParam), h.deleteItem)

	// User administration is admin-only end to end, reads included.
	admin := v1.Group("/users", auth.RequireAuthenticated(), authz.RequireRole(auth.RoleAdmin))
	admin.POST("", h.createUser)
	admin.GET("", h.listUsers)
	admin.GET("/:uid", h.getUser)
	admin.PUT("/:uid", h.updateUser)
	admin.DELETE("/:uid", h.deleteUser)
	admin.POST("/:uid/responsibilities", h.assignResponsibility)
	admin.DELETE("/:uid/responsibilities/:gid", h.unassignResponsibility)

	v1.POST("/suppliers", auth.RequireAuthenticated(), authz.RequireRole(auth.RoleAdmin), h.createSupplier)
}
