package v1

import (
	"github.com/gin-gonic/gin"
)

// EntryRouteHandler defines the interface for entry module handlers.
// handlers.EntryHandler implements it for every module.
type EntryRouteHandler interface {
	Resource() string
	List(c *gin.Context)
	Summary(c *gin.Context)
	Export(c *gin.Context)
	BulkDelete(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterEntryRoutes registers the uniform routes of one entry module.
// Static paths are registered before /:id.
//
// Usage:
//
//	repo := entry_repo.NewRicePurchaseRepo(txm)
//	service := rice_purchase.NewService(repo, deps)
//	handler := handlers.NewEntryHandler[*rice_purchase.RicePurchase,
//		dto.CreateRicePurchaseRequest, dto.UpdateRicePurchaseRequest](base, service)
//	RegisterEntryRoutes(millScoped.Group("/rice-purchases"), handler)
func RegisterEntryRoutes(group *gin.RouterGroup, handler EntryRouteHandler) {
	group.GET("", handler.List)
	group.GET("/summary", handler.Summary)
	group.GET("/export", handler.Export)
	group.DELETE("/bulk", handler.BulkDelete)
	group.GET("/:id", handler.Get)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
