package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// resource serves the five lifecycle routes of a resource. C and U are the create and update payloads,
// F the listing filter.
type resource[E any, C any, U any, F any] struct {
	create       func(ctx context.Context, args C) (E, error)
	get          func(ctx context.Context, id string, includeDeleted bool) (E, error)
	update       func(ctx context.Context, id string, args U) (E, error)
	changeStatus func(ctx context.Context, id string, status model.EntityStatus, actorID string) (E, error)
	remove       func(ctx context.Context, id string, actorID string) error
	list         func(ctx context.Context, filter F) (*model.Page[E], error)

	// filter completes the common listing parameters with the resource ones.
	filter func(c *gin.Context, req model.FilterRequest) (F, error)
}

var (
	writers = []model.Role{model.RolePlatformAdmin, model.RoleCompanyAdmin}
	admins  = []model.Role{model.RolePlatformAdmin}
)

// mount registers the lifecycle routes on g. g is expected to be authenticated.
func (r *resource[E, C, U, F]) mount(g *gin.RouterGroup) {
	g.POST("", RequireRole(writers...), r.handleCreate)
	g.GET("", r.handleList)
	g.GET("/:id", r.handleGet)
	g.PATCH("/:id", RequireRole(writers...), r.handleUpdate)
	g.PATCH("/:id/status", RequireRole(writers...), r.handleChangeStatus)
	g.DELETE("/:id", RequireRole(admins...), r.handleDelete)
}

func (r *resource[E, C, U, F]) handleCreate(c *gin.Context) {
	var args C
	if err := bindBody(c, &args); err != nil {
		abortWithError(c, err)
		return
	}
	entity, err := r.create(c.Request.Context(), args)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (r *resource[E, C, U, F]) handleGet(c *gin.Context) {
	entity, err := r.get(c.Request.Context(), c.Param("id"), includeDeleted(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (r *resource[E, C, U, F]) handleUpdate(c *gin.Context) {
	var args U
	if err := bindBody(c, &args); err != nil {
		abortWithError(c, err)
		return
	}
	entity, err := r.update(c.Request.Context(), c.Param("id"), args)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

type changeStatusBody struct {
	EntityStatus string `json:"entityStatus"`
}

// handleChangeStatus moves the entity to the requested status. Only platform admins may delete.
func (r *resource[E, C, U, F]) handleChangeStatus(c *gin.Context) {
	var body changeStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, model.Invalid("", "body must be a JSON object"))
		return
	}
	status, ok := model.ParseEntityStatus(body.EntityStatus)
	if !ok {
		abortWithError(c, model.Invalid("entityStatus", "must be one of ACTIVE, INACTIVE, DELETED"))
		return
	}
	p, _ := principalOf(c)
	if status == model.StatusDeleted && !p.IsPlatformAdmin() {
		abortWithError(c, model.ErrForbidden)
		return
	}
	entity, err := r.changeStatus(c.Request.Context(), c.Param("id"), status, p.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (r *resource[E, C, U, F]) handleDelete(c *gin.Context) {
	p, _ := principalOf(c)
	if err := r.remove(c.Request.Context(), c.Param("id"), p.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *resource[E, C, U, F]) handleList(c *gin.Context) {
	req, err := filterRequest(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	filter, err := r.filter(c, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	page, err := r.list(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
