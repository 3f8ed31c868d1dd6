package admin

import (
	"net/http"

	"konigfood_server/api/middleware"
	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// adminSessionKey scopes the persisted table state. Keyed by the admin
// identity rather than the token so the state survives a re-login.
func (arm *AdminRoutesManager) adminSessionKey(r *http.Request) string {
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		return claims.Sub
	}
	return "admin"
}

// GetTableState handles GET /admin/products/table-state.
func (arm *AdminRoutesManager) GetTableState(w http.ResponseWriter, r *http.Request) {
	state := arm.tableService.LoadState(r.Context(), arm.adminSessionKey(r))

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}

// SaveTableState handles PUT /admin/products/table-state. A filter change
// resets the page to 1; a page flip alone does not.
func (arm *AdminRoutesManager) SaveTableState(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.TableState](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid table state payload"), gecho.Send())
		return
	}

	state, err := arm.tableService.SaveState(r.Context(), arm.adminSessionKey(r), *body)
	if err != nil {
		arm.logger.Error("Failed to save table state", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to save table state"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}

// ResetTableState handles POST /admin/products/table-state/reset.
func (arm *AdminRoutesManager) ResetTableState(w http.ResponseWriter, r *http.Request) {
	state, err := arm.tableService.ResetState(r.Context(), arm.adminSessionKey(r))
	if err != nil {
		arm.logger.Error("Failed to reset table state", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to reset table state"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}

// GetTableView handles GET /admin/products/table: one page of the filtered,
// sorted catalog plus the state that produced it.
func (arm *AdminRoutesManager) GetTableView(w http.ResponseWriter, r *http.Request) {
	products, err := arm.adminCatalogService.List(r.Context())
	if err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	view, err := arm.tableService.View(r.Context(), arm.adminSessionKey(r), products)
	if err != nil {
		arm.logger.Error("Failed to build table view", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to build table view"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// ToggleSelection handles POST /admin/products/selection/{id}/toggle.
func (arm *AdminRoutesManager) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		gecho.BadRequest(w, gecho.WithMessage("Product id is required"), gecho.Send())
		return
	}

	state, err := arm.tableService.ToggleSelection(r.Context(), arm.adminSessionKey(r), id)
	if err != nil {
		arm.logger.Error("Failed to toggle selection", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update selection"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}

// ToggleSelectPage handles POST /admin/products/selection/toggle-page:
// select-all scoped to the rows of the current page.
func (arm *AdminRoutesManager) ToggleSelectPage(w http.ResponseWriter, r *http.Request) {
	products, err := arm.adminCatalogService.List(r.Context())
	if err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	state, err := arm.tableService.ToggleSelectAllPage(r.Context(), arm.adminSessionKey(r), products)
	if err != nil {
		arm.logger.Error("Failed to toggle page selection", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update selection"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}

// ClearSelection handles DELETE /admin/products/selection.
func (arm *AdminRoutesManager) ClearSelection(w http.ResponseWriter, r *http.Request) {
	state, err := arm.tableService.ClearSelection(r.Context(), arm.adminSessionKey(r))
	if err != nil {
		arm.logger.Error("Failed to clear selection", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update selection"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"state": state,
		}),
		gecho.Send(),
	)
}
