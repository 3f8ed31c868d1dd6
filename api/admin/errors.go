package admin

import (
	"errors"
	"net/http"

	"konigfood_server/catalog"
	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
)

// writeCatalogError maps a failed catalog operation to a response. Remote
// store failures surface their own message so the admin sees what the content
// repository actually said.
func (arm *AdminRoutesManager) writeCatalogError(w http.ResponseWriter, err error) {
	var remoteErr *catalog.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.IsPayloadTooLarge() {
			gecho.BadRequest(w,
				gecho.WithMessage("The catalog file exceeds the hosting payload limit. Remove some products or shrink image galleries."),
				gecho.WithData(remoteErr.Message),
				gecho.Send(),
			)
			return
		}

		arm.logger.Error("Remote catalog store error",
			gecho.Field("status", remoteErr.StatusCode),
			gecho.Field("message", remoteErr.Message),
		)
		gecho.ServiceUnavailable(w,
			gecho.WithMessage(remoteErr.Message),
			gecho.Send(),
		)
		return
	}

	switch {
	case errors.Is(err, lib.ErrPayloadTooLarge):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
	default:
		arm.logger.Error("Catalog operation failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Catalog operation failed"), gecho.Send())
	}
}
