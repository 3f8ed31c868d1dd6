package contact

import (
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleContact handles POST /contact: the storefront contact form, forwarded
// to the shop inbox.
func (crm *ContactRoutesManager) HandleContact(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ContactRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid contact payload"), gecho.Send())
		return
	}

	if err := crm.emailService.SendContactEmail(body); err != nil {
		crm.logger.Error("Failed to send contact email", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to send message. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Message sent"),
		gecho.Send(),
	)
}
