package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/entitlement"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// writeAppError maps any error onto the uniform failure payload.
func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Internal server error", err))
}

// decodeAndValidate parses the request body into req and runs struct
// validation. It writes the failure response itself and reports success.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := val.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// accountEngine loads the authenticated account and builds its entitlement
// engine from the plan catalog and current-period usage.
func accountEngine(r *http.Request, users user.Repository, usageSvc *services.UsageService) (*user.User, entitlement.Engine, *usage.Usage, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return nil, entitlement.Engine{}, nil, errors.Unauthorized("Missing authentication")
	}
	account, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, entitlement.Engine{}, nil, err
	}
	eng, u, err := usageSvc.Engine(r.Context(), account)
	if err != nil {
		return nil, entitlement.Engine{}, nil, err
	}
	return account, eng, u, nil
}
