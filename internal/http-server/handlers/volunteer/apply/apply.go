// Package apply handles POST /volunteer/applications.
package apply

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/models"
)

// ApplyRequest mirrors the volunteer form on the site. Terms must be
// accepted for the form to submit at all, so the server enforces it too.
type ApplyRequest struct {
	FirstName        string   `json:"firstName" validate:"required,max=100"`
	LastName         string   `json:"lastName" validate:"required,max=100"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	DateOfBirth      string   `json:"dateOfBirth"`
	Occupation       string   `json:"occupation"`
	Skills           []string `json:"skills"`
	Experience       string   `json:"experience"`
	Availability     string   `json:"availability"`
	Motivation       string   `json:"motivation"`
	Languages        []string `json:"languages"`
	EmergencyContact string   `json:"emergencyContact"`
	EmergencyPhone   string   `json:"emergencyPhone"`
	BackgroundCheck  bool     `json:"backgroundCheck"`
	TermsAccepted    bool     `json:"termsAccepted" validate:"required,eq=true"`
}

type Submitter interface {
	Submit(ctx context.Context, app models.VolunteerApplication) (string, error)
}

func New(log *slog.Logger, service Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.volunteer.apply.New"
		var applyRequest ApplyRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &applyRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(applyRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		id, err := service.Submit(r.Context(), models.VolunteerApplication{
			FirstName:        applyRequest.FirstName,
			LastName:         applyRequest.LastName,
			Email:            applyRequest.Email,
			Phone:            applyRequest.Phone,
			Address:          applyRequest.Address,
			City:             applyRequest.City,
			Country:          applyRequest.Country,
			DateOfBirth:      applyRequest.DateOfBirth,
			Occupation:       applyRequest.Occupation,
			Skills:           applyRequest.Skills,
			Experience:       applyRequest.Experience,
			Availability:     applyRequest.Availability,
			Motivation:       applyRequest.Motivation,
			Languages:        applyRequest.Languages,
			EmergencyContact: applyRequest.EmergencyContact,
			EmergencyPhone:   applyRequest.EmergencyPhone,
			BackgroundCheck:  applyRequest.BackgroundCheck,
			TermsAccepted:    applyRequest.TermsAccepted,
		})
		if err != nil {
			log.Error("failed to store application", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not submit application"))
			return
		}

		log.Info("application submitted", slog.String("application_id", id))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]string{
			"application_id": id,
		}))
	}
}
