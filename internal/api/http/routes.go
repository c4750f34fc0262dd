package httpapi

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/workout-tracker/internal/app"
	"github.com/i474232898/workout-tracker/internal/store"
	"github.com/i474232898/workout-tracker/internal/workout"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(fa *fiber.App, state *app.State) {
	v1 := fa.Group("/api/v1")

	v1.Get("/view", func(c *fiber.Ctx) error {
		return c.JSON(state.View())
	})

	v1.Post("/map/click", func(c *fiber.Ctx) error {
		var req clickRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		if err := state.ClickMap(workout.Coords{Lat: *req.Lat, Lng: *req.Lng}); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(state.View())
	})

	v1.Get("/workouts", func(c *fiber.Ctx) error {
		return c.JSON(state.Workouts())
	})

	v1.Get("/workouts/:id", func(c *fiber.Ctx) error {
		w, err := state.Workout(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(w)
	})

	v1.Post("/workouts", func(c *fiber.Ctx) error {
		var req createRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}

		w, err := state.Submit(c.UserContext(), req.toForm())
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	})

	v1.Patch("/workouts/:id", func(c *fiber.Ctx) error {
		var req editRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}

		w, err := state.Edit(c.UserContext(), c.Params("id"), req.Field, req.Value)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(w)
	})

	v1.Delete("/workouts/:id", func(c *fiber.Ctx) error {
		if err := state.Delete(c.UserContext(), c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/workouts/:id/focus", func(c *fiber.Ctx) error {
		if err := state.Focus(c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(state.View())
	})

	v1.Post("/reset", func(c *fiber.Ctx) error {
		if err := state.Reset(c.UserContext()); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(state.View())
	})
}

type clickRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

// createRequest holds the new-workout form. Values are pointers so that
// omitted and zero can be told apart.
type createRequest struct {
	Type          string   `json:"type" validate:"required,oneof=running cycling"`
	Distance      *float64 `json:"distance"`
	Duration      *float64 `json:"duration"`
	Cadence       *float64 `json:"cadence"`
	ElevationGain *float64 `json:"elevationGain"`
}

func (r createRequest) toForm() app.Form {
	return app.Form{
		Kind:          workout.Kind(r.Type),
		Distance:      r.Distance,
		Duration:      r.Duration,
		Cadence:       r.Cadence,
		ElevationGain: r.ElevationGain,
	}
}

// editRequest carries the raw text typed into a row input.
type editRequest struct {
	Field string `json:"field" validate:"required,oneof=distance duration cadence elevationGain"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts value as either a JSON string or a number.
func (r *editRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Field = raw.Field

	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		r.Value = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Value, &s); err == nil {
		r.Value = s
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw.Value, &f); err != nil {
		return errors.New("value must be a string or a number")
	}
	r.Value = strconv.FormatFloat(f, 'f', -1, 64)
	return nil
}

func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, verrs.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, workout.ErrValidation):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, app.ErrNoLocation):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "workout not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
