package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
)

const requiredFieldsMessage = "Please fill in all required fields"

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func toast(ctx context.Context, n model.Notifier, level model.NoticeLevel, message string) {
	n.Notify(ctx, model.Notice{Level: level, Message: message})
}

func alert(ctx context.Context, n model.Notifier, level model.NoticeLevel, message string) {
	n.Notify(ctx, model.Notice{Level: level, Message: message, Blocking: true})
}

// render hands a frame to the renderer. A failed render does not fail the
// operation that produced the view model.
func render(ctx context.Context, r model.Renderer, log *logger.Logger, now time.Time, name string, slot model.Slot, m any) {
	err := r.Render(ctx, model.Frame{
		View:       name,
		Slot:       slot,
		Model:      m,
		RenderedAt: now,
	})
	if err != nil {
		log.Warn("failed to render view",
			"view", name,
			"error", err.Error())
	}
}

func publish(ctx context.Context, p model.ActivityPublisher, log *logger.Logger, activity model.Activity) {
	if err := p.Publish(ctx, activity); err != nil {
		log.Warn("failed to publish activity",
			"type", activity.Type,
			"error", err.Error())
	}
}

// validationError turns validator errors into a model.ValidationError keyed by
// the json field name.
func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return model.NewValidationError(message, fields)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}
