package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/middleware"
	"github.com/yukikurage/project-board-api/internal/models"
	"go.uber.org/zap"
)

var registerValidatorsOnce sync.Once

// FieldError describes one failed validation rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// registerValidators adds the custom binding rules and reports fields by
// their JSON names.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return models.TaskStatus(fl.Field().String()).Valid()
		})
	})
}

// bindJSON binds the request body into obj and writes a 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	registerValidators()

	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		return false
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// respondError writes err to the client, logging failures the client cannot see.
func respondError(c *gin.Context, err error) {
	if apierrors.KindOf(err) == apierrors.KindInternal {
		middleware.Logger(c).Error("request failed", zap.Error(err))
	}
	apierrors.Respond(c, err)
}
