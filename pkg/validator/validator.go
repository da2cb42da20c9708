package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var categoryIDPattern = regexp.MustCompile(`^[a-z0-9_-]+(:[a-z0-9_-]+){0,2}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register adds the json tag names and custom tags to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		for _, tag := range []string{"form", "uri"} {
			if name != "" {
				break
			}
			name = strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		}
		return name
	})
	err := v.RegisterValidation("categoryid", categoryIDValidator)
	if err != nil {
		log.Fatal("register categoryid validator failed")
	}
}

// categoryIDValidator accepts "cat", "cat:type" and "cat:type:sub".
var categoryIDValidator validator.Func = func(fl validator.FieldLevel) bool {
	return categoryIDPattern.MatchString(fl.Field().String())
}
