package validators

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Presence reports which `validate:"required"` fields of a request struct are
// empty, using the field's json or form name.
type Presence struct {
	v *validator.Validate
}

func NewPresence() *Presence {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &Presence{v: v}
}

// Missing returns the missing field names in declaration order, or nil when
// everything required is present.
func (p *Presence) Missing(s any) ([]string, error) {
	err := p.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing, nil
}
