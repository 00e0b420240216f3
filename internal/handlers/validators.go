package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoneyMagnitude is the first value that no longer fits NUMERIC(19,2).
var maxMoneyMagnitude = decimal.New(1, 17)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator engine.
//
//	money: a decimal amount that fits the storage column. Sign and scale are
//	       checked by the transfer service so that replays are not re-validated.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", validateMoney)
	})
}

func validateMoney(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Abs().LessThan(maxMoneyMagnitude)
}
