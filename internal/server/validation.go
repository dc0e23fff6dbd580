package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tippy-tappy/internal/tipping"
)

const maxShortLength = 16

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("iso", func(fl validator.FieldLevel) bool {
			return validISO(fl.Field().String())
		})
		_ = engine.RegisterValidation("short", func(fl validator.FieldLevel) bool {
			return validShort(fl.Field().String())
		})
		_ = engine.RegisterValidation("kickoff", func(fl validator.FieldLevel) bool {
			_, err := tipping.ParseStartTime(fl.Field().String(), time.UTC)
			return err == nil
		})
	})
}

func validISO(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validShort(short string) bool {
	if short == "" || len(short) > maxShortLength {
		return false
	}
	for _, r := range short {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' || r == '_' {
			continue
		}
		return false
	}
	return true
}
