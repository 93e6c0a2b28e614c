package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"imageserver/internal/storage"
)

const imageField = "image"

// filenameParams is bound from routes carrying a :filename segment.
type filenameParams struct {
	Filename string `uri:"filename" binding:"required,imagename"`
}

var registerOnce sync.Once

// registerValidators installs the imagename tag on gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			err := v.RegisterValidation("imagename", func(fl validator.FieldLevel) bool {
				return storage.ValidFilename(fl.Field().String())
			})
			if err != nil {
				panic("register imagename validator: " + err.Error())
			}
		}
	})
}

// fail hands err to the error envelope middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
