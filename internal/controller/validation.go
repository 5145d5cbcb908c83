package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"marketplace_api/internal/service"
)

// validationMessager DTO 提供的字段提示，键为 json 路径或 "路径.tag"
type validationMessager interface {
	ValidationMessages() map[string]string
}

var (
	validatorOnce sync.Once
	translator    ut.Translator
)

// SetupValidator 校验错误使用 json/form 字段名，并加载英文默认提示
func SetupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		_ = entranslations.RegisterDefaultTranslations(v, translator)
	})
}

// bindError 把绑定错误转换为 ValidationError
func bindError(err error, obj any) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &service.ValidationError{Messages: []string{"Request body too large"}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &service.ValidationError{Messages: []string{"Invalid request body"}}
	}

	custom := map[string]string{}
	if m, ok := obj.(validationMessager); ok {
		custom = m.ValidationMessages()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if msg, ok := custom[path+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		if msg, ok := custom[path]; ok {
			msgs = append(msgs, msg)
			continue
		}
		if translator != nil {
			msgs = append(msgs, fe.Translate(translator))
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return &service.ValidationError{Messages: msgs}
}

// fieldPath 去掉顶层结构体名: RegisterRequest.email -> email
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
