// Package forms 请求表单
//
// 字段级别的校验写在binding标签中，由gin调用validator完成；
// 需要多个字段配合的校验写在表单的Validate方法中。
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Enum 可以校验取值是否合法的枚举类型
type Enum interface {
	Valid() bool
}

var registerOnce sync.Once

// RegisterValidators 注册自定义的校验标签，在创建路由前调用
//
//   - legal_enum: 字段类型实现Enum，且Valid()为true
//   - notblank: 去掉空白后不能为空
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("legal_enum", legalEnum)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		// 错误信息中使用json字段名
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

func legalEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanInterface() {
		return false
	}
	if enum, ok := field.Interface().(Enum); ok {
		return enum.Valid()
	}
	return false
}

// ErrorMessage 把校验错误转换为可读的提示
func ErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s不能为空", field)
	case "max":
		return fmt.Sprintf("%s长度不能超过%s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s长度不能少于%s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s格式不正确", field)
	case "oneof":
		return fmt.Sprintf("%s只能是: %s", field, fe.Param())
	case "legal_enum":
		return fmt.Sprintf("%s的值不合法: %v", field, fe.Value())
	}
	return fmt.Sprintf("%s校验失败(%s)", field, fe.Tag())
}
