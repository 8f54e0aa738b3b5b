package controllers

import (
	"errors"

	"github.com/codelieche/blog/pkg/controllers/forms"
)

// errorOf 表单绑定错误转换为可读的提示
func errorOf(err error) error {
	return errors.New(forms.ErrorMessage(err))
}
