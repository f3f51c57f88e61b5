package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateDTO 校验失败时返回包装了 validator.ValidationErrors 的错误，只描述第一个字段
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		first := vErrs[0]
		return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]: %w", first.Field(), first.Tag(), vErrs)
	}
	return err
}
