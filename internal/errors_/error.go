package errors_

import (
	"github.com/pkg/errors"
	"reflect"
	"runtime"
)

func Format(function any, err error) error {
	return errors.Wrap(err, getFunctionName(function))
}

func getFunctionName(function any) string {
	return runtime.FuncForPC(reflect.ValueOf(function).Pointer()).Name()
}

func New(text string) error {
	return errors.New(text)
}
