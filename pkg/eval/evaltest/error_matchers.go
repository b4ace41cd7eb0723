package evaltest

import (
	"errors"
	"fmt"
	"reflect"

	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/parse"
)

type errorMatcher interface{ matchError(error) bool }

// AnyParseError is an error that can be passed to Case.Throws to match any
// read or parse error.
var AnyParseError anyParseError

type anyParseError struct{}

func (anyParseError) Error() string { return "any parse error" }

func (anyParseError) matchError(e error) bool {
	var (
		readErr  *lit.Error
		parseErr *parse.Error
	)
	return errors.As(e, &readErr) || errors.As(e, &parseErr)
}

// ErrorWithType returns an error that can be passed to Case.Throws to match
// any error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

// An errorMatcher for any error with the given type.
type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	return reflect.TypeOf(e.v) == reflect.TypeOf(e2)
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to match
// any error with the given message.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

// An errorMatcher for any error with the given message.
type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && e.msg == e2.Error()
}

// ErrorIs returns an error that can be passed to Case.Throws to match any
// error for which errors.Is(err, target) holds.
func ErrorIs(target error) error { return errIs{target} }

type errIs struct{ target error }

func (e errIs) Error() string { return fmt.Sprintf("error that is %v", e.target) }

func (e errIs) matchError(e2 error) bool { return errors.Is(e2, e.target) }
