package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
)

// statusCoder is implemented by errors that carry an upstream HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Classify returns a low-cardinality error class suitable for tagging metrics and logs.
// Known shapes (context errors, upstream statuses, application codes, network
// timeouts) map to fixed names; anything else falls back to the innermost
// concrete type name in snake_case-ish form.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}

	var sc statusCoder
	if goerrors.As(err, &sc) && sc.HTTPStatus() > 0 {
		return "http_" + strconv.Itoa(sc.HTTPStatus())
	}
	if code := apperrors.GetCode(err); code != "" {
		return "app_" + string(code)
	}
	var ne net.Error
	if goerrors.As(err, &ne) && ne.Timeout() {
		return "net_timeout"
	}
	return typeName(err)
}

func typeName(err error) string {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
