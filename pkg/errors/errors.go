// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package errors provides coded, structured errors for the lattice module.
// Every error carries a machine-readable Code plus optional key/value fields;
// callers branch on codes (or code suffixes via the Is* predicates), never on
// message text.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeSchemaValidateInvalidValue Code = "schema.validate.invalid_value"
	CodeSchemaDeriveFailure        Code = "schema.derive.failure"

	CodeActionInputInvalid   Code = "action.run.input.invalid_input"
	CodeActionOutputInvalid  Code = "action.run.output.invalid_value"
	CodeActionDecodeInvalid  Code = "action.decode.invalid_format"
	CodeActionEncodeFailure  Code = "action.encode.failure"
	CodeActionHandlerMissing Code = "action.handler.missing"

	CodeRegistryRegisterConflict Code = "registry.register.conflict"
	CodeRegistryLookupNotFound   Code = "registry.lookup.not_found"
	CodeRegistryKeyInvalid       Code = "registry.key.invalid_input"

	CodeRetrievalFactoryInvalid   Code = "retrieval.factory.invalid_input"
	CodeRetrievalUnsupportedShape Code = "retrieval.dispatch.unsupported_shape"

	CodeStoreBackendUnsupported Code = "store.backend.unsupported"
	CodeStoreDatabaseFailure    Code = "store.database.failure"
	CodeStoreInvalidInput       Code = "store.invalid_input"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeServerConfigInvalid   Code = "server.config.invalid"
	CodeServerRequestInvalid  Code = "server.request.invalid"
	CodeServerEntityNotFound  Code = "server.entity.not_found"
	CodeServerInternalFailure Code = "server.internal.failure"
	CodeServerStartFailure    Code = "server.start.failure"
	CodeServerShutdownFailure Code = "server.shutdown.failure"

	CodeCLISetupFailure Code = "cli.setup.failure"
	CodeCLIInputInvalid Code = "cli.input.invalid"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldProvider(value string) Attr {
	return Field("provider", value)
}

func FieldAction(value string) Attr {
	return Field("action", value)
}

func FieldCategory(value string) Attr {
	return Field("category", value)
}

func FieldKey(value string) Attr {
	return Field("key", value)
}

// FieldPath records the JSON location of a schema violation.
func FieldPath(value string) Attr {
	return Field("path", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

// With adds structured fields to an existing error chain.
func With(err error, fields ...Attr) error {
	if err == nil {
		return nil
	}

	code := CodeOf(err)
	if code == "" {
		code = CodeServerInternalFailure
	}

	return oops.Code(code).With(flatten(fields)...).Wrap(err)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsConflict(err error) bool {
	return reason(CodeOf(err)) == "conflict"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid" || r == "invalid_input" || r == "invalid_value" || r == "invalid_format"
}

// IsValidation reports whether err is a schema validation failure, at any
// layer (raw schema, action input, or action output).
func IsValidation(err error) bool {
	code := CodeOf(err)
	return strings.HasPrefix(string(code), "schema.validate") ||
		code == CodeActionInputInvalid ||
		code == CodeActionOutputInvalid
}

func IsUnsupportedShape(err error) bool {
	return reason(CodeOf(err)) == "unsupported_shape"
}

func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsValidation(err):
		return http.StatusUnprocessableEntity
	case IsInvalidInput(err), IsUnsupportedShape(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Join(errs ...error) error {
	return oops.Code(CodeServerInternalFailure).Wrap(stderrors.Join(errs...))
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
