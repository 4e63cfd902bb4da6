// Package errors provides the classified error primitives used across factpress.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (config, auth, network, llm, template, ...), a severity and a retry hint,
// plus a small context map for structured logging. The CLI adapter turns a
// category into a process exit code so a scheduled job can tell a missing secret
// apart from a failed model call.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryLLM, "completion request failed").
//		WithContext("status", resp.StatusCode).
//		WithContext("model", model).
//		Build()
package errors
