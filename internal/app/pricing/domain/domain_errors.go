package domain

import "errors"

// Domain errors as sentinel values
var (
	// Engine input errors
	ErrNilLineItems = errors.New("line items must not be nil")

	// Rule construction errors (builder)
	ErrRuleNameRequired      = errors.New("rule name is required")
	ErrRuleScopeRequired     = errors.New("rule scope is required")
	ErrRulePriorityRequired  = errors.New("rule priority is required")
	ErrRuleExclusiveRequired = errors.New("rule exclusivity is required")

	// Storage errors
	ErrRuleNotFound = errors.New("promotion rule not found")
	ErrRuleInvalid  = errors.New("promotion rule failed validation")
)
