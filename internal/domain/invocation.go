package domain

import "time"

type Invocation struct {
	ID         string
	Code       string
	Variant    Variant
	Language   string
	WantsImage bool
	Timeout    time.Duration
}

type ExecutionResult struct {
	Stdout     []byte
	Elapsed    *time.Duration
	ReturnCode *int
	Language   string
}

func (r ExecutionResult) TimedOut() bool {
	return r.Elapsed == nil && r.ReturnCode == nil
}
