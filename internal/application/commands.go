package application

import "github.com/bnema/cloudahk-cli/internal/domain"

type RunCommand struct {
	Trigger    domain.Message
	Variant    domain.VariantName
	Language   string
	Code       string
	WantsImage bool
}

type AddVariantCommand struct {
	Spec     domain.VariantSpec
	Password string
}
