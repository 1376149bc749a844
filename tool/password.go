package tool

import (
	"errors"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/password"
)

// Names of the password tools advertised to models.
const (
	GeneratePasswordName          = "generate_password"
	CheckPasswordStrengthName     = "check_password_strength"
	GenerateMultiplePasswordsName = "generate_multiple_passwords"
)

// NewGeneratePasswordTool exposes password generation. An empty character
// universe yields the error-kind result string instead of a failure.
func NewGeneratePasswordTool(gen password.Generator) *FunctionTool {
	return NewTypedFunctionTool(
		GeneratePasswordName,
		"Generate a cryptographically secure password with specified options",
		func(_ *core.ToolContext, opts password.Options) (any, error) {
			pw, err := gen.Generate(opts)
			if errors.Is(err, password.ErrNoCharacterClass) {
				return password.NoCharacterClassResult, nil
			}
			return pw, err
		},
	)
}

// NewCheckPasswordStrengthTool exposes the five-point strength analysis.
func NewCheckPasswordStrengthTool() *FunctionTool {
	return NewTypedFunctionTool(
		CheckPasswordStrengthName,
		"Check the strength of a password and get improvement recommendations",
		func(_ *core.ToolContext, in password.CheckInput) (any, error) {
			return password.CheckStrength(in.Password), nil
		},
	)
}

// NewGenerateMultiplePasswordsTool exposes batch generation.
func NewGenerateMultiplePasswordsTool(gen password.Generator) *FunctionTool {
	return NewTypedFunctionTool(
		GenerateMultiplePasswordsName,
		"Generate multiple unique passwords at once",
		func(_ *core.ToolContext, opts password.MultipleOptions) (any, error) {
			return gen.GenerateMultiple(opts)
		},
	)
}

// NewPasswordRegistry registers the three password tools in advertisement order.
func NewPasswordRegistry(gen password.Generator) *Registry {
	return NewRegistry(
		NewGeneratePasswordTool(gen),
		NewCheckPasswordStrengthTool(),
		NewGenerateMultiplePasswordsTool(gen),
	)
}
