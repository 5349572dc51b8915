// Package validation checks decoded producer arguments against their
// `validate` struct tags using go-playground/validator.
//
//	type MailerConfig struct {
//	    di.Config
//	    Host string `mapstructure:"host" validate:"required,hostname"`
//	    Port int    `mapstructure:"port" validate:"min=1,max=65535"`
//	}
//	err := validation.Validate(cfg)
//
// Field names in reported errors use the mapstructure tag, so they match the
// keys callers put in di.Args.
package validation
