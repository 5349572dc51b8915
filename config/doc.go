// Package config loads tinyioc settings from YAML files, .env files and the
// environment.
//
// It uses Viper to read the config file and bind environment variables, and
// godotenv to load .env files found next to the service.
//
// # Usage
//
//	var settings config.Settings
//	if err := config.LoadConfig("billing", &settings); err != nil {
//	    return err
//	}
//	settings.ApplyDefaults()
//
// Producer arguments live under the services key and are looked up by name:
//
//	services:
//	  mailer:
//	    host: smtp.internal
//	    port: 2525
//
//	di.WithArgs(settings.ServiceArgs("mailer"))
package config
