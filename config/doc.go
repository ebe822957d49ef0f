// Package config provides configuration loading and validation for endpointd.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ENDPOINT_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with ENDPOINT_ prefix:
//   - server.port → ENDPOINT_SERVER_PORT
//   - auth.default_key_id → ENDPOINT_AUTH_DEFAULT_KEY_ID
//   - auth.keys.file → ENDPOINT_AUTH_KEYS_FILE
//
// # Configuration Structure
//
//   - Server: port, max_body_size, expose_validation_errors, shutdown_timeout
//   - Auth: default_key_id, leeway, and signing keys (inline and/or file)
//   - CORS: cross-origin resource sharing settings
//   - Log: level and format (text or json)
package config
