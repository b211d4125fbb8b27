// Package config handles loading and validating Warden configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The two token signing secrets are required, must differ, and should
//     be set via environment variables rather than the config file
//   - Validation fails fast at startup so a key misconfiguration can never
//     surface on first use
//
// Configuration is loaded once at startup; there is no runtime overhead
// after the initial load.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
