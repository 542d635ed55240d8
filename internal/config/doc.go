// Package config defines installer settings for a cluster install run.
//
// [Config] is read from a YAML file and selects the install method, the
// provider kind (which decides default DNS resolvers), worker pool bounds,
// SSH access, and the installer layout on the boot machine. [Timeouts] holds
// the readiness budgets, which may be overridden through the environment.
package config
