package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errClusterNameRequired = errors.New("cluster name is required")
	errClusterNameInvalid  = errors.New("cluster name must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errKeyPathRequired     = errors.New("a login key path is required")
	errUserRequired        = errors.New("ssh user is required")
	errDurationInvalid     = errors.New("invalid duration (expected e.g. 900s or 15m)")
	errPortInvalid         = errors.New("port must be between 1 and 65535")
	errResolverInvalid     = errors.New("resolvers must be comma-separated IP addresses")
	errPathNotAbsolute     = errors.New("path must be absolute")
)
