package arbor

import "github.com/pkg/errors"

var (
	// ErrInvalidHierarchy is returned when a structural edit would break the
	// tree: self-parenting, creating a cycle, or attaching an unloaded node.
	ErrInvalidHierarchy = errors.New("arbor: invalid hierarchy")

	// ErrUnsupportedOperation is returned when a node variant does not offer
	// the requested capability, such as assigning the orientation of a
	// billboard.
	ErrUnsupportedOperation = errors.New("arbor: unsupported operation")
)
