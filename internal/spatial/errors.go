package spatial

import "errors"

// ErrUnknownRelation is returned when a name does not match any registered
// relation.
var ErrUnknownRelation = errors.New("spatial: unknown relation")

// ErrUnsupportedArity is returned when a relation's arity is not 1 or 2.
var ErrUnsupportedArity = errors.New("spatial: unsupported arity")
