package document

import (
	"fmt"
	"strings"
)

// Role distinguishes documents the assessed organization controls from
// documents that originate further down its supply chain.
type Role string

const (
	RolePrimary   Role = "Primary"
	RoleAuxiliary Role = "Auxiliary"
)

// ParseRole maps user input to a Role. Empty input means Primary.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "primary":
		return RolePrimary, nil
	case "auxiliary", "aux", "fourth-party", "4th-party":
		return RoleAuxiliary, nil
	default:
		return "", fmt.Errorf("unknown document role %q (expected primary|auxiliary)", value)
	}
}

// Input is one submitted document.
type Input struct {
	FileName         string
	MediaType        string
	Bytes            []byte
	Role             Role
	RelationshipNote string
}

// EffectiveRole returns the document role, treating unset roles as Primary.
func (d Input) EffectiveRole() Role {
	if d.Role == RoleAuxiliary {
		return RoleAuxiliary
	}
	return RolePrimary
}

// Class buckets a document by how the generator can consume it.
type Class string

const (
	ClassDirectAttach Class = "direct_attach"
	ClassTextExtract  Class = "text_extract"
	ClassUnsupported  Class = "unsupported"
)

// Prepared is a classified document, with its text when it was extracted.
type Prepared struct {
	Input     Input
	Class     Class
	MediaType string
	Text      string
	Extracted bool
	Failure   string
}

// Usable reports whether the document can be handed to the generator.
func (p Prepared) Usable() bool {
	switch p.Class {
	case ClassDirectAttach:
		return true
	case ClassTextExtract:
		return p.Extracted
	default:
		return false
	}
}
