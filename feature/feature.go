package feature

import (
	"context"
	"fmt"
)

// Domain identifies what graph entity a feature is attached to.
type Domain uint8

const (
	DomainNode Domain = iota
	DomainEdge
	DomainGraph
)

func (d Domain) String() string {
	switch d {
	case DomainNode:
		return "node"
	case DomainEdge:
		return "edge"
	case DomainGraph:
		return "graph"
	default:
		return fmt.Sprintf("domain(%d)", uint8(d))
	}
}

// ParseDomain parses the string form produced by Domain.String.
func ParseDomain(s string) (Domain, error) {
	switch s {
	case "node":
		return DomainNode, nil
	case "edge":
		return DomainEdge, nil
	case "graph":
		return DomainGraph, nil
	default:
		return 0, fmt.Errorf("feature: unknown domain %q", s)
	}
}

// Key identifies a feature within a store. TypeName is the node or edge
// type ("paper", "paper:cites:paper"); it is empty for homogeneous
// graphs and for the graph domain.
type Key struct {
	Domain   Domain
	TypeName string
	Name     string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Domain, k.TypeName, k.Name)
}

// Feature is a dense 2D array of rows addressed by row id.
// Implementations must be safe for concurrent reads; updates must not
// run concurrently with reads of the same rows.
type Feature interface {
	// Read gathers the given rows into a fresh Array.
	Read(ctx context.Context, ids []int64) (*Array, error)

	// ReadAll returns all rows.
	ReadAll(ctx context.Context) (*Array, error)

	// Update writes values into the given rows. values must have
	// len(ids) rows with the feature's dtype and dim.
	Update(ctx context.Context, ids []int64, values *Array) error

	// NumRows returns the number of rows.
	NumRows() int64

	// Dim returns the row width in elements.
	Dim() int

	// DType returns the element type.
	DType() DType

	// Close releases backing resources.
	Close() error
}
